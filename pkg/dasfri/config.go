package dasfri

import (
	"github.com/vybium/das-fri/internal/dasfri/das"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
)

// Hash backend names accepted by Config.HashBackend.
const (
	HashSHA3    = merkle.BackendSHA3
	HashBlake2b = merkle.BackendBlake2b
	HashBlake3  = merkle.BackendBlake3
	HashSHA256  = merkle.BackendSHA256
)

// Config bundles the tunable FRI/DAS parameters.
type Config = das.Config

// DefaultConfig returns a Config with blowup 2, 20 queries, and sha3-256 as
// the hash backend. The number of FRI folding layers is not part of Config;
// Commit/GenerateProof derive it automatically from the input size.
func DefaultConfig() Config {
	return das.DefaultConfig()
}
