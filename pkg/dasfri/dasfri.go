package dasfri

import (
	"github.com/vybium/das-fri/internal/dasfri/das"
	"github.com/vybium/das-fri/internal/dasfri/fri"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
)

// Commitment is the DAS commitment (n0, rho, numLayers, numQueries, C0,
// finalValue) that uniquely identifies a committed data block.
type Commitment = das.Commitment

// Proof is a FRI proof: the layer roots, the final constant value, and
// the per-query layer openings.
type Proof = fri.Proof

// IndexedSymbol is one codeword position supplied to Reconstruct.
type IndexedSymbol = das.IndexedSymbol

// Commit packs data into field symbols, RS-encodes it, runs the FRI
// commit phase, and returns the resulting commitment. It does not build
// a proof; call GenerateProof for that.
func Commit(data []byte, cfg Config) (*Commitment, error) {
	return das.Commit(data, cfg)
}

// Sample deterministically derives the query indices a light client
// intends to check, seeded purely from the commitment.
func Sample(commitment *Commitment, cfg Config) ([]uint64, error) {
	hash := merkle.NewHashFunc(cfg.HashBackend)
	return das.Sample(commitment, hash)
}

// GenerateProof re-runs the commit phase to rebuild every layer's Merkle
// tree, then runs the query phase to produce a full proof. The returned
// commitment matches what Commit(data, cfg) would produce.
func GenerateProof(data []byte, cfg Config) (*Commitment, *Proof, error) {
	return das.GenerateProof(data, cfg)
}

// Verify checks a proof against a commitment: it reproduces the Fiat-Shamir
// transcript, authenticates every queried symbol, and checks the folding
// and final-value consistency.
func Verify(commitment *Commitment, proof *Proof, cfg Config) error {
	return das.Verify(commitment, proof, cfg)
}

// Reconstruct recovers the original bytes from any sufficiently large set
// of correctly indexed codeword symbols (from the layer-0 codeword).
func Reconstruct(symbols []IndexedSymbol, commitment *Commitment, cfg Config) ([]byte, error) {
	return das.Reconstruct(symbols, int(commitment.N0), int(commitment.LogBlowup), commitment.OriginalByteLen)
}

// EncodeCommitment serializes a commitment per the library's binary
// commitment-header format.
func EncodeCommitment(c *Commitment) []byte {
	return c.Encode()
}

// DecodeCommitment parses a commitment produced by EncodeCommitment.
func DecodeCommitment(buf []byte) (*Commitment, error) {
	return das.DecodeCommitment(buf)
}

// EncodeProof serializes a proof per the library's binary proof format.
func EncodeProof(p *Proof) ([]byte, error) {
	return p.Encode()
}

// DecodeProof parses a proof produced by EncodeProof.
func DecodeProof(buf []byte) (*Proof, error) {
	return fri.DecodeProof(buf)
}
