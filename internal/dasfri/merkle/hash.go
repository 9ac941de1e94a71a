// Package merkle implements the binary hash tree over evaluation vectors
// used to commit to each FRI layer (spec section 4.3), grounded on
// internal/vybium-starks-vm/core/merkle.go but generalized from a single
// hardcoded hash to the pluggable backend spec section 10 calls for, and
// corrected to reject non-power-of-two leaf counts instead of
// hash-duplicate padding (spec's explicit choice, to avoid
// second-preimage ambiguity).
package merkle

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
)

// Digest is a 32-byte Merkle node or leaf hash.
type Digest [32]byte

// HashFunc computes the 32-byte digest of an arbitrary byte string.
type HashFunc func(data []byte) Digest

// Backend names the selectable hash functions, mirroring the
// Config.HashBackend field and the teacher's hashFunc switch in
// utils/channel.go and core/hash.go's GetFieldFriendlyHash.
const (
	BackendSHA3    = "sha3"
	BackendBlake2b = "blake2b"
	BackendBlake3  = "blake3"
	BackendSHA256  = "sha256"
)

// NewHashFunc resolves a backend name into a HashFunc. Unknown names fall
// back to sha3, matching the teacher's graceful-degradation behavior.
func NewHashFunc(backend string) HashFunc {
	switch backend {
	case BackendBlake2b:
		return func(data []byte) Digest {
			return blake2b.Sum256(data)
		}
	case BackendBlake3:
		return func(data []byte) Digest {
			return blake3.Sum256(data)
		}
	case BackendSHA256:
		return func(data []byte) Digest {
			return sha256.Sum256(data)
		}
	case BackendSHA3:
		fallthrough
	default:
		return func(data []byte) Digest {
			return sha3.Sum256(data)
		}
	}
}

var (
	leafTag = []byte("LEAF")
	nodeTag = []byte("NODE")
)

// leafDigest computes H("LEAF" || index_u32_be || symbol_bytes).
func leafDigest(h HashFunc, index uint32, symbol []byte) Digest {
	buf := make([]byte, 0, len(leafTag)+4+len(symbol))
	buf = append(buf, leafTag...)
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], index)
	buf = append(buf, idxBuf[:]...)
	buf = append(buf, symbol...)
	return h(buf)
}

// nodeDigest computes H("NODE" || left || right).
func nodeDigest(h HashFunc, left, right Digest) Digest {
	buf := make([]byte, 0, len(nodeTag)+64)
	buf = append(buf, nodeTag...)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return h(buf)
}

// errNonPowerOfTwo builds the error Build returns when given a non-power-of-two
// number of leaves; see the package doc comment for why padding is
// rejected rather than performed.
func errNonPowerOfTwo() error {
	return dasfrierr.New(dasfrierr.BadLength, "merkle tree requires a power-of-two leaf count")
}
