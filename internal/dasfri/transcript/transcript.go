// Package transcript implements the Fiat-Shamir channel (spec section
// 4.4) that turns the FRI prover's messages into deterministic verifier
// challenges. Grounded on internal/vybium-starks-vm/utils/channel.go's
// Channel type, but replaced big.Int modulo-reduction (which introduces
// modulo bias) with counter-based rejection sampling as the spec
// requires, and replaced the single running-digest state update with
// explicit domain tags ("ABSORB", "SQUEEZE_FIELD", "SQUEEZE_INDEX") so
// absorb and squeeze operations can never be confused for one another.
package transcript

import (
	"encoding/binary"

	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
)

var (
	absorbTag       = []byte("ABSORB")
	squeezeFieldTag = []byte("SQUEEZE_FIELD")
	squeezeIndexTag = []byte("SQUEEZE_INDEX")
)

// Transcript is an append-only byte log with a deterministic hash-derived
// challenge function, as specified in section 4.3 (the protocol
// description): state is the running digest, absorb mixes in
// domain-separated commitment bytes, and challenge_field /
// challenge_index extract field and integer challenges from it.
type Transcript struct {
	hash  merkle.HashFunc
	state merkle.Digest
}

// New creates a fresh transcript using the given hash backend. The
// initial state is the all-zero digest, mirroring the teacher's
// single-byte zero seed in NewChannel.
func New(hash merkle.HashFunc) *Transcript {
	return &Transcript{hash: hash}
}

// Absorb mixes domain-tagged data into the transcript state:
// state <- H("ABSORB" || domainTag || state || data).
func (t *Transcript) Absorb(domainTag string, data []byte) {
	buf := make([]byte, 0, len(absorbTag)+len(domainTag)+len(t.state)+len(data))
	buf = append(buf, absorbTag...)
	buf = append(buf, domainTag...)
	buf = append(buf, t.state[:]...)
	buf = append(buf, data...)
	t.state = t.hash(buf)
}

// maxU64Multiple returns the largest multiple of modulus that fits in a
// uint64, used to reject biased high values during rejection sampling.
func maxU64Multiple(modulus uint64) uint64 {
	return (^uint64(0) / modulus) * modulus
}

// drawU64 hashes "tag" || state || counter and returns the first 8 bytes
// of the result as a big-endian uint64. The caller advances counter itself.
func (t *Transcript) drawU64(tag []byte, counter uint32) uint64 {
	buf := make([]byte, 0, len(tag)+len(t.state)+4)
	buf = append(buf, tag...)
	buf = append(buf, t.state[:]...)
	var counterBuf [4]byte
	binary.BigEndian.PutUint32(counterBuf[:], counter)
	buf = append(buf, counterBuf[:]...)
	digest := t.hash(buf)
	return binary.BigEndian.Uint64(digest[:8])
}

// ChallengeField draws a pseudorandom extension-field element by
// rejection-sampling two 8-byte candidates (16 bytes of digest output, per
// spec section 4.4) against field.P, retrying with an incremented counter
// on rejection. The transcript state is advanced so repeated calls never
// produce the same challenge.
func (t *Transcript) ChallengeField() field.Elem {
	a := t.rejectionSampleBase(squeezeFieldTag, 0)
	b := t.rejectionSampleBase(squeezeFieldTag, 1)
	t.Absorb("SQUEEZE_FIELD", nil)
	return field.NewElem(a, b)
}

func (t *Transcript) rejectionSampleBase(tag []byte, lane uint32) field.Base {
	limit := maxU64Multiple(uint64(field.P))
	counter := lane * 0x1000
	for {
		candidate := t.drawU64(tag, counter)
		counter++
		if candidate < limit {
			return field.NewBase(candidate % uint64(field.P))
		}
	}
}

// ChallengeIndex draws a pseudorandom integer in [0, upperBound) by
// rejection sampling, per spec section 4.4.
func (t *Transcript) ChallengeIndex(upperBound uint64) (uint64, error) {
	if upperBound == 0 {
		return 0, dasfrierr.New(dasfrierr.BadLength, "challenge_index upper bound must be positive")
	}
	limit := maxU64Multiple(upperBound)
	counter := uint32(0)
	for {
		candidate := t.drawU64(squeezeIndexTag, counter)
		counter++
		if candidate < limit {
			t.Absorb("SQUEEZE_INDEX", nil)
			return candidate % upperBound, nil
		}
	}
}
