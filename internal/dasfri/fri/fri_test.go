package fri

import (
	"math/rand"
	"testing"

	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
	"github.com/vybium/das-fri/internal/dasfri/poly"
	"github.com/vybium/das-fri/internal/dasfri/transcript"
)

func encodedCodeword(t *testing.T, k, blowup int) []field.Elem {
	t.Helper()
	message := make([]field.Elem, k)
	for i := range message {
		message[i] = field.FromBase(field.NewBase(uint64(i*7 + 3)))
	}
	codeword, err := poly.ReedSolomonEncode(message, blowup)
	if err != nil {
		t.Fatalf("unexpected error encoding codeword: %v", err)
	}
	return codeword
}

func proveAndCollect(t *testing.T, codeword []field.Elem, params Params, hash merkle.HashFunc) (*Proof, merkle.Digest) {
	t.Helper()
	tr := transcript.New(hash)
	roots, finalValue, layers, err := CommitPhase(codeword, params, hash, tr)
	if err != nil {
		t.Fatalf("unexpected error in commit phase: %v", err)
	}
	queries, err := QueryPhase(layers, params, tr)
	if err != nil {
		t.Fatalf("unexpected error in query phase: %v", err)
	}
	return &Proof{Roots: roots, FinalValue: finalValue, Queries: queries}, roots[0]
}

func TestCommitQueryVerifyRoundTrip(t *testing.T) {
	hash := merkle.NewHashFunc(merkle.BackendSHA3)
	codeword := encodedCodeword(t, 4, 8) // n0 = 32
	params := Params{N0: len(codeword), NumLayers: 3, NumQueries: 8}

	proof, c0 := proveAndCollect(t, codeword, params, hash)

	if err := Verify(c0, proof, params, hash); err != nil {
		t.Fatalf("verification failed: %v", err)
	}
}

func TestVerifyRejectsTamperedRoot(t *testing.T) {
	hash := merkle.NewHashFunc(merkle.BackendSHA3)
	codeword := encodedCodeword(t, 4, 8)
	params := Params{N0: len(codeword), NumLayers: 3, NumQueries: 8}

	proof, c0 := proveAndCollect(t, codeword, params, hash)
	proof.Roots[1][0] ^= 0xFF

	if err := Verify(c0, proof, params, hash); err == nil {
		t.Fatal("expected verification failure after tampering with a layer root")
	}
}

func TestVerifyRejectsTamperedSymbol(t *testing.T) {
	hash := merkle.NewHashFunc(merkle.BackendSHA3)
	codeword := encodedCodeword(t, 4, 8)
	params := Params{N0: len(codeword), NumLayers: 3, NumQueries: 8}

	proof, c0 := proveAndCollect(t, codeword, params, hash)
	proof.Queries[0].Layers[0].Y0 = proof.Queries[0].Layers[0].Y0.Add(field.FromBase(field.One))

	if err := Verify(c0, proof, params, hash); err == nil {
		t.Fatal("expected verification failure after tampering with a query symbol")
	}
}

func TestVerifyRejectsMismatchedC0(t *testing.T) {
	hash := merkle.NewHashFunc(merkle.BackendSHA3)
	codeword := encodedCodeword(t, 4, 8)
	params := Params{N0: len(codeword), NumLayers: 3, NumQueries: 8}

	proof, c0 := proveAndCollect(t, codeword, params, hash)
	c0[0] ^= 0xFF

	if err := Verify(c0, proof, params, hash); err == nil {
		t.Fatal("expected verification failure for mismatched commitment root")
	}
}

func TestProofEncodeDecodeRoundTrip(t *testing.T) {
	hash := merkle.NewHashFunc(merkle.BackendSHA3)
	codeword := encodedCodeword(t, 4, 8)
	params := Params{N0: len(codeword), NumLayers: 3, NumQueries: 5}

	proof, c0 := proveAndCollect(t, codeword, params, hash)

	encoded, err := proof.Encode()
	if err != nil {
		t.Fatalf("unexpected error encoding proof: %v", err)
	}
	decoded, err := DecodeProof(encoded)
	if err != nil {
		t.Fatalf("unexpected error decoding proof: %v", err)
	}

	if err := Verify(c0, decoded, params, hash); err != nil {
		t.Fatalf("verification of round-tripped proof failed: %v", err)
	}
}

// TestFRIRejectsRandomNonCodewords exercises spec section 8's statistical
// soundness property: a random sequence of field elements is, with
// overwhelming probability, not a low-degree codeword, so an honest prover
// fed such a sequence should never produce a proof CommitPhase/Verify accept.
// Each of the spec's (3/4)^Q bound's Q=40 rejection events is actually
// caught here by CommitPhase's own deterministic final-layer equality check
// (random data almost never folds down to a constant layer), which is a
// strictly stronger guarantee than the spec's query-sampling bound, so the
// accepted count below is expected to be exactly 0 rather than merely
// bounded by (3/4)^Q * trials.
func TestFRIRejectsRandomNonCodewords(t *testing.T) {
	hash := merkle.NewHashFunc(merkle.BackendSHA3)
	params := Params{N0: 16, NumLayers: 3, NumQueries: 40}

	const trials = 10000
	accepted := 0
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < trials; trial++ {
		codeword := make([]field.Elem, params.N0)
		for i := range codeword {
			codeword[i] = field.FromBase(field.NewBase(uint64(rng.Uint32())))
		}

		tr := transcript.New(hash)
		roots, finalValue, layers, err := CommitPhase(codeword, params, hash, tr)
		if err != nil {
			continue
		}

		queries, err := QueryPhase(layers, params, tr)
		if err != nil {
			continue
		}
		proof := &Proof{Roots: roots, FinalValue: finalValue, Queries: queries}
		if Verify(roots[0], proof, params, hash) == nil {
			accepted++
		}
	}

	if accepted != 0 {
		t.Fatalf("expected no accepted proofs for random non-codewords, got %d/%d", accepted, trials)
	}
}
