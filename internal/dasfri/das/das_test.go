package das

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/vybium/das-fri/internal/dasfri/merkle"
)

func smallConfig() Config {
	return Config{HashBackend: merkle.BackendSHA3, LogBlowup: 1, NumQueries: 8}
}

func TestCommitGenerateProofVerifyRoundTrip(t *testing.T) {
	cfg := smallConfig()
	data := []byte("Hello, world!")

	commitment, err := Commit(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error from Commit: %v", err)
	}

	provenCommitment, proof, err := GenerateProof(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error from GenerateProof: %v", err)
	}
	if provenCommitment.C0 != commitment.C0 {
		t.Fatal("GenerateProof's commitment does not match Commit's commitment")
	}

	if err := Verify(commitment, proof, cfg); err != nil {
		t.Fatalf("verification failed: %v", err)
	}
}

func TestCommitHandlesEmptyData(t *testing.T) {
	cfg := Config{HashBackend: merkle.BackendSHA3, LogBlowup: 1, NumQueries: 4}

	commitment, proof, err := GenerateProof(nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error for empty data: %v", err)
	}
	if err := Verify(commitment, proof, cfg); err != nil {
		t.Fatalf("verification failed for empty data: %v", err)
	}
}

func TestCommitmentHeaderEncodeDecodeRoundTrip(t *testing.T) {
	cfg := smallConfig()
	commitment, err := Commit([]byte("round trip me"), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded := commitment.Encode()
	decoded, err := DecodeCommitment(encoded)
	if err != nil {
		t.Fatalf("unexpected error decoding commitment: %v", err)
	}
	if decoded.C0 != commitment.C0 || !decoded.FinalValue.Equal(commitment.FinalValue) {
		t.Fatal("commitment round trip mismatch")
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	cfg := smallConfig()
	data := []byte("tamper target")

	commitment, proof, err := GenerateProof(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	proof.Queries[0].Layers[0].Y0 = proof.Queries[0].Layers[0].Y0.Add(commitment.FinalValue)
	if err := Verify(commitment, proof, cfg); err == nil {
		t.Fatal("expected verification failure for tampered proof")
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	cfg := smallConfig()
	commitment, err := Commit([]byte("sample me"), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := merkle.NewHashFunc(cfg.HashBackend)
	first, err := Sample(commitment, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Sample(commitment, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatal("sample lengths differ between calls")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("sample is not deterministic")
		}
	}
}

func TestReconstructRecoversOriginalBytes(t *testing.T) {
	cfg := smallConfig()
	data := []byte("reconstructable data block!!")

	codeword, n0, err := encodeCodeword(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k := n0 / (1 << cfg.LogBlowup)
	symbols := make([]IndexedSymbol, 0, k)
	for i := 0; i < n0 && len(symbols) < k; i += 2 {
		symbols = append(symbols, IndexedSymbol{Index: uint64(i), Symbol: codeword[i]})
	}

	recovered, err := Reconstruct(symbols, n0, cfg.LogBlowup, uint32(len(data)))
	if err != nil {
		t.Fatalf("unexpected error reconstructing: %v", err)
	}
	if !bytes.Equal(recovered, data) {
		t.Fatalf("reconstructed data mismatch: got %q want %q", recovered, data)
	}
}

// TestReconstructRecoversHighBitBytes exercises packBytes/unpackBytes with
// random bytes whose high bit is routinely set, the case a 4-byte-per-symbol
// packing would fold into a colliding residue mod p = 2^31-1. With the
// 3-byte-per-symbol packing every chunk stays below 2^24, well under p, so
// reconstruction must still recover the input exactly.
func TestReconstructRecoversHighBitBytes(t *testing.T) {
	cfg := smallConfig()

	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 64)
	rng.Read(data)

	codeword, n0, err := encodeCodeword(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k := n0 / (1 << cfg.LogBlowup)
	symbols := make([]IndexedSymbol, 0, k)
	for i := 0; i < n0 && len(symbols) < k; i += 2 {
		symbols = append(symbols, IndexedSymbol{Index: uint64(i), Symbol: codeword[i]})
	}

	recovered, err := Reconstruct(symbols, n0, cfg.LogBlowup, uint32(len(data)))
	if err != nil {
		t.Fatalf("unexpected error reconstructing: %v", err)
	}
	if !bytes.Equal(recovered, data) {
		t.Fatalf("reconstructed data mismatch: got %x want %x", recovered, data)
	}
}

func TestCommitIsDeterministic(t *testing.T) {
	cfg := smallConfig()
	data := []byte("determinism check payload")

	first, err := Commit(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Commit(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first.Encode(), second.Encode()) {
		t.Fatal("Commit is not deterministic for identical inputs")
	}
}

func TestGenerateProofIsDeterministic(t *testing.T) {
	cfg := smallConfig()
	data := []byte("determinism check payload")

	firstCommitment, firstProof, err := GenerateProof(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondCommitment, secondProof, err := GenerateProof(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(firstCommitment.Encode(), secondCommitment.Encode()) {
		t.Fatal("GenerateProof's commitment is not deterministic for identical inputs")
	}

	firstEnc, err := firstProof.Encode()
	if err != nil {
		t.Fatalf("unexpected error encoding first proof: %v", err)
	}
	secondEnc, err := secondProof.Encode()
	if err != nil {
		t.Fatalf("unexpected error encoding second proof: %v", err)
	}
	if !bytes.Equal(firstEnc, secondEnc) {
		t.Fatal("GenerateProof's proof is not deterministic for identical inputs")
	}
}

func TestReconstructFailsWithTooFewSymbols(t *testing.T) {
	cfg := smallConfig()
	data := []byte("not enough symbols")

	codeword, n0, err := encodeCodeword(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	symbols := []IndexedSymbol{{Index: 0, Symbol: codeword[0]}}
	if _, err := Reconstruct(symbols, n0, cfg.LogBlowup, uint32(len(data))); err == nil {
		t.Fatal("expected InsufficientSymbols error")
	}
}
