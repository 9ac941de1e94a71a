package das

import (
	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/fri"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
	"github.com/vybium/das-fri/internal/dasfri/poly"
	"github.com/vybium/das-fri/internal/dasfri/transcript"
	"github.com/vybium/das-fri/internal/dasfri/util"
)

// Config bundles the tunable FRI/DAS parameters: the Merkle/transcript
// hash backend, the RS blowup factor (as its log2), and the number of
// queries. See spec section 4.5's "soundness parameter" note for how
// NumQueries relates to security. The number of FRI folding layers is not
// a free parameter here: CommitPhase's final layer must be provably
// constant (spec section 3's invariant), which only holds once the
// codeword has been folded down to its message's degree bound, so it is
// always derived from N0 and the blowup factor rather than configured.
type Config struct {
	HashBackend string
	LogBlowup   int
	NumQueries  int
}

// DefaultConfig returns a Config matching the 1024-byte worked example in
// spec section 8: blowup 2 (log_blowup=1), 20 queries.
func DefaultConfig() Config {
	return Config{
		HashBackend: merkle.BackendSHA3,
		LogBlowup:   1,
		NumQueries:  20,
	}
}

// requiredNumLayers returns the number of FRI folding layers that reduces
// an n0-symbol codeword (blowup factor blowup) down to a provably constant
// final layer: folding log2(k) times, where k = n0/blowup is the message
// length, leaves exactly blowup elements holding a degree-0 polynomial's
// evaluations, which CommitPhase can check for equality outright. At
// least one fold is always performed, even when k=1, so there is always a
// committed layer to serve as C0.
func requiredNumLayers(n0, blowup int) (int, error) {
	if blowup <= 0 || n0%blowup != 0 {
		return 0, dasfrierr.New(dasfrierr.BadLength, "n0 is not a multiple of the blowup factor")
	}
	k := n0 / blowup
	if !util.IsPowerOfTwo(k) {
		return 0, dasfrierr.New(dasfrierr.BadLength, "n0/blowup is not a power of two")
	}
	layers := util.Log2(k)
	if layers < 1 {
		layers = 1
	}
	return layers, nil
}

func friParams(n0, numLayers, numQueries int) fri.Params {
	return fri.Params{N0: n0, NumLayers: numLayers, NumQueries: numQueries}
}

// wrapStage adds stage context to an error from the fri package while
// preserving its underlying Code, so a caller's errors.Is/Code field checks
// still see the original failure kind.
func wrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	code := dasfrierr.ErrUnknown
	if de, ok := err.(*dasfrierr.Error); ok {
		code = de.Code
	}
	return dasfrierr.Wrap(code, stage, err)
}

func encodeCodeword(data []byte, cfg Config) ([]field.Elem, int, error) {
	message := packBytes(data)
	blowup := 1 << cfg.LogBlowup
	codeword, err := poly.ReedSolomonEncode(message, blowup)
	if err != nil {
		return nil, 0, err
	}
	return codeword, len(codeword), nil
}

// Commit implements spec section 4.7's commit operation: pack bytes into
// field symbols, RS-encode, run the FRI commit phase, and return the
// resulting commitment header. The intermediate Merkle trees built during
// the commit phase are discarded; GenerateProof rebuilds them later.
func Commit(data []byte, cfg Config) (*Commitment, error) {
	if cfg.NumQueries < 0 || cfg.NumQueries > 65535 {
		return nil, dasfrierr.New(dasfrierr.BadLength, "numQueries must fit in a u16")
	}

	codeword, n0, err := encodeCodeword(data, cfg)
	if err != nil {
		return nil, err
	}

	blowup := 1 << cfg.LogBlowup
	numLayers, err := requiredNumLayers(n0, blowup)
	if err != nil {
		return nil, err
	}
	if numLayers > 255 {
		return nil, dasfrierr.New(dasfrierr.BadLength, "numLayers must fit in a byte")
	}

	hash := merkle.NewHashFunc(cfg.HashBackend)
	tr := transcript.New(hash)
	roots, finalValue, _, err := fri.CommitPhase(codeword, friParams(n0, numLayers, cfg.NumQueries), hash, tr)
	if err != nil {
		return nil, wrapStage("commit phase failed", err)
	}

	return &Commitment{
		OriginalByteLen: uint32(len(data)),
		N0:              uint32(n0),
		LogBlowup:       uint8(cfg.LogBlowup),
		NumLayers:       uint8(numLayers),
		NumQueries:      uint16(cfg.NumQueries),
		C0:              roots[0],
		FinalValue:      finalValue,
	}, nil
}

// Sample implements spec section 4.7's sample operation: it deterministically
// derives NumQueries indices in [0, N0/2) from a transcript seeded purely
// with the commitment's encoded bytes, letting a light client learn which
// positions it intends to check before a proof exists. This is an
// advisory, commitment-only derivation distinct from (and in general not
// equal to) the indices the real FRI transcript in section 4.6 draws once
// every intermediate layer root is known; Verify always re-derives the
// authoritative indices from the proof's own roots.
func Sample(commitment *Commitment, hash merkle.HashFunc) ([]uint64, error) {
	if commitment.NumQueries == 0 {
		return nil, dasfrierr.New(dasfrierr.BadLength, "commitment has zero queries")
	}

	tr := transcript.New(hash)
	tr.Absorb("DAS_SAMPLE", commitment.Encode())

	half0 := uint64(commitment.N0) / 2
	indices := make([]uint64, commitment.NumQueries)
	for i := range indices {
		idx, err := tr.ChallengeIndex(half0)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}
	return indices, nil
}

// GenerateProof implements spec section 4.7's generate_proof operation:
// it reruns the commit phase to rebuild every layer's Merkle tree, then
// runs the query phase to emit openings for the transcript-derived
// indices (see section 4.6). The returned commitment should match the one
// Commit(data, cfg) would have produced.
func GenerateProof(data []byte, cfg Config) (*Commitment, *fri.Proof, error) {
	codeword, n0, err := encodeCodeword(data, cfg)
	if err != nil {
		return nil, nil, err
	}

	blowup := 1 << cfg.LogBlowup
	numLayers, err := requiredNumLayers(n0, blowup)
	if err != nil {
		return nil, nil, err
	}
	if numLayers > 255 {
		return nil, nil, dasfrierr.New(dasfrierr.BadLength, "numLayers must fit in a byte")
	}
	if cfg.NumQueries < 0 || cfg.NumQueries > 65535 {
		return nil, nil, dasfrierr.New(dasfrierr.BadLength, "numQueries must fit in a u16")
	}

	hash := merkle.NewHashFunc(cfg.HashBackend)
	tr := transcript.New(hash)
	params := friParams(n0, numLayers, cfg.NumQueries)

	roots, finalValue, layers, err := fri.CommitPhase(codeword, params, hash, tr)
	if err != nil {
		return nil, nil, wrapStage("commit phase failed", err)
	}

	queries, err := fri.QueryPhase(layers, params, tr)
	if err != nil {
		return nil, nil, wrapStage("query phase failed", err)
	}

	commitment := &Commitment{
		OriginalByteLen: uint32(len(data)),
		N0:              uint32(n0),
		LogBlowup:       uint8(cfg.LogBlowup),
		NumLayers:       uint8(numLayers),
		NumQueries:      uint16(cfg.NumQueries),
		C0:              roots[0],
		FinalValue:      finalValue,
	}
	proof := &fri.Proof{Roots: roots, FinalValue: finalValue, Queries: queries}

	return commitment, proof, nil
}

// Verify implements spec section 4.7's verify operation: run section
// 4.6 against commitment.C0, cross-checking that the proof's first root
// matches it (performed inside fri.Verify). The number of folding layers
// is read back from the commitment rather than recomputed, since it is
// exactly what Commit/GenerateProof derived and recorded at commit time.
func Verify(commitment *Commitment, proof *fri.Proof, cfg Config) error {
	hash := merkle.NewHashFunc(cfg.HashBackend)
	params := friParams(int(commitment.N0), int(commitment.NumLayers), cfg.NumQueries)
	if err := fri.Verify(commitment.C0, proof, params, hash); err != nil {
		return wrapStage("fri verification failed", err)
	}
	return nil
}

// IndexedSymbol is one codeword position supplied to Reconstruct: the
// position in D_0 (the layer-0 evaluation domain) and its symbol value.
type IndexedSymbol struct {
	Index  uint64
	Symbol field.Elem
}

// Reconstruct implements spec section 4.7's reconstruct operation: given
// at least k = n0/blowup correctly indexed codeword symbols, it recovers
// the original bytes via inverse RS (Lagrange interpolation over the
// points followed by an NTT back into message symbols), stripping the
// zero padding recorded in originalByteLen. It fails with
// InsufficientSymbols if fewer than k distinct valid indices are given.
func Reconstruct(symbols []IndexedSymbol, n0 int, logBlowup int, originalByteLen uint32) ([]byte, error) {
	blowup := 1 << logBlowup
	k := n0 / blowup
	if k <= 0 {
		return nil, dasfrierr.New(dasfrierr.BadLength, "invalid n0/blowup combination")
	}
	if len(symbols) < k {
		return nil, dasfrierr.New(dasfrierr.InsufficientSymbols, "need at least k distinct codeword symbols to reconstruct")
	}

	omega, err := fieldPrimitiveRootForDomain(n0)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool, k)
	points := make([]poly.Point, 0, k)
	for _, s := range symbols {
		if len(points) == k {
			break
		}
		if s.Index >= uint64(n0) {
			return nil, dasfrierr.New(dasfrierr.BadLength, "codeword index out of range")
		}
		if seen[s.Index] {
			continue
		}
		seen[s.Index] = true
		points = append(points, poly.Point{X: omega.Pow(s.Index), Y: s.Symbol})
	}
	if len(points) < k {
		return nil, dasfrierr.New(dasfrierr.InsufficientSymbols, "need at least k distinct codeword symbols to reconstruct")
	}

	coeffs, err := poly.LagrangeInterpolate(points)
	if err != nil {
		return nil, err
	}

	message, err := poly.NTT(coeffs)
	if err != nil {
		return nil, err
	}

	return unpackBytes(message, originalByteLen)
}

func fieldPrimitiveRootForDomain(n int) (field.Elem, error) {
	return field.PrimitiveRootOfUnity(util.Log2(n))
}
