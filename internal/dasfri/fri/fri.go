// Package fri implements the FRI commit and query phases (spec sections
// 4.5 and 4.6): folding a Reed-Solomon codeword down to a constant while
// committing to every intermediate layer, then opening and verifying a
// pseudo-random sample of positions.
//
// Grounded on internal/vybium-starks-vm/protocols/fri.go's FRIProtocol
// (the fold formula, the layer/domain-halving structure, and the
// commit/query/verify split) and fri_query.go's query-phase shape, but
// replaced its math/big FieldElement plumbing with the fixed-width
// field.Elem type, its ReceiveRandomFieldElement channel with the
// domain-tagged transcript package, and its ad-hoc "find point in domain"
// linear scan with direct index arithmetic (pos and pos+half are always
// known without search).
package fri

import (
	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
	"github.com/vybium/das-fri/internal/dasfri/transcript"
	"github.com/vybium/das-fri/internal/dasfri/util"
)

// Params bundles the FRI parameters named in spec section 4.5.
type Params struct {
	N0         int // initial codeword length
	NumLayers  int // L
	NumQueries int // Q
}

var two = field.FromBase(field.NewBase(2))

// foldValue applies the FRI folding formula from spec section 3's
// invariants: fold = (y0+y1)/2 + alpha*(y0-y1)/(2x).
func foldValue(y0, y1, x, alpha field.Elem) (field.Elem, error) {
	sum := y0.Add(y1)
	half, err := two.Inv()
	if err != nil {
		return field.ExtZero, err
	}
	firstTerm := sum.Mul(half)

	diff := y0.Sub(y1)
	twoX := x.Mul(two)
	twoXInv, err := twoX.Inv()
	if err != nil {
		return field.ExtZero, err
	}
	secondTerm := alpha.Mul(diff.Mul(twoXInv))

	return firstTerm.Add(secondTerm), nil
}

// foldLayer computes c_{i+1} from c_i (length n, a power of two) and the
// folding challenge alpha_i. The domain generator for c_i is
// field.PrimitiveRootOfUnity(log2(n)); position pos in [0, n/2) folds
// codeword[pos] and codeword[pos+n/2] into the returned layer's pos-th
// entry.
func foldLayer(codeword []field.Elem, alpha field.Elem) ([]field.Elem, error) {
	n := len(codeword)
	half := n / 2
	omega, err := field.PrimitiveRootOfUnity(util.Log2(n))
	if err != nil {
		return nil, err
	}

	next := make([]field.Elem, half)
	x := field.ExtOne
	for pos := 0; pos < half; pos++ {
		folded, err := foldValue(codeword[pos], codeword[pos+half], x, alpha)
		if err != nil {
			return nil, err
		}
		next[pos] = folded
		x = x.Mul(omega)
	}
	return next, nil
}

// symbolBytes returns the canonical byte encoding of a codeword symbol,
// used as Merkle leaf content.
func symbolBytes(e field.Elem) []byte {
	enc := e.Encode()
	return enc[:]
}

// Layer holds one commit-phase codeword together with the Merkle tree
// built over it, kept in memory so generate_proof can open queried
// positions without recomputing the tree.
type Layer struct {
	Codeword []field.Elem
	Tree     *merkle.Tree
}

// CommitPhase runs spec section 4.5 steps 1-3: builds a Merkle tree over
// each of the first NumLayers codewords, absorbing each root and drawing
// a folding challenge from tr, then folds. It returns the per-layer roots
// (length NumLayers), the final constant value, and every layer's
// codeword and tree for later querying.
func CommitPhase(codeword []field.Elem, params Params, hash merkle.HashFunc, tr *transcript.Transcript) ([]merkle.Digest, field.Elem, []Layer, error) {
	if !util.IsPowerOfTwo(len(codeword)) {
		return nil, field.ExtZero, nil, dasfrierr.New(dasfrierr.BadLength, "initial codeword length must be a power of two")
	}
	if len(codeword) != params.N0 {
		return nil, field.ExtZero, nil, dasfrierr.New(dasfrierr.BadLength, "codeword length does not match N0")
	}
	if params.NumLayers <= 0 {
		return nil, field.ExtZero, nil, dasfrierr.New(dasfrierr.BadLength, "numLayers must be positive")
	}
	if params.N0>>uint(params.NumLayers) < 1 {
		return nil, field.ExtZero, nil, dasfrierr.New(dasfrierr.BadLength, "numLayers exceeds codeword's available folds")
	}

	roots := make([]merkle.Digest, params.NumLayers)
	layers := make([]Layer, params.NumLayers)

	current := codeword
	for i := 0; i < params.NumLayers; i++ {
		symbols := make([][]byte, len(current))
		for j, v := range current {
			symbols[j] = symbolBytes(v)
		}
		tree, err := merkle.Build(symbols, hash)
		if err != nil {
			return nil, field.ExtZero, nil, err
		}

		root := tree.Root()
		roots[i] = root
		layers[i] = Layer{Codeword: current, Tree: tree}

		tr.Absorb("COMMIT", root[:])
		alpha := tr.ChallengeField()

		folded, err := foldLayer(current, alpha)
		if err != nil {
			return nil, field.ExtZero, nil, err
		}
		current = folded
	}

	finalValue := current[0]
	for _, v := range current {
		if !v.Equal(finalValue) {
			return nil, field.ExtZero, nil, dasfrierr.New(dasfrierr.FinalMismatch, "final FRI layer is not constant")
		}
	}

	enc := finalValue.Encode()
	tr.Absorb("FINAL", enc[:])

	return roots, finalValue, layers, nil
}

// LayerOpening is one layer's contribution to a single query: the two
// folded symbols and their Merkle authentication paths.
type LayerOpening struct {
	Y0, Y1    field.Elem
	AuthPath0 []merkle.Digest
	AuthPath1 []merkle.Digest
}

// QueryProof is the full set of openings for one query index, across
// every committed layer.
type QueryProof struct {
	Index  uint64
	Layers []LayerOpening
}

// QueryPhase implements spec section 4.5 step 4: draws NumQueries
// indices from tr (each in [0, N0/2)) and opens the two folding siblings
// at every layer.
func QueryPhase(layers []Layer, params Params, tr *transcript.Transcript) ([]QueryProof, error) {
	half0 := params.N0 / 2
	queries := make([]QueryProof, params.NumQueries)

	for j := 0; j < params.NumQueries; j++ {
		q, err := tr.ChallengeIndex(uint64(half0))
		if err != nil {
			return nil, err
		}

		openings := make([]LayerOpening, len(layers))
		for i, layer := range layers {
			half := len(layer.Codeword) / 2
			pos := int(q) % half
			sibling := pos + half

			path0, err := layer.Tree.Open(pos)
			if err != nil {
				return nil, err
			}
			path1, err := layer.Tree.Open(sibling)
			if err != nil {
				return nil, err
			}

			openings[i] = LayerOpening{
				Y0:        layer.Codeword[pos],
				Y1:        layer.Codeword[sibling],
				AuthPath0: path0,
				AuthPath1: path1,
			}
		}

		queries[j] = QueryProof{Index: q, Layers: openings}
	}

	return queries, nil
}

// Verify implements spec section 4.6: it reconstructs the transcript
// from the claimed roots and final value, checks expectedC0 against the
// first claimed root, verifies every query's authentication paths and
// folding consistency, and checks the final fold lands on finalValue.
func Verify(expectedC0 merkle.Digest, proof *Proof, params Params, hash merkle.HashFunc) error {
	if len(proof.Roots) != params.NumLayers {
		return dasfrierr.New(dasfrierr.BadLength, "proof root count does not match numLayers")
	}
	if params.NumLayers == 0 {
		return dasfrierr.New(dasfrierr.BadLength, "numLayers must be positive")
	}
	if proof.Roots[0] != expectedC0 {
		return dasfrierr.New(dasfrierr.MerkleMismatch, "proof's first root does not match the commitment")
	}

	tr := transcript.New(hash)
	alphas := make([]field.Elem, params.NumLayers)
	for i, root := range proof.Roots {
		tr.Absorb("COMMIT", root[:])
		alphas[i] = tr.ChallengeField()
	}

	enc := proof.FinalValue.Encode()
	tr.Absorb("FINAL", enc[:])

	half0 := params.N0 / 2
	if len(proof.Queries) != params.NumQueries {
		return dasfrierr.New(dasfrierr.BadLength, "proof query count does not match numQueries")
	}

	for _, query := range proof.Queries {
		expectedQ, err := tr.ChallengeIndex(uint64(half0))
		if err != nil {
			return err
		}
		if len(query.Layers) != params.NumLayers {
			return dasfrierr.New(dasfrierr.BadLength, "query has wrong number of layer openings")
		}

		n := params.N0
		pos := int(expectedQ)
		var fold field.Elem

		for i, opening := range query.Layers {
			half := n / 2
			p := pos % half
			sibling := p + half

			if err := merkle.Verify(proof.Roots[i], p, symbolBytes(opening.Y0), opening.AuthPath0, hash); err != nil {
				return err
			}
			if err := merkle.Verify(proof.Roots[i], sibling, symbolBytes(opening.Y1), opening.AuthPath1, hash); err != nil {
				return err
			}

			omega, err := field.PrimitiveRootOfUnity(util.Log2(n))
			if err != nil {
				return err
			}
			x := omega.Pow(uint64(p))

			fold, err = foldValue(opening.Y0, opening.Y1, x, alphas[i])
			if err != nil {
				return err
			}

			if i < len(query.Layers)-1 {
				halfNext := half / 2
				next := query.Layers[i+1]
				var presented field.Elem
				if p < halfNext {
					presented = next.Y0
				} else {
					presented = next.Y1
				}
				if !fold.Equal(presented) {
					return dasfrierr.New(dasfrierr.FoldingMismatch, "folded value does not match the symbol presented at the next layer")
				}
			}

			n = half
			pos = p
		}

		if !fold.Equal(proof.FinalValue) {
			return dasfrierr.New(dasfrierr.FinalMismatch, "final fold does not match the claimed final value")
		}
	}

	return nil
}
