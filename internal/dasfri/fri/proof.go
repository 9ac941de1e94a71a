package fri

import (
	"encoding/binary"

	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
)

// Proof is the FRI proof π from spec section 3: the ordered layer roots,
// the final constant value, and the per-query layer openings, matching
// the binary layout in spec section 6 exactly (the query index itself is
// not serialized, since the verifier re-derives it from the transcript).
type Proof struct {
	Roots      []merkle.Digest
	FinalValue field.Elem
	Queries    []QueryProof
}

// Encode serializes the proof per spec section 6:
//
//	u8 L, then L x 32-byte roots
//	field finalValue
//	u16 Q, then Q query blocks, each: for i=0..L-1: field y0 | field y1 | u8 depth | depth*32 authPath0 | depth*32 authPath1
func (p *Proof) Encode() ([]byte, error) {
	if len(p.Roots) > 255 {
		return nil, dasfrierr.New(dasfrierr.BadLength, "too many FRI layers to encode as u8")
	}
	if len(p.Queries) > 65535 {
		return nil, dasfrierr.New(dasfrierr.BadLength, "too many FRI queries to encode as u16")
	}

	buf := make([]byte, 0, 1+len(p.Roots)*32+8+2+1024)
	buf = append(buf, byte(len(p.Roots)))
	for _, root := range p.Roots {
		buf = append(buf, root[:]...)
	}

	finalEnc := p.FinalValue.Encode()
	buf = append(buf, finalEnc[:]...)

	var qBuf [2]byte
	binary.LittleEndian.PutUint16(qBuf[:], uint16(len(p.Queries)))
	buf = append(buf, qBuf[:]...)

	for _, query := range p.Queries {
		if len(query.Layers) != len(p.Roots) {
			return nil, dasfrierr.New(dasfrierr.BadLength, "query layer count does not match proof layer count")
		}
		for _, layer := range query.Layers {
			if len(layer.AuthPath0) > 255 || len(layer.AuthPath1) > 255 {
				return nil, dasfrierr.New(dasfrierr.BadLength, "auth path too deep to encode as u8")
			}
			if len(layer.AuthPath0) != len(layer.AuthPath1) {
				return nil, dasfrierr.New(dasfrierr.BadLength, "auth path depths must match for both siblings")
			}

			y0 := layer.Y0.Encode()
			y1 := layer.Y1.Encode()
			buf = append(buf, y0[:]...)
			buf = append(buf, y1[:]...)
			buf = append(buf, byte(len(layer.AuthPath0)))
			for _, d := range layer.AuthPath0 {
				buf = append(buf, d[:]...)
			}
			for _, d := range layer.AuthPath1 {
				buf = append(buf, d[:]...)
			}
		}
	}

	return buf, nil
}

// DecodeProof parses a proof produced by Proof.Encode. The query count is
// read from the encoding itself and is not checked here; Verify compares it
// against the expected NumQueries.
func DecodeProof(buf []byte) (*Proof, error) {
	r := &byteReader{buf: buf}

	l, err := r.readByte()
	if err != nil {
		return nil, err
	}

	roots := make([]merkle.Digest, l)
	for i := range roots {
		d, err := r.readDigest()
		if err != nil {
			return nil, err
		}
		roots[i] = d
	}

	finalBytes, err := r.readN(8)
	if err != nil {
		return nil, err
	}
	finalValue, err := field.DecodeElem(finalBytes)
	if err != nil {
		return nil, err
	}

	qBytes, err := r.readN(2)
	if err != nil {
		return nil, err
	}
	q := binary.LittleEndian.Uint16(qBytes)

	queries := make([]QueryProof, q)
	for j := range queries {
		layers := make([]LayerOpening, l)
		for i := range layers {
			y0Bytes, err := r.readN(8)
			if err != nil {
				return nil, err
			}
			y0, err := field.DecodeElem(y0Bytes)
			if err != nil {
				return nil, err
			}

			y1Bytes, err := r.readN(8)
			if err != nil {
				return nil, err
			}
			y1, err := field.DecodeElem(y1Bytes)
			if err != nil {
				return nil, err
			}

			depth, err := r.readByte()
			if err != nil {
				return nil, err
			}

			path0 := make([]merkle.Digest, depth)
			for k := range path0 {
				d, err := r.readDigest()
				if err != nil {
					return nil, err
				}
				path0[k] = d
			}
			path1 := make([]merkle.Digest, depth)
			for k := range path1 {
				d, err := r.readDigest()
				if err != nil {
					return nil, err
				}
				path1[k] = d
			}

			layers[i] = LayerOpening{Y0: y0, Y1: y1, AuthPath0: path0, AuthPath1: path1}
		}
		queries[j] = QueryProof{Layers: layers}
	}

	if !r.exhausted() {
		return nil, dasfrierr.New(dasfrierr.InvalidEncoding, "trailing bytes after FRI proof")
	}

	return &Proof{Roots: roots, FinalValue: finalValue, Queries: queries}, nil
}

// byteReader is a minimal bounds-checked cursor over a byte slice, used to
// keep DecodeProof free of repeated length arithmetic.
type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, dasfrierr.New(dasfrierr.InvalidEncoding, "unexpected end of FRI proof")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readN(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, dasfrierr.New(dasfrierr.InvalidEncoding, "unexpected end of FRI proof")
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *byteReader) readDigest() (merkle.Digest, error) {
	b, err := r.readN(32)
	if err != nil {
		return merkle.Digest{}, err
	}
	var d merkle.Digest
	copy(d[:], b)
	return d, nil
}

func (r *byteReader) exhausted() bool {
	return r.pos == len(r.buf)
}
