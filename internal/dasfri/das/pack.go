// Package das implements the Data Availability Sampling wrapper (spec
// section 4.7): pack raw bytes into field symbols, drive the FRI commit
// and query phases to produce a commitment and proofs, and reconstruct
// original bytes from any sufficiently large subset of codeword symbols.
//
// Grounded on pkg/vybium-starks-vm's role as the thin orchestration layer
// over core/protocols (Prove/Verify calling into the field, polynomial,
// and FRI packages in sequence).
package das

import (
	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
)

// bytesPerSymbol is the number of raw bytes embedded per field symbol.
// Every chunk value is then strictly below 2^24, far under the field
// prime P = 2^31-1, so packing is injective: no chunk ever wraps around
// into another chunk's residue, unlike a 4-byte (32-bit) chunk would.
const bytesPerSymbol = 3

// packBytes splits data into bytesPerSymbol-byte little-endian chunks,
// each embedded as a base-field symbol, zero-padding the final chunk and
// then the symbol count itself up to the next power of two (spec section
// 4.7).
func packBytes(data []byte) []field.Elem {
	rawSymbols := (len(data) + bytesPerSymbol - 1) / bytesPerSymbol
	k := 1
	for k < rawSymbols {
		k <<= 1
	}

	message := make([]field.Elem, k)
	for i := 0; i < rawSymbols; i++ {
		var v uint32
		start := i * bytesPerSymbol
		for b := 0; b < bytesPerSymbol; b++ {
			idx := start + b
			if idx < len(data) {
				v |= uint32(data[idx]) << (8 * uint(b))
			}
		}
		message[i] = field.FromBase(field.NewBase(uint64(v)))
	}

	return message
}

// unpackBytes inverts packBytes given the recovered message symbols and
// the original byte length recorded in the commitment header.
func unpackBytes(message []field.Elem, originalByteLen uint32) ([]byte, error) {
	rawSymbols := (int(originalByteLen) + bytesPerSymbol - 1) / bytesPerSymbol
	if rawSymbols > len(message) {
		return nil, dasfrierr.New(dasfrierr.BadLength, "recovered message is shorter than the recorded byte length")
	}

	out := make([]byte, 0, originalByteLen)
	for i := 0; i < rawSymbols; i++ {
		v := uint32(message[i].A)
		remaining := int(originalByteLen) - len(out)
		if remaining > bytesPerSymbol {
			remaining = bytesPerSymbol
		}
		for b := 0; b < remaining; b++ {
			out = append(out, byte(v>>(8*uint(b))))
		}
	}

	return out, nil
}
