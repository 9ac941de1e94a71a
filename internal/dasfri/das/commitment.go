package das

import (
	"encoding/binary"

	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/merkle"
)

// Commitment is the DAS commitment (n0, rho, numLayers, numQueries, C0),
// plus the FRI final value, per spec sections 3 and 6. C0 alone suffices
// to identify the committed data; the remaining layer roots live in the
// proof.
type Commitment struct {
	OriginalByteLen uint32
	N0              uint32
	LogBlowup       uint8
	NumLayers       uint8
	NumQueries      uint16
	C0              merkle.Digest
	FinalValue      field.Elem
}

// Encode serializes the commitment header per spec section 6:
// u32 originalByteLen | u32 n0 | u8 log_blowup | u8 numLayers | u16 numQueries | digest C0 | field finalValue.
func (c *Commitment) Encode() []byte {
	buf := make([]byte, 0, 4+4+1+1+2+32+8)

	var u32Buf [4]byte
	binary.LittleEndian.PutUint32(u32Buf[:], c.OriginalByteLen)
	buf = append(buf, u32Buf[:]...)

	binary.LittleEndian.PutUint32(u32Buf[:], c.N0)
	buf = append(buf, u32Buf[:]...)

	buf = append(buf, c.LogBlowup, c.NumLayers)

	var u16Buf [2]byte
	binary.LittleEndian.PutUint16(u16Buf[:], c.NumQueries)
	buf = append(buf, u16Buf[:]...)

	buf = append(buf, c.C0[:]...)

	finalEnc := c.FinalValue.Encode()
	buf = append(buf, finalEnc[:]...)

	return buf
}

const commitmentHeaderLen = 4 + 4 + 1 + 1 + 2 + 32 + 8

// DecodeCommitment parses a commitment header produced by Commitment.Encode.
func DecodeCommitment(buf []byte) (*Commitment, error) {
	if len(buf) != commitmentHeaderLen {
		return nil, dasfrierr.New(dasfrierr.InvalidEncoding, "commitment header has the wrong length")
	}

	c := &Commitment{}
	c.OriginalByteLen = binary.LittleEndian.Uint32(buf[0:4])
	c.N0 = binary.LittleEndian.Uint32(buf[4:8])
	c.LogBlowup = buf[8]
	c.NumLayers = buf[9]
	c.NumQueries = binary.LittleEndian.Uint16(buf[10:12])
	copy(c.C0[:], buf[12:44])

	finalValue, err := field.DecodeElem(buf[44:52])
	if err != nil {
		return nil, err
	}
	c.FinalValue = finalValue

	return c, nil
}
