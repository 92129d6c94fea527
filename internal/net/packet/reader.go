package packet

import (
	"encoding/binary"
	"math"
)

// Reader reads packet fields from a frame payload. Byte 0 is always the
// opcode. Reads past the end return zero values; check Remaining or Short
// when a handler must reject truncated packets.
type Reader struct {
	data  []byte
	off   int
	short bool
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data, off: 1} // skip opcode byte
}

func (r *Reader) Opcode() byte {
	if len(r.data) == 0 {
		return 0
	}
	return r.data[0]
}

func (r *Reader) need(n int) bool {
	if r.off+n > len(r.data) {
		r.short = true
		r.off = len(r.data)
		return false
	}
	return true
}

// ReadC reads 1 unsigned byte.
func (r *Reader) ReadC() byte {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// ReadBool reads 1 byte, non-zero is true.
func (r *Reader) ReadBool() bool {
	return r.ReadC() != 0
}

// ReadH reads 2 bytes as int16.
func (r *Reader) ReadH() int16 {
	if !r.need(2) {
		return 0
	}
	v := int16(binary.BigEndian.Uint16(r.data[r.off:]))
	r.off += 2
	return v
}

// ReadD reads 4 bytes as int32.
func (r *Reader) ReadD() int32 {
	if !r.need(4) {
		return 0
	}
	v := int32(binary.BigEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

// ReadQ reads 8 bytes as int64.
func (r *Reader) ReadQ() int64 {
	if !r.need(8) {
		return 0
	}
	v := int64(binary.BigEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v
}

// ReadF reads an IEEE-754 float32.
func (r *Reader) ReadF() float32 {
	if !r.need(4) {
		return 0
	}
	v := math.Float32frombits(binary.BigEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

// ReadF64 reads an IEEE-754 float64.
func (r *Reader) ReadF64() float64 {
	if !r.need(8) {
		return 0
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v
}

// ReadS reads a string16 and returns UTF-8.
func (r *Reader) ReadS() string {
	n := int(r.ReadH())
	if n <= 0 || !r.need(n*2) {
		return ""
	}
	raw := r.data[r.off : r.off+n*2]
	r.off += n * 2
	decoded, err := string16.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Short reports whether any read ran past the end of the payload.
func (r *Reader) Short() bool {
	return r.short
}
