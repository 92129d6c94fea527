package packet

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// string16 is UTF-16 big-endian without a byte order mark.
var string16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Writer builds a server packet. All multi-byte writes are big-endian.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func NewWriterWithOpcode(opcode byte) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.WriteC(opcode)
	return w
}

// WriteC writes 1 byte.
func (w *Writer) WriteC(v byte) {
	w.buf = append(w.buf, v)
}

// WriteBool writes 1 byte, 0x01 for true.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteC(1)
		return
	}
	w.WriteC(0)
}

// WriteH writes 2 bytes.
func (w *Writer) WriteH(v int16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(v))
}

// WriteD writes 4 bytes.
func (w *Writer) WriteD(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

// WriteQ writes 8 bytes.
func (w *Writer) WriteQ(v int64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

// WriteF writes an IEEE-754 float32.
func (w *Writer) WriteF(v float32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// WriteF64 writes an IEEE-754 float64.
func (w *Writer) WriteF64(v float64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteS writes a string16: a 2-byte length in UTF-16 code units followed by
// the UTF-16BE text.
func (w *Writer) WriteS(s string) {
	encoded, err := string16.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// Invalid UTF-8 is replaced by the encoder; an error here means the
		// input could not be represented at all. Send an empty string.
		encoded = nil
	}
	w.WriteH(int16(len(encoded) / 2))
	w.buf = append(w.buf, encoded...)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes returns the packet content.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current length.
func (w *Writer) Len() int {
	return len(w.buf)
}
