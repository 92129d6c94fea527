package net

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize bounds a single frame including its 2-byte header.
const MaxFrameSize = 65535

// ReadFrame reads one packet frame from r.
// Wire format: [2 bytes BE: total length including header][payload].
// Returns the payload bytes (without the 2-byte length header).
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read frame header: %w", err)
	}

	totalLen := int(binary.BigEndian.Uint16(header[:]))
	payloadLen := totalLen - 2
	if payloadLen <= 0 {
		return nil, fmt.Errorf("invalid frame length: %d", totalLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read frame payload (%d bytes): %w", payloadLen, err)
	}
	return payload, nil
}

// WriteFrame writes one packet frame to w.
// Wire format: [2 bytes BE: len(data)+2][data].
func WriteFrame(w io.Writer, data []byte) error {
	totalLen := len(data) + 2
	if totalLen > MaxFrameSize {
		return fmt.Errorf("frame too large: %d bytes", totalLen)
	}
	buf := make([]byte, 2, totalLen)
	binary.BigEndian.PutUint16(buf, uint16(totalLen))
	buf = append(buf, data...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
