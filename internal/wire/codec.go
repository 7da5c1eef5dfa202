// Package wire implements the length-prefixed JSON framing used on the bot
// channel: a 4-byte big-endian length followed by a UTF-8 JSON payload.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxFrameSize is the default cap on a single frame's payload size.
const DefaultMaxFrameSize = 1 << 20 // 1 MiB

// ErrFrameTooLarge is returned when a frame's declared length exceeds the cap.
var ErrFrameTooLarge = errors.New("wire: frame exceeds max size")

// ErrClosed is returned when the peer closes the connection mid-frame.
var ErrClosed = errors.New("wire: connection closed before frame complete")

// Codec reads and writes length-prefixed JSON frames over rw, rejecting any
// frame whose declared length exceeds MaxFrameSize.
type Codec struct {
	rw          io.ReadWriter
	MaxFrameSize int
}

// New returns a Codec with the default max frame size.
func New(rw io.ReadWriter) *Codec {
	return &Codec{rw: rw, MaxFrameSize: DefaultMaxFrameSize}
}

// ReadFrame blocks until a full frame has arrived and returns its raw JSON
// bytes. It never interprets the payload.
func (c *Codec) ReadFrame() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(c.rw, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("wire: read length prefix: %w", err)
	}

	n := binary.BigEndian.Uint32(hdr[:])
	max := c.maxFrameSize()
	if n > uint32(max) {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, max)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(c.rw, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("wire: read payload: %w", err)
	}
	return payload, nil
}

// ReadJSON reads one frame and unmarshals it into v.
func (c *Codec) ReadJSON(v interface{}) error {
	payload, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("wire: decode json: %w", err)
	}
	return nil
}

// WriteJSON marshals v compactly and writes it as one frame in a single
// best-effort send.
func (c *Codec) WriteJSON(v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: encode json: %w", err)
	}
	if len(payload) > c.maxFrameSize() {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(payload), c.maxFrameSize())
	}

	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(payload)))
	copy(buf[4:], payload)

	if _, err := c.rw.Write(buf); err != nil {
		return fmt.Errorf("wire: write frame: %w", err)
	}
	return nil
}

func (c *Codec) maxFrameSize() int {
	if c.MaxFrameSize <= 0 {
		return DefaultMaxFrameSize
	}
	return c.MaxFrameSize
}
