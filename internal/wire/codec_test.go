package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct {
	Op string `json:"op"`
}

func TestRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	c := New(buf)

	require.NoError(t, c.WriteJSON(ping{Op: "act"}))

	var got ping
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, "act", got.Op)
}

func TestReadFrameClosedEarly(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0})
	c := New(buf)

	_, err := c.ReadFrame()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReadFrameTooLarge(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := New(buf)
	require.NoError(t, writer.WriteJSON(map[string]string{"a": "too big for four bytes"}))

	reader := New(bytes.NewReader(buf.Bytes()))
	reader.MaxFrameSize = 4
	_, err := reader.ReadFrame()
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestWriteJSONRejectsOversizedPayload(t *testing.T) {
	buf := &bytes.Buffer{}
	c := New(buf)
	c.MaxFrameSize = 2
	err := c.WriteJSON(ping{Op: "terminate"})
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}
