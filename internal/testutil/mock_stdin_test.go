package testutil

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStdinReaderOneAnswerPerRead(t *testing.T) {
	r := NewMockStdinReader([]string{"my-app", ""})
	buf := make([]byte, 64)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "my-app\r", string(buf[:n]))

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "\r", string(buf[:n]))

	_, err = r.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestMockStdinReaderShortBuffer(t *testing.T) {
	r := SingleMockStdinReader("abc")
	buf := make([]byte, 2)

	n, _ := r.Read(buf)
	assert.Equal(t, "ab", string(buf[:n]))
	n, _ = r.Read(buf)
	assert.Equal(t, "c\r", string(buf[:n]))
}
