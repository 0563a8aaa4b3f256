package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerReadsLinesUntilEOF(t *testing.T) {
	var out bytes.Buffer
	s := NewScanner(strings.NewReader("first\n\nthird"), &out)

	line, err := s.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = s.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = s.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "third", line)

	_, err = s.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > > ", out.String())
}
