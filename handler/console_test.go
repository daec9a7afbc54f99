package handler

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"go-bank-ledger/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_ReadInt(t *testing.T) {
	out := new(bytes.Buffer)
	c := NewConsole(strings.NewReader(" 42 \nabc\n-1\n"), out)

	n, err := c.ReadInt("> ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = c.ReadInt("> ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	n, err = c.ReadInt("> ")
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	_, err = c.ReadInt("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > > ", out.String())
}

func TestConsole_ReadLine(t *testing.T) {
	c := NewConsole(strings.NewReader("Mary Ann\n"), io.Discard)

	line, err := c.ReadLine("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Mary Ann", line)

	_, err = c.ReadLine("Name: ")
	assert.ErrorIs(t, err, io.EOF)
}
