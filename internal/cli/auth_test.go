package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPasswordFromReader(t *testing.T) {
	var out bytes.Buffer
	got, err := readPassword(strings.NewReader("s3cret\r\nignored\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Password: \n", out.String())

	_, err = readPassword(strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadPasswordFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	_, err = w.WriteString("piped\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := readPassword(r, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "piped", got)
}
