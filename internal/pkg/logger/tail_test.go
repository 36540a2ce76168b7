package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	lines, err := ReadRecent(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"line 8", "line 9", "line 10"}, lines)
}

func TestReadRecentFewerLinesThanRequested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	require.NoError(t, os.WriteFile(path, []byte("only line\n"), 0o644))

	lines, err := ReadRecent(path, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"only line"}, lines)
}

func TestReadRecentMissingFile(t *testing.T) {
	lines, err := ReadRecent(filepath.Join(t.TempDir(), "missing.log"), 50)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
