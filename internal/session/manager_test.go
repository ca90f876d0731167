package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDirResolution(t *testing.T) {
	t.Parallel()

	channelDir := t.TempDir()
	threadDir := t.TempDir()

	m := NewManager(nil, "/srv/default")
	assert.Equal(t, "/srv/default", m.WorkingDir("C1", ""))
	assert.Equal(t, "/srv/default", m.WorkingDir("C1", "171.001"))

	require.NoError(t, m.SetWorkingDir("C1", "", channelDir))
	assert.Equal(t, channelDir, m.WorkingDir("C1", ""))
	// Threads inherit from the channel until they pick their own.
	assert.Equal(t, channelDir, m.WorkingDir("C1", "171.001"))

	require.NoError(t, m.SetWorkingDir("C1", "171.001", threadDir))
	assert.Equal(t, threadDir, m.WorkingDir("C1", "171.001"))
	assert.Equal(t, channelDir, m.WorkingDir("C1", "171.002"))
	assert.Equal(t, "/srv/default", m.WorkingDir("C2", ""))
}

func TestSetWorkingDirRejectsBadPaths(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, "")
	assert.Error(t, m.SetWorkingDir("C1", "", "/does/not/exist"))

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	assert.Error(t, m.SetWorkingDir("C1", "", file))
}
