package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brickster241/gegit/utils/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedEntries(t *testing.T) {
	got := SortedEntries(map[string]types.StatusType{
		"b":   types.ModifiedStatus,
		"B":   types.AddedStatus,
		"a/z": types.MissingStatus,
	}, true)

	assert.Equal(t, []types.StatusEntry{
		{Path: "B", Status: types.AddedStatus, Staged: true},
		{Path: "a/z", Status: types.MissingStatus, Staged: true},
		{Path: "b", Status: types.ModifiedStatus, Staged: true},
	}, got)
	assert.Empty(t, SortedEntries(nil, false))
}

func TestParseModeStr(t *testing.T) {
	mode, err := ParseModeStr("100644")
	require.NoError(t, err)
	assert.Equal(t, uint32(0o100644), mode)

	mode, err = ParseModeStr("40000")
	require.NoError(t, err)
	assert.Equal(t, uint32(0o40000), mode)

	_, err = ParseModeStr("100689")
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.gitignore_global")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gitignore_global"), got)

	got, err = ExpandPath("/etc/ignore")
	require.NoError(t, err)
	assert.Equal(t, "/etc/ignore", got)

	got, err = ExpandPath("~user/x")
	require.NoError(t, err)
	assert.Equal(t, "~user/x", got)
}

func TestRelSlash(t *testing.T) {
	root := t.TempDir()

	got, err := RelSlash(root, filepath.Join(root, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a/b.txt", got)

	got, err = RelSlash(root, "a/./c")
	require.NoError(t, err)
	assert.Equal(t, "a/c", got)
}
