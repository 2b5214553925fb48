package plumbing

import (
	"os"
	"testing"

	"github.com/brickster241/gegit/utils/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRawStatusEmptyRepository(t *testing.T) {
	r := newTestRepo(t)

	raw, err := r.ReadRawStatus()
	require.NoError(t, err)

	assert.Equal(t, "master", raw.Branch)
	assert.Equal(t, r.WorkDir, raw.WorkDir)
	assert.Equal(t, 0, raw.IndexSize)
	assert.False(t, raw.AnyDifferences)
	assert.Empty(t, raw.Untracked)
}

func TestReadRawStatusCleanTree(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "a")
	writeWorkFile(t, r, "dir/b.txt", "b")
	stage(t, r, "a.txt", "dir/b.txt")
	commitIndex(t, r, "initial")

	raw, err := r.ReadRawStatus()
	require.NoError(t, err)

	assert.Equal(t, 2, raw.IndexSize)
	assert.False(t, raw.AnyDifferences)
	assert.Empty(t, raw.Untracked)
	assert.Empty(t, raw.Modified)
}

func TestReadRawStatusNewFileBeforeFirstCommit(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "a")
	stage(t, r, "a.txt")

	raw, err := r.ReadRawStatus()
	require.NoError(t, err)

	assert.Equal(t, types.NewPathSet("a.txt"), raw.Added)
	assert.Equal(t, types.NewPathSet("a.txt"), raw.Staged)
	assert.True(t, raw.AnyDifferences)
}

func TestReadRawStatusEveryCategory(t *testing.T) {
	r := newTestRepo(t)
	for _, p := range []string{"keep.txt", "mod.txt", "del.txt", "rm.txt", "staged.txt", "conflict.txt"} {
		writeWorkFile(t, r, p, "original "+p)
	}
	stage(t, r, "keep.txt", "mod.txt", "del.txt", "rm.txt", "staged.txt", "conflict.txt")
	commitIndex(t, r, "initial")

	// Unstaged edit, deletion from disk, removal from the index
	writeWorkFile(t, r, "mod.txt", "changed in the working tree only")
	require.NoError(t, os.Remove(r.WorkPath("del.txt")))
	unstage(t, r, "rm.txt")

	// Staged edit, new staged file, untracked file
	writeWorkFile(t, r, "staged.txt", "changed and staged")
	writeWorkFile(t, r, "new.txt", "brand new")
	writeWorkFile(t, r, "notes/untracked.txt", "scratch")
	stage(t, r, "staged.txt", "new.txt")

	// Replace conflict.txt with three merge stages
	entries, err := r.LoadIndex()
	require.NoError(t, err)
	var rewritten []types.IndexEntry
	for _, e := range entries {
		if e.Filename == "conflict.txt" {
			for s := 1; s <= 3; s++ {
				rewritten = append(rewritten, IndexEntryForStage(e, s))
			}
			continue
		}
		rewritten = append(rewritten, e)
	}
	require.NoError(t, r.WriteIndex(rewritten))

	raw, err := r.ReadRawStatus()
	require.NoError(t, err)

	assert.Equal(t, types.NewPathSet("del.txt"), raw.Missing)
	assert.Equal(t, types.NewPathSet("rm.txt"), raw.Removed)
	assert.Equal(t, types.NewPathSet("new.txt"), raw.Added)
	assert.Equal(t, types.NewPathSet("mod.txt", "staged.txt"), raw.Modified)
	assert.Equal(t, types.NewPathSet("rm.txt", "staged.txt", "new.txt"), raw.Staged)
	assert.Equal(t, types.NewPathSet("conflict.txt"), raw.MergeConflict)
	assert.Equal(t, types.NewPathSet("rm.txt", "notes/untracked.txt"), raw.Untracked)
	assert.Equal(t, 5, raw.IndexSize)
	assert.True(t, raw.AnyDifferences)

	// Provider contract: at most one change category per path
	seen := map[string]int{}
	for _, s := range types.ChangeOrder {
		for p := range raw.ChangeSet(s) {
			seen[p]++
		}
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, p)
	}
}

func TestReadRawStatusSameSizeEditDetectedByHash(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "aaaa")
	stage(t, r, "a.txt")
	commitIndex(t, r, "initial")

	// Force a stat mismatch so the content hash decides
	entries, err := r.LoadIndex()
	require.NoError(t, err)
	entries[0].Mtime--
	require.NoError(t, r.WriteIndex(entries))

	raw, err := r.ReadRawStatus()
	require.NoError(t, err)
	assert.Empty(t, raw.Modified, "same content with a stale mtime is unchanged")

	writeWorkFile(t, r, "a.txt", "bbbb")
	entries[0].Mtime--
	require.NoError(t, r.WriteIndex(entries))

	raw, err = r.ReadRawStatus()
	require.NoError(t, err)
	assert.Equal(t, types.NewPathSet("a.txt"), raw.Modified)
	assert.Empty(t, raw.Staged)
}
