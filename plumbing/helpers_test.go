package plumbing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/types"
	"github.com/stretchr/testify/require"
)

var testAuthor = types.Author{Name: "Test User", Email: "test@example.com"}

// newTestRepo lays out an empty repository with an unborn master branch.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()
	for _, p := range constants.DirPaths {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, p), constants.DefaultDirPerm))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte(constants.Head), constants.DefaultFilePerm))

	r, err := NewRepo(dir)
	require.NoError(t, err)
	return r
}

func writeWorkFile(t *testing.T, r *Repo, path, content string) {
	t.Helper()
	full := r.WorkPath(path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), constants.DefaultDirPerm))
	require.NoError(t, os.WriteFile(full, []byte(content), constants.DefaultFilePerm))
}

// stage adds or refreshes paths in the index.
func stage(t *testing.T, r *Repo, paths ...string) {
	t.Helper()
	entries, err := r.LoadIndex()
	require.NoError(t, err)

	byName := map[string]types.IndexEntry{}
	var conflicted []types.IndexEntry
	for _, e := range entries {
		if e.Conflicted() {
			conflicted = append(conflicted, e)
			continue
		}
		byName[e.Filename] = e
	}
	for _, p := range paths {
		e, err := r.StageFile(p)
		require.NoError(t, err)
		byName[p] = e
	}

	out := append(MapToSortedIndex(byName), conflicted...)
	require.NoError(t, r.WriteIndex(out))
}

// unstage drops paths from the index.
func unstage(t *testing.T, r *Repo, paths ...string) {
	t.Helper()
	entries, err := r.LoadIndex()
	require.NoError(t, err)

	drop := types.NewPathSet(paths...)
	var kept []types.IndexEntry
	for _, e := range entries {
		if !drop.Has(e.Filename) {
			kept = append(kept, e)
		}
	}
	require.NoError(t, r.WriteIndex(kept))
}

// commitIndex records the current index on master and returns the commit.
func commitIndex(t *testing.T, r *Repo, message string) [20]byte {
	t.Helper()
	entries, err := r.LoadIndex()
	require.NoError(t, err)

	treeSHA, err := r.WriteTree(BuildTreeFromIndex(entries))
	require.NoError(t, err)

	var parents [][20]byte
	if parent, ok, err := r.ResolveHEAD(); err == nil && ok {
		parents = append(parents, parent)
	}

	sha, err := r.WriteCommit(treeSHA, parents, testAuthor, message, time.Unix(1700000000, 0).UTC())
	require.NoError(t, err)
	require.NoError(t, r.UpdateBranch("master", sha))
	return sha
}
