package plumbing

import (
	"os"
	"testing"

	"github.com/brickster241/gegit/utils/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIndexMissingIsEmpty(t *testing.T) {
	r := newTestRepo(t)

	entries, err := r.LoadIndex()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteIndexKeepsStagesAndOrder(t *testing.T) {
	r := newTestRepo(t)

	base := types.IndexEntry{Mode: 0o100644, FileSize: 3, SHA1: [20]byte{1}}
	merged := base
	merged.Filename = "z/dir/long-name-file.txt"
	ours := IndexEntryForStage(base, 2)
	ours.Filename = "conflict.txt"
	theirs := IndexEntryForStage(base, 3)
	theirs.Filename = "conflict.txt"
	ancestor := IndexEntryForStage(base, 1)
	ancestor.Filename = "conflict.txt"

	require.NoError(t, r.WriteIndex([]types.IndexEntry{merged, theirs, ours, ancestor}))

	entries, err := r.LoadIndex()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "conflict.txt", entries[0].Filename)
	assert.Equal(t, []int{1, 2, 3, 0}, []int{entries[0].Stage(), entries[1].Stage(), entries[2].Stage(), entries[3].Stage()})
	assert.Equal(t, merged.Filename, entries[3].Filename)
	assert.Equal(t, merged.SHA1, entries[3].SHA1)
	assert.Equal(t, uint16(len(merged.Filename)), entries[3].Flags)

	assert.Equal(t, []string{merged.Filename}, keys(IndexToMap(entries)))
	assert.Equal(t, types.NewPathSet("conflict.txt"), ConflictPaths(entries))
}

func TestLoadIndexRejectsCorruption(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.WriteIndex([]types.IndexEntry{{Filename: "a.txt"}}))

	data, err := os.ReadFile(r.GitPath("index"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   string
	}{
		{"checksum", func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }, "checksum"},
		{"header", func(b []byte) []byte { copy(b, "XXXX"); return b }, "header"},
		{"short", func(b []byte) []byte { return b[:10] }, "too short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrupt := tt.mutate(append([]byte(nil), data...))
			require.NoError(t, os.WriteFile(r.GitPath("index"), corrupt, 0o644))

			_, err := r.LoadIndex()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStageFile(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "dir/a.txt", "hello\n")

	e, err := r.StageFile("dir/a.txt")
	require.NoError(t, err)

	assert.Equal(t, "dir/a.txt", e.Filename)
	assert.Equal(t, uint32(6), e.FileSize)
	assert.Equal(t, HashObject(types.BlobObject, []byte("hello\n")), e.SHA1)

	objType, content, err := r.ReadObject(e.SHA1)
	require.NoError(t, err)
	assert.Equal(t, types.BlobObject, objType)
	assert.Equal(t, "hello\n", string(content))
}

func keys(m map[string]types.IndexEntry) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestApplyIndexUpdates(t *testing.T) {
	entry := func(name string, stage int) types.IndexEntry {
		return IndexEntryForStage(types.IndexEntry{Filename: name, Mode: 0o100644}, stage)
	}
	entries := []types.IndexEntry{
		entry("a", 0),
		entry("b", 0),
		entry("c", 2), entry("c", 3),
		entry("d", 1), entry("d", 2),
	}

	out := ApplyIndexUpdates(entries,
		map[string]types.IndexEntry{"c": entry("c", 3), "e": entry("e", 0)},
		types.NewPathSet("b"),
	)

	var got []string
	for _, e := range out {
		got = append(got, e.Filename+":"+string(rune('0'+e.Stage())))
	}
	assert.Equal(t, []string{"a:0", "c:0", "e:0", "d:1", "d:2"}, got)
}
