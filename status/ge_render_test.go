package status

import (
	"bytes"
	"errors"
	"testing"

	"github.com/brickster241/gegit/utils/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStagedNewFile(t *testing.T) {
	lines := Render(Report{
		Branch:         "master",
		IndexSize:      1,
		AnyDifferences: true,
		Staged:         []types.StatusEntry{entry("a.txt", types.AddedStatus, true)},
	})

	assert.Equal(t, []string{
		"# On branch master",
		"#",
		"# Changes to be committed:",
		"#   (use \"git reset HEAD (file)...\" to unstage)",
		"#",
		"#       new file:   a.txt",
		"#",
	}, lines)
	assert.NotContains(t, lines, nothingStaged)
}

func TestRenderUnstagedModification(t *testing.T) {
	lines := Render(Report{
		Branch:         "master",
		IndexSize:      3,
		AnyDifferences: true,
		Unstaged:       []types.StatusEntry{entry("b.txt", types.ModifiedStatus, false)},
	})

	assert.Equal(t, []string{
		"# On branch master",
		"#",
		"# Changed but not updated:",
		"#   (use \"git add (file)...\" to update what will be committed)",
		"#   (use \"git checkout -- (file)...\" to discard changes in working directory)",
		"#",
		"#       modified:   b.txt",
		"#",
		"no changes added to commit (use \"git add\" and/or \"git commit -a\")",
	}, lines)
}

func TestRenderInitialCommit(t *testing.T) {
	lines := Render(Report{Branch: "master"})

	assert.Equal(t, []string{
		"# On branch master",
		"#",
		"# Initial commit",
		"#",
		"# nothing to commit (create/copy files and use \"git add\" to track)",
	}, lines)
}

func TestRenderClean(t *testing.T) {
	lines := Render(Report{Branch: "master", IndexSize: 5})
	assert.Equal(t, []string{"# nothing to commit (working directory clean)"}, lines)
}

func TestRenderAllSections(t *testing.T) {
	lines := Render(Report{
		Branch:         "feature/x",
		IndexSize:      4,
		AnyDifferences: true,
		MergeConflicts: []string{"c.txt", "d.txt"},
		Staged: []types.StatusEntry{
			entry("gone.txt", types.RemovedStatus, true),
			entry("lost.txt", types.MissingStatus, true),
		},
		Unstaged:  []types.StatusEntry{entry("m.txt", types.ModifiedStatus, false)},
		Untracked: []string{"new/one.txt", "two.txt"},
	})

	assert.Equal(t, []string{
		"c.txt: needs merge",
		"d.txt: needs merge",
		"# On branch feature/x",
		"#",
		"# Changes to be committed:",
		"#   (use \"git reset HEAD (file)...\" to unstage)",
		"#",
		"#       deleted:    gone.txt",
		"#       missing:    lost.txt",
		"#",
		"# Changed but not updated:",
		"#   (use \"git add (file)...\" to update what will be committed)",
		"#   (use \"git checkout -- (file)...\" to discard changes in working directory)",
		"#",
		"#       modified:   m.txt",
		"#",
		"# Untracked files:",
		"#   (use \"git add (file)...\" to include in what will be committed)",
		"#",
		"#       new/one.txt",
		"#       two.txt",
	}, lines)
}

func TestRenderUntrackedOnlyForcesReport(t *testing.T) {
	lines := Render(Report{Branch: "main", IndexSize: 2, Untracked: []string{"u.txt"}})

	require.NotEmpty(t, lines)
	assert.Equal(t, "# On branch main", lines[0])
	assert.Contains(t, lines, "#       u.txt")
	assert.Equal(t, nothingStaged, lines[len(lines)-1])
}

func TestFormatEntryLabels(t *testing.T) {
	tests := []struct {
		status types.StatusType
		want   string
	}{
		{types.MissingStatus, "#       missing:    f"},
		{types.RemovedStatus, "#       deleted:    f"},
		{types.ModifiedStatus, "#       modified:   f"},
		{types.AddedStatus, "#       new file:   f"},
		{types.UnmergedStatus, "#       unmerged:   f"},
	}
	for _, tt := range tests {
		t.Run(tt.status.Label(), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEntry(entry("f", tt.status, false)))
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []string{"one", "#", "two"}))
	assert.Equal(t, "one\n#\ntwo\n", buf.String())

	err := WriteLines(failingWriter{}, []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink closed")
}
