package status

import (
	"fmt"
	"io"

	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/types"
)

// Fixed report wording. Scripts parse this output, keep it literal.
const (
	branchHeaderPrefix = "# On branch "
	commentLine        = "#"
	entryIndent        = "#       "
	needsMergeSuffix   = ": needs merge"

	stagedHeader = "# Changes to be committed:"
	stagedHint   = "#   (use \"git reset HEAD (file)...\" to unstage)"

	unstagedHeader      = "# Changed but not updated:"
	unstagedHintAdd     = "#   (use \"git add (file)...\" to update what will be committed)"
	unstagedHintDiscard = "#   (use \"git checkout -- (file)...\" to discard changes in working directory)"

	untrackedHeader = "# Untracked files:"
	untrackedHint   = "#   (use \"git add (file)...\" to include in what will be committed)"

	nothingStaged       = "no changes added to commit (use \"git add\" and/or \"git commit -a\")"
	initialCommit       = "# Initial commit"
	nothingToCommitInit = "# nothing to commit (create/copy files and use \"git add\" to track)"
	workingDirClean     = "# nothing to commit (working directory clean)"
)

// Report is everything the renderer needs for one status invocation.
type Report struct {
	Branch         string
	IndexSize      int
	AnyDifferences bool
	MergeConflicts []string
	Staged         []types.StatusEntry
	Unstaged       []types.StatusEntry
	Untracked      []string
}

// FormatEntry renders one classified path, label padded so paths line up.
func FormatEntry(e types.StatusEntry) string {
	return fmt.Sprintf("%s%-12s%s", entryIndent, e.Status.Label()+":", e.Path)
}

// Render produces the report lines in display order.
func Render(r Report) []string {
	var lines []string

	switch {
	case r.AnyDifferences || len(r.Untracked) > 0:
		for _, path := range r.MergeConflicts {
			lines = append(lines, path+needsMergeSuffix)
		}
		lines = append(lines, branchHeaderPrefix+r.Branch, commentLine)

		if len(r.Staged) > 0 {
			lines = append(lines, stagedHeader, stagedHint, commentLine)
			for _, e := range r.Staged {
				lines = append(lines, FormatEntry(e))
			}
			lines = append(lines, commentLine)
		}

		if len(r.Unstaged) > 0 {
			lines = append(lines, unstagedHeader, unstagedHintAdd, unstagedHintDiscard, commentLine)
			for _, e := range r.Unstaged {
				lines = append(lines, FormatEntry(e))
			}
			lines = append(lines, commentLine)
		}

		if len(r.Untracked) > 0 {
			lines = append(lines, untrackedHeader, untrackedHint, commentLine)
			for _, path := range r.Untracked {
				lines = append(lines, entryIndent+path)
			}
		}

		if len(r.Staged) == 0 {
			lines = append(lines, nothingStaged)
		}

	case r.IndexSize <= 0:
		lines = append(lines,
			branchHeaderPrefix+r.Branch,
			commentLine,
			initialCommit,
			commentLine,
			nothingToCommitInit,
		)

	default:
		lines = append(lines, workingDirClean)
	}

	return lines
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.WithStackTrace(err)
		}
	}
	return nil
}
