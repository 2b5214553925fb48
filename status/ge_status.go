package status

import (
	"github.com/brickster241/gegit/utils/log"
	"github.com/brickster241/gegit/utils/types"
	"github.com/sirupsen/logrus"
)

// Options tweak one status computation.
type Options struct {
	// HideUntracked drops untracked paths entirely, so they neither get a
	// section nor make the report non-clean.
	HideUntracked bool
}

// Build runs the whole pipeline on a snapshot: untracked resolution,
// classification, then the report. Nothing is returned when classification
// fails, so no partial output can reach the sink.
func Build(raw *types.RawStatus, filter IgnoreFilter, opts Options) (Report, error) {
	c, err := Classify(raw)
	if err != nil {
		return Report{}, err
	}

	// A path already listed as a change is never also untracked
	var untracked []string
	if !opts.HideUntracked {
		candidates := raw.Untracked.Except(c.listed())
		untracked = ResolveUntracked(candidates, raw.WorkDir, filter)
	}

	log.WithFields(logrus.Fields{
		"conflicts": len(c.MergeConflicts),
		"staged":    len(c.Staged),
		"unstaged":  len(c.Unstaged),
		"untracked": len(untracked),
	}).Debug("classified status")

	return Report{
		Branch:         raw.Branch,
		IndexSize:      raw.IndexSize,
		AnyDifferences: raw.AnyDifferences,
		MergeConflicts: c.MergeConflicts,
		Staged:         c.Staged,
		Unstaged:       c.Unstaged,
		Untracked:      untracked,
	}, nil
}
