// Package status turns a raw repository snapshot into the porcelain status
// report: untracked resolution, classification into staged and unstaged
// buckets, and rendering to lines.
package status

import (
	"fmt"

	"github.com/brickster241/gegit/utils"
	"github.com/brickster241/gegit/utils/types"
)

// DuplicateClassificationError is returned when a path falls into two
// change categories of the same bucket. It means the raw snapshot broke its
// disjointness contract.
type DuplicateClassificationError struct {
	Path   string
	Staged bool
	First  types.StatusType
	Second types.StatusType
}

func (e *DuplicateClassificationError) Error() string {
	bucket := "unstaged"
	if e.Staged {
		bucket = "staged"
	}
	return fmt.Sprintf("path %q classified as both %s and %s in the %s bucket", e.Path, e.First, e.Second, bucket)
}

// Classification is the result of Classify. Every slice is sorted by path
// and no path appears in more than one of them.
type Classification struct {
	MergeConflicts []string
	Staged         []types.StatusEntry
	Unstaged       []types.StatusEntry
}

// Classify resolves the overlapping raw sets into merge conflicts, staged
// changes and unstaged changes. raw is not modified.
//
// Conflicted paths are dropped from every other set first. Categories are
// then visited in precedence order Missing, Removed, Modified, Added: a
// path enters the staged bucket when it is in Staged, the unstaged bucket
// otherwise.
func Classify(raw *types.RawStatus) (*Classification, error) {
	conflicts := raw.MergeConflict.Clone()

	staged := raw.Staged.Clone()
	staged.Remove(conflicts)

	unstagedMap := map[string]types.StatusType{}
	stagedMap := map[string]types.StatusType{}

	for _, category := range types.ChangeOrder {
		set := raw.ChangeSet(category).Clone()
		set.Remove(conflicts)

		if err := insert(unstagedMap, set.Except(staged), category, false); err != nil {
			return nil, err
		}
		if err := insert(stagedMap, staged.Intersect(set), category, true); err != nil {
			return nil, err
		}
	}

	return &Classification{
		MergeConflicts: conflicts.Sorted(),
		Staged:         utils.SortedEntries(stagedMap, true),
		Unstaged:       utils.SortedEntries(unstagedMap, false),
	}, nil
}

// listed returns every path that appears in one of the buckets.
func (c *Classification) listed() types.PathSet {
	out := types.NewPathSet(c.MergeConflicts...)
	for _, e := range c.Staged {
		out.Add(e.Path)
	}
	for _, e := range c.Unstaged {
		out.Add(e.Path)
	}
	return out
}

func insert(bucket map[string]types.StatusType, paths types.PathSet, category types.StatusType, staged bool) error {
	// Sorted so the reported duplicate is the same on every run
	for _, p := range paths.Sorted() {
		if prev, ok := bucket[p]; ok {
			return &DuplicateClassificationError{Path: p, Staged: staged, First: prev, Second: category}
		}
		bucket[p] = category
	}
	return nil
}
