package types

import (
	"maps"
	"slices"
)

// PathSet is an unordered set of repository-relative paths.
type PathSet map[string]struct{}

// NewPathSet builds a set from the given paths.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

func (s PathSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

func (s PathSet) Len() int {
	return len(s)
}

// Clone returns an independent copy, never nil.
func (s PathSet) Clone() PathSet {
	out := make(PathSet, len(s))
	maps.Copy(out, s)
	return out
}

// Remove deletes every path of other from s in place.
func (s PathSet) Remove(other PathSet) {
	for p := range other {
		delete(s, p)
	}
}

// Except returns the paths of s that are not in other.
func (s PathSet) Except(other PathSet) PathSet {
	out := make(PathSet)
	for p := range s {
		if !other.Has(p) {
			out.Add(p)
		}
	}
	return out
}

// Intersect returns the paths present in both s and other.
func (s PathSet) Intersect(other PathSet) PathSet {
	out := make(PathSet)
	for p := range s {
		if other.Has(p) {
			out.Add(p)
		}
	}
	return out
}

// Sorted returns the paths in ascending byte order.
func (s PathSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// RawStatus is one snapshot of the repository state as seen by the index,
// the HEAD tree and the working directory. The sets may overlap.
type RawStatus struct {
	Branch  string
	WorkDir string

	Added         PathSet
	Removed       PathSet
	Modified      PathSet
	Missing       PathSet
	Staged        PathSet
	MergeConflict PathSet
	Untracked     PathSet

	IndexSize      int
	AnyDifferences bool
}

// NewRawStatus returns a snapshot with every set allocated and empty.
func NewRawStatus() *RawStatus {
	return &RawStatus{
		Added:         make(PathSet),
		Removed:       make(PathSet),
		Modified:      make(PathSet),
		Missing:       make(PathSet),
		Staged:        make(PathSet),
		MergeConflict: make(PathSet),
		Untracked:     make(PathSet),
	}
}

// ChangeSet returns the raw set backing a change category.
func (r *RawStatus) ChangeSet(s StatusType) PathSet {
	switch s {
	case MissingStatus:
		return r.Missing
	case RemovedStatus:
		return r.Removed
	case ModifiedStatus:
		return r.Modified
	case AddedStatus:
		return r.Added
	case UnmergedStatus:
		return r.MergeConflict
	}
	return nil
}

// ComputeAnyDifferences reports whether any tracked-state set is non-empty.
// Untracked paths do not count.
func (r *RawStatus) ComputeAnyDifferences() bool {
	return r.Added.Len() > 0 || r.Removed.Len() > 0 || r.Modified.Len() > 0 ||
		r.Missing.Len() > 0 || r.Staged.Len() > 0 || r.MergeConflict.Len() > 0
}
