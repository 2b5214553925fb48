package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathSetOperations(t *testing.T) {
	s := NewPathSet("b", "a", "c")
	other := NewPathSet("c", "d")

	assert.Equal(t, []string{"a", "b"}, s.Except(other).Sorted())
	assert.Equal(t, []string{"c"}, s.Intersect(other).Sorted())

	clone := s.Clone()
	clone.Remove(other)
	assert.Equal(t, []string{"a", "b"}, clone.Sorted())
	assert.Equal(t, 3, s.Len(), "Remove on a clone leaves the original alone")

	var empty PathSet
	assert.NotNil(t, empty.Clone())
	assert.Empty(t, empty.Sorted())
	assert.False(t, empty.Has("a"))
}

func TestRawStatusChangeSet(t *testing.T) {
	raw := NewRawStatus()
	raw.Missing.Add("m")
	raw.Removed.Add("r")
	raw.Modified.Add("x")
	raw.Added.Add("n")
	raw.MergeConflict.Add("u")

	assert.True(t, raw.ChangeSet(MissingStatus).Has("m"))
	assert.True(t, raw.ChangeSet(RemovedStatus).Has("r"))
	assert.True(t, raw.ChangeSet(ModifiedStatus).Has("x"))
	assert.True(t, raw.ChangeSet(AddedStatus).Has("n"))
	assert.True(t, raw.ChangeSet(UnmergedStatus).Has("u"))
	assert.Nil(t, raw.ChangeSet(StatusType(42)))
}

func TestComputeAnyDifferences(t *testing.T) {
	raw := NewRawStatus()
	assert.False(t, raw.ComputeAnyDifferences())

	raw.Untracked.Add("u")
	assert.False(t, raw.ComputeAnyDifferences())

	raw.Staged.Add("s")
	assert.True(t, raw.ComputeAnyDifferences())
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "missing", MissingStatus.Label())
	assert.Equal(t, "deleted", RemovedStatus.Label())
	assert.Equal(t, "modified", ModifiedStatus.Label())
	assert.Equal(t, "new file", AddedStatus.String())
	assert.Equal(t, "unknown", StatusType(0).Label())
}
