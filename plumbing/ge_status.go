package plumbing

import (
	"io/fs"
	"path/filepath"

	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
	"github.com/brickster241/gegit/utils/types"
	"github.com/sirupsen/logrus"
)

// ReadRawStatus takes one snapshot of HEAD, the index and the working tree.
// Every path is placed in at most one of Added, Removed, Modified and
// Missing; Staged marks the ones whose index entry differs from HEAD.
func (r *Repo) ReadRawStatus() (*types.RawStatus, error) {

	branch, err := r.BranchName()
	if err != nil {
		return nil, err
	}

	headTree, err := r.ReadHEADTree()
	if err != nil {
		return nil, err
	}

	entries, err := r.LoadIndex()
	if err != nil {
		return nil, err
	}
	indexMap := IndexToMap(entries)

	working, err := r.scanWorkingTree()
	if err != nil {
		return nil, err
	}

	raw := types.NewRawStatus()
	raw.Branch = branch
	raw.WorkDir = r.WorkDir
	raw.IndexSize = len(indexMap)
	raw.MergeConflict = ConflictPaths(entries)

	// Paths tracked in the index
	for path, ie := range indexMap {
		if raw.MergeConflict.Has(path) {
			continue
		}

		headEntry, inHead := headTree[path]
		stagedChange := !inHead || headEntry.SHA != ie.SHA1
		info, onDisk := working[path]

		switch {
		case !onDisk:
			raw.Missing.Add(path)
		case !inHead:
			raw.Added.Add(path)
		case stagedChange:
			raw.Modified.Add(path)
		default:
			changed, err := r.worktreeChanged(path, ie, info)
			if err != nil {
				return nil, err
			}
			if changed {
				raw.Modified.Add(path)
			}
		}

		if stagedChange {
			raw.Staged.Add(path)
		}
	}

	// Paths in HEAD that left the index
	for path := range headTree {
		if _, inIndex := indexMap[path]; inIndex || raw.MergeConflict.Has(path) {
			continue
		}
		raw.Removed.Add(path)
		raw.Staged.Add(path)
	}

	// Paths only on disk
	for path := range working {
		if _, inIndex := indexMap[path]; inIndex || raw.MergeConflict.Has(path) {
			continue
		}
		raw.Untracked.Add(path)
	}

	raw.AnyDifferences = raw.ComputeAnyDifferences()

	log.WithFields(logrus.Fields{
		"branch":    raw.Branch,
		"index":     raw.IndexSize,
		"added":     raw.Added.Len(),
		"removed":   raw.Removed.Len(),
		"modified":  raw.Modified.Len(),
		"missing":   raw.Missing.Len(),
		"staged":    raw.Staged.Len(),
		"conflicts": raw.MergeConflict.Len(),
		"untracked": raw.Untracked.Len(),
	}).Debug("raw status snapshot")

	return raw, nil
}

// scanWorkingTree lists every non-directory under WorkDir, skipping .git.
func (r *Repo) scanWorkingTree() (map[string]fs.FileInfo, error) {
	working := map[string]fs.FileInfo{}

	err := filepath.WalkDir(r.WorkDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == r.WorkDir {
			return nil
		}

		if d.IsDir() {
			if d.Name() == constants.GitDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(r.WorkDir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		working[filepath.ToSlash(rel)] = info
		return nil
	})
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "scanning %s", r.WorkDir)
	}
	return working, nil
}

// worktreeChanged compares the file on disk with its index entry. Matching
// size and mtime mean unchanged; otherwise the content hash decides.
func (r *Repo) worktreeChanged(path string, ie types.IndexEntry, info fs.FileInfo) (bool, error) {
	mtime := info.ModTime()
	if ie.FileSize == uint32(info.Size()) &&
		ie.Mtime == uint32(mtime.Unix()) &&
		ie.MtimeNs == uint32(mtime.Nanosecond()) {
		return false, nil
	}

	sha, err := HashFile(r.WorkPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return sha != ie.SHA1, nil
}
