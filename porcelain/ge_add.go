package porcelain

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/brickster241/gegit/ignore"
	"github.com/brickster241/gegit/plumbing"
	"github.com/brickster241/gegit/utils"
	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
	"github.com/brickster241/gegit/utils/types"
)

// AddOptions are the inputs of 'gegit add'.
type AddOptions struct {
	Dir   string   // directory the pathspecs are relative to
	Paths []string // files or directories, "." for everything below Dir
}

// PathspecError reports a pathspec that matched nothing, or only ignored files.
type PathspecError struct {
	Path    string
	Ignored bool
}

func (e *PathspecError) Error() string {
	if e.Ignored {
		return "the following path is ignored by one of your .gitignore files: " + e.Path
	}
	return "pathspec '" + e.Path + "' did not match any files"
}

// stagingArea collects the index changes of one add invocation.
type stagingArea struct {
	repo    *plumbing.Repo
	tracked map[string]types.IndexEntry
	updates map[string]types.IndexEntry
	removed types.PathSet
}

// addOrUpdatePath stages one file. Tracked files whose size and mtime are unchanged keep their entry.
func (s *stagingArea) addOrUpdatePath(path string) error {
	info, err := os.Lstat(s.repo.WorkPath(path))
	if err != nil {
		return errors.WithStackTrace(err)
	}

	if existing, ok := s.tracked[path]; ok {
		mtime := info.ModTime()
		unchanged := existing.FileSize == uint32(info.Size()) &&
			existing.Mtime == uint32(mtime.Unix()) &&
			existing.MtimeNs == uint32(mtime.Nanosecond())
		if unchanged {
			return nil
		}
	}

	entry, err := s.repo.StageFile(path)
	if err != nil {
		return err
	}
	log.WithField("path", path).Debug("staged")
	s.updates[path] = entry
	return nil
}

// addDirectory stages every non-ignored file below dir and drops tracked files under it that left the disk.
func (s *stagingArea) addDirectory(dir string, rules *ignore.Rules) error {
	root := s.repo.WorkDir
	seen := types.NewPathSet()

	err := filepath.WalkDir(s.repo.WorkPath(dir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == constants.GitDir || (path != root && rules.IsDirectoryIgnored(root, path)) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := utils.RelSlash(root, path)
		if err != nil {
			return err
		}
		if _, tracked := s.tracked[rel]; !tracked && rules.IsFileIgnored(root, path) {
			return nil
		}

		seen.Add(rel)
		return s.addOrUpdatePath(rel)
	})
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "adding %s", dir)
	}

	// Handle deletions below dir
	for path := range s.tracked {
		if underDir(path, dir) && !seen.Has(path) {
			if _, err := os.Lstat(s.repo.WorkPath(path)); os.IsNotExist(err) {
				s.removed.Add(path)
			}
		}
	}
	return nil
}

func underDir(path, dir string) bool {
	return dir == "." || strings.HasPrefix(path, dir+"/")
}

// Invoked from cmd/app.go. AddFiles handles 'gegit add <pathspec>...': it stages new and modified files and records deletions of tracked ones.
func AddFiles(opts AddOptions) error {

	if len(opts.Paths) == 0 {
		return errors.New("nothing specified, nothing added")
	}

	repo, err := plumbing.OpenRepo(opts.Dir)
	if err != nil {
		return err
	}

	cfg, err := repo.LoadConfig()
	if err != nil {
		return err
	}

	rules, err := ignore.Load(repo.WorkDir, cfg.ExcludesFile)
	if err != nil {
		return err
	}

	entries, err := repo.LoadIndex()
	if err != nil {
		return err
	}

	s := &stagingArea{
		repo:    repo,
		tracked: plumbing.IndexToMap(entries),
		updates: map[string]types.IndexEntry{},
		removed: types.NewPathSet(),
	}
	conflicts := plumbing.ConflictPaths(entries)

	base, err := filepath.Abs(opts.Dir)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	for _, arg := range opts.Paths {
		full := arg
		if !filepath.IsAbs(full) {
			full = filepath.Join(base, arg)
		}

		rel, err := utils.RelSlash(repo.WorkDir, full)
		if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
			return errors.Errorf("%s: outside repository at %s", arg, repo.WorkDir)
		}

		info, statErr := os.Lstat(full)
		_, tracked := s.tracked[rel]

		switch {
		case statErr == nil && info.IsDir():
			if err := s.addDirectory(rel, rules); err != nil {
				return err
			}

		case statErr == nil:
			if !tracked && !conflicts.Has(rel) && rules.IsFileIgnored(repo.WorkDir, full) {
				return errors.WithStackTrace(&PathspecError{Path: arg, Ignored: true})
			}
			if err := s.addOrUpdatePath(rel); err != nil {
				return err
			}

		case os.IsNotExist(statErr) && (tracked || conflicts.Has(rel)):
			s.removed.Add(rel)

		case os.IsNotExist(statErr):
			return errors.WithStackTrace(&PathspecError{Path: arg})

		default:
			return errors.WithStackTrace(statErr)
		}
	}

	if len(s.updates) == 0 && s.removed.Len() == 0 {
		log.Debugf("index already up to date")
		return nil
	}

	return repo.WriteIndex(plumbing.ApplyIndexUpdates(entries, s.updates, s.removed))
}
