package plumbing

import (
	"os"
	"path/filepath"

	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
)

// ErrNotARepository is returned when no .git directory exists at or above the start directory.
var ErrNotARepository = errors.New("not a git repository (or any of the parent directories): .git")

// Repo locates a repository on disk. Every plumbing operation resolves its paths against it.
type Repo struct {
	WorkDir string // absolute working tree root
	GitDir  string // absolute path of WorkDir/.git
}

// NewRepo returns a Repo rooted at workDir without checking that .git exists.
func NewRepo(workDir string) (*Repo, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	abs = filepath.Clean(abs)
	return &Repo{WorkDir: abs, GitDir: filepath.Join(abs, constants.GitDir)}, nil
}

// OpenRepo walks up from start until a directory containing .git is found.
func OpenRepo(start string) (*Repo, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	// Start from the parent when pointed at a file
	if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := abs
	for {
		if fi, err := os.Stat(filepath.Join(cur, constants.GitDir)); err == nil && fi.IsDir() {
			log.WithField("workdir", cur).Debug("found repository")
			return NewRepo(cur)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return nil, errors.WithStackTrace(ErrNotARepository)
}

// GitPath joins parts onto the .git directory.
func (r *Repo) GitPath(parts ...string) string {
	return filepath.Join(append([]string{r.GitDir}, parts...)...)
}

// WorkPath converts a slash separated repository path to an absolute filesystem path.
func (r *Repo) WorkPath(path string) string {
	return filepath.Join(r.WorkDir, filepath.FromSlash(path))
}
