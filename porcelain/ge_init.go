package porcelain

import (
	"fmt"
	"io"
	"os"

	"github.com/brickster241/gegit/plumbing"
	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
)

// Invoked from cmd/app.go. InitRepo handles 'gegit init [<directory>]': it creates the .git layout, an unborn master branch and a default config.
func InitRepo(out io.Writer, dir string) error {

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
		return errors.WithStackTrace(err)
	}

	repo, err := plumbing.NewRepo(dir)
	if err != nil {
		return err
	}

	// Check whether .git already exists
	_, statErr := os.Stat(repo.GitDir)
	reinitialize := statErr == nil

	if err := createGitDirs(repo, reinitialize); err != nil {
		return errors.WithStackTraceAndPrefix(err, "initializing repository in %s", repo.WorkDir)
	}

	if reinitialize {
		fmt.Fprintf(out, "Reinitialized existing Git repository in %s\n", repo.GitDir)
	} else {
		fmt.Fprintf(out, "Initialized empty Git repository in %s\n", repo.GitDir)
	}
	return nil
}

// createGitDirs lays out the .git directory. HEAD and config are only written on a fresh init.
func createGitDirs(repo *plumbing.Repo, reinitialize bool) error {

	for _, path := range constants.DirPaths {
		if err := os.MkdirAll(repo.WorkPath(path), constants.DefaultDirPerm); err != nil {
			return err
		}
	}

	if reinitialize {
		return nil
	}

	if err := os.WriteFile(repo.GitPath("HEAD"), []byte(constants.Head), constants.DefaultFilePerm); err != nil {
		return err
	}
	return os.WriteFile(repo.GitPath("config"), []byte(constants.Config), constants.DefaultFilePerm)
}
