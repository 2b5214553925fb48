package porcelain

import (
	"fmt"
	"io"

	"github.com/brickster241/gegit/plumbing"
	"github.com/brickster241/gegit/utils/types"
)

// Invoked from cmd/app.go. GetConfig handles 'gegit config get <key>' and prints the value stored in .git/config.
func GetConfig(out io.Writer, dir, key string) error {
	repo, err := plumbing.OpenRepo(dir)
	if err != nil {
		return err
	}

	val, err := repo.GetConfigValue(key)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, val)
	return nil
}

// Invoked from cmd/app.go. SetConfig handles 'gegit config set <key> <value>'.
func SetConfig(dir, key, value string) error {
	repo, err := plumbing.OpenRepo(dir)
	if err != nil {
		return err
	}
	return repo.SetConfigValue(key, value)
}

// authorFromConfig returns the commit identity from user.name and user.email.
func authorFromConfig(cfg *plumbing.RepoConfig) (types.Author, error) {
	if cfg.UserName == "" || cfg.UserEmail == "" {
		return types.Author{}, &MissingIdentityError{}
	}
	return types.Author{Name: cfg.UserName, Email: cfg.UserEmail}, nil
}

// MissingIdentityError is returned by commit when user.name or user.email is unset.
type MissingIdentityError struct{}

func (e *MissingIdentityError) Error() string {
	return "author identity unknown: set user.name and user.email with 'gegit config set'"
}
