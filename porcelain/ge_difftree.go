package porcelain

import (
	"fmt"

	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
)

// NotImplementedError marks a command whose surface exists but whose behaviour does not.
type NotImplementedError struct {
	Command string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: not implemented", e.Command)
}

// Invoked from cmd/app.go. DiffTree is the tree-to-tree comparison command. Its options are accepted but never interpreted, and it always fails.
func DiffTree(args []string) error {
	log.Debugf("diff-tree invoked with %d argument(s)", len(args))
	return errors.WithStackTrace(&NotImplementedError{Command: "diff-tree"})
}
