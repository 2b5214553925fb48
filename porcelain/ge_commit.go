package porcelain

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brickster241/gegit/plumbing"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
	"github.com/sirupsen/logrus"
)

// CommitOptions are the inputs of 'gegit commit'.
type CommitOptions struct {
	Dir     string
	Message string
	When    time.Time // commit time, now when zero
}

// ErrNothingToCommit is returned when the index holds no merged entries.
var ErrNothingToCommit = errors.New("nothing to commit")

// ErrUnmergedPaths is returned when the index still carries merge stages.
var ErrUnmergedPaths = errors.New("committing is not possible because you have unmerged files")

// Invoked from cmd/app.go. CommitChanges handles the 'gegit commit -m <message>' command. It creates a new commit from the current index and advances the current branch, or the detached HEAD, to point to it.
func CommitChanges(out io.Writer, opts CommitOptions) error {

	if strings.TrimSpace(opts.Message) == "" {
		return errors.New("aborting commit due to empty commit message")
	}

	repo, err := plumbing.OpenRepo(opts.Dir)
	if err != nil {
		return err
	}

	entries, err := repo.LoadIndex()
	if err != nil {
		return err
	}
	if plumbing.ConflictPaths(entries).Len() > 0 {
		return errors.WithStackTrace(ErrUnmergedPaths)
	}
	if len(entries) == 0 {
		return errors.WithStackTrace(ErrNothingToCommit)
	}

	cfg, err := repo.LoadConfig()
	if err != nil {
		return err
	}
	author, err := authorFromConfig(cfg)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	// Write tree objects (recursive)
	treeSHA, err := repo.WriteTree(plumbing.BuildTreeFromIndex(entries))
	if err != nil {
		return err
	}

	// HEAD commit becomes the parent, if any
	var parentsSHA [][20]byte
	parent, hasParent, err := repo.ResolveHEAD()
	if err != nil {
		return err
	}
	if hasParent {
		parentTree, _, err := repo.ReadHEADTreeSHA()
		if err != nil {
			return err
		}
		if parentTree == treeSHA {
			return errors.WithStackTrace(ErrNothingToCommit)
		}
		parentsSHA = append(parentsSHA, parent)
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}

	commitSHA, err := repo.WriteCommit(treeSHA, parentsSHA, author, opts.Message, when)
	if err != nil {
		return err
	}

	head, err := repo.ReadHEADInfo()
	if err != nil {
		return err
	}
	branch := head.Branch
	if head.Detached {
		err = repo.UpdateHEADDetached(commitSHA)
		branch = "detached HEAD"
	} else {
		err = repo.UpdateBranch(head.Branch, commitSHA)
	}
	if err != nil {
		return err
	}

	commitHex := hex.EncodeToString(commitSHA[:])
	log.WithFields(logrus.Fields{"commit": commitHex, "parents": len(parentsSHA)}).Debug("commit written")

	if !hasParent {
		branch += " (root-commit)"
	}
	fmt.Fprintf(out, "[%s %s] %s\n", branch, commitHex[:7], strings.SplitN(opts.Message, "\n", 2)[0])
	return nil
}
