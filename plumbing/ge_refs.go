package plumbing

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/types"
)

const headRefPrefix = "ref: refs/heads/"

// ReadHEADInfo reads .git/HEAD and reports either the checked out branch or the detached commit.
func (r *Repo) ReadHEADInfo() (*types.HeadInfo, error) {
	data, err := os.ReadFile(r.GitPath("HEAD"))
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	// Symbolic Ref
	line := strings.TrimSpace(string(data))
	if strings.HasPrefix(line, headRefPrefix) {
		return &types.HeadInfo{
			Branch: strings.TrimPrefix(line, headRefPrefix),
		}, nil
	}

	// Detached HEAD
	sha, err := decodeSHA(line)
	if err != nil {
		return nil, errors.Errorf("invalid HEAD contents: %q", line)
	}
	return &types.HeadInfo{
		SHA:      sha,
		Detached: true,
	}, nil
}

// BranchName is the name shown in the status header.
func (r *Repo) BranchName() (string, error) {
	head, err := r.ReadHEADInfo()
	if err != nil {
		return "", err
	}
	if head.Detached {
		return constants.DetachedBranchName, nil
	}
	return head.Branch, nil
}

// ReadBranchRef resolves refs/heads/<branch>. The flag is false when the branch has no commits yet.
func (r *Repo) ReadBranchRef(branch string) ([20]byte, bool) {
	data, err := os.ReadFile(r.GitPath("refs", "heads", filepath.FromSlash(branch)))
	if err != nil {
		return [20]byte{}, false
	}

	sha, err := decodeSHA(strings.TrimSpace(string(data)))
	if err != nil {
		return [20]byte{}, false
	}
	return sha, true
}

// ResolveHEAD returns the commit HEAD points at. The flag is false on an unborn branch.
func (r *Repo) ResolveHEAD() ([20]byte, bool, error) {
	head, err := r.ReadHEADInfo()
	if err != nil {
		return [20]byte{}, false, err
	}
	if head.Detached {
		return head.SHA, true, nil
	}
	sha, ok := r.ReadBranchRef(head.Branch)
	return sha, ok, nil
}

// UpdateBranch points refs/heads/<branch> at sha.
func (r *Repo) UpdateBranch(branch string, sha [20]byte) error {
	refPath := r.GitPath("refs", "heads", filepath.FromSlash(branch))

	if err := os.MkdirAll(filepath.Dir(refPath), constants.DefaultDirPerm); err != nil {
		return errors.WithStackTrace(err)
	}
	if err := os.WriteFile(refPath, []byte(fmt.Sprintf("%x\n", sha)), constants.DefaultFilePerm); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

// UpdateHEADDetached moves HEAD directly to a commit SHA.
func (r *Repo) UpdateHEADDetached(sha [20]byte) error {
	if err := os.WriteFile(r.GitPath("HEAD"), []byte(fmt.Sprintf("%x\n", sha)), constants.DefaultFilePerm); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

func decodeSHA(s string) ([20]byte, error) {
	var sha [20]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return sha, err
	}
	if len(raw) != len(sha) {
		return sha, fmt.Errorf("sha %q has %d bytes", s, len(raw))
	}
	copy(sha[:], raw)
	return sha, nil
}
