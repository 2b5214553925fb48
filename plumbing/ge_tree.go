package plumbing

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/brickster241/gegit/utils"
	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/types"
)

// BuildTreeFromIndex builds an in-memory directory tree from the merged index entries.
func BuildTreeFromIndex(entries []types.IndexEntry) *types.TreeNode {

	root := newTreeNode()
	for _, entry := range entries {
		if entry.Conflicted() {
			continue
		}
		parts := strings.Split(entry.Filename, "/")

		// Traverse or create directories
		currNode := root
		for _, dir := range parts[:len(parts)-1] {
			if currNode.Dirs[dir] == nil {
				currNode.Dirs[dir] = newTreeNode()
			}
			currNode = currNode.Dirs[dir]
		}

		currNode.Files[parts[len(parts)-1]] = entry
	}
	return root
}

func newTreeNode() *types.TreeNode {
	return &types.TreeNode{
		Files: make(map[string]types.IndexEntry),
		Dirs:  make(map[string]*types.TreeNode),
	}
}

// WriteTree recursively writes tree objects and returns the SHA of the root tree.
func (r *Repo) WriteTree(node *types.TreeNode) ([20]byte, error) {
	var entries []types.TreeEntry

	// recursion first (dirs)
	for name, child := range node.Dirs {
		sha, err := r.WriteTree(child)
		if err != nil {
			return [20]byte{}, err
		}
		entries = append(entries, types.TreeEntry{
			Mode: constants.ModeTree,
			Name: name,
			SHA:  sha,
			Type: types.TreeObject,
		})
	}

	for name, ie := range node.Files {
		mode := ie.Mode
		if mode == 0 {
			mode = constants.ModeFile
		}
		entries = append(entries, types.TreeEntry{
			Mode: mode,
			Name: name,
			SHA:  ie.SHA1,
			Type: types.BlobObject,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	// "<mode> <name>\0<raw sha>" per entry
	var content bytes.Buffer
	for _, e := range entries {
		content.WriteString(fmt.Sprintf("%o", e.Mode))
		content.WriteByte(' ')
		content.WriteString(e.Name)
		content.WriteByte(0)
		content.Write(e.SHA[:])
	}

	return r.WriteObject(types.TreeObject, content.Bytes())
}

// ReadTreeCurrentLevel decodes the entries of one tree object without descending into subtrees.
func (r *Repo) ReadTreeCurrentLevel(sha [20]byte) ([]types.TreeEntry, error) {

	objType, content, err := r.ReadObject(sha)
	if err != nil {
		return nil, err
	}
	if objType != types.TreeObject {
		return nil, errors.Errorf("object %x is not a tree", sha)
	}

	entries := []types.TreeEntry{}
	i := 0

	for i < len(content) {
		// Find NUL separating "<mode> <name>" and SHA
		nullIdx := bytes.IndexByte(content[i:], 0)
		if nullIdx == -1 {
			return nil, errors.Errorf("corrupt tree object %x", sha)
		}

		header := string(content[i : i+nullIdx])
		mode, name, ok := strings.Cut(header, " ")
		if !ok {
			return nil, errors.Errorf("invalid tree entry header in %x", sha)
		}

		shaStart := i + nullIdx + 1
		shaEnd := shaStart + 20
		if shaEnd > len(content) {
			return nil, errors.Errorf("truncated tree object %x", sha)
		}

		var entrySHA [20]byte
		copy(entrySHA[:], content[shaStart:shaEnd])

		uint32Mode, err := utils.ParseModeStr(mode)
		if err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "invalid mode %q", mode)
		}

		entryType := types.BlobObject
		if uint32Mode == constants.ModeTree {
			entryType = types.TreeObject
		}

		entries = append(entries, types.TreeEntry{
			Name: name,
			Mode: uint32Mode,
			SHA:  entrySHA,
			Type: entryType,
		})

		i = shaEnd
	}

	return entries, nil
}

// FlattenTree walks a tree recursively and returns every blob keyed by its slash separated path.
func (r *Repo) FlattenTree(treeSHA [20]byte) (map[string]types.TreeEntry, error) {
	out := make(map[string]types.TreeEntry)
	err := r.flattenTreeRecur(treeSHA, "", out)
	return out, err
}

func (r *Repo) flattenTreeRecur(treeSHA [20]byte, prefix string, out map[string]types.TreeEntry) error {

	entries, err := r.ReadTreeCurrentLevel(treeSHA)
	if err != nil {
		return err
	}

	for _, e := range entries {
		p := path.Join(prefix, e.Name)

		if e.Type == types.TreeObject {
			if err := r.flattenTreeRecur(e.SHA, p, out); err != nil {
				return err
			}
			continue
		}

		e.Name = p
		out[p] = e
	}
	return nil
}

// ReadHEADTreeSHA returns the root tree of the HEAD commit. The flag is false when there are no commits yet.
func (r *Repo) ReadHEADTreeSHA() ([20]byte, bool, error) {

	commitSHA, ok, err := r.ResolveHEAD()
	if err != nil || !ok {
		return [20]byte{}, false, err
	}

	commit, err := r.ReadCommit(commitSHA)
	if err != nil {
		return [20]byte{}, false, err
	}
	return commit.TreeSHA, true, nil
}

// ReadHEADTree flattens the HEAD tree. An unborn branch yields an empty map.
func (r *Repo) ReadHEADTree() (map[string]types.TreeEntry, error) {
	treeSHA, ok, err := r.ReadHEADTreeSHA()
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]types.TreeEntry{}, nil
	}
	return r.FlattenTree(treeSHA)
}
