package types

// TreeEntry is one line of a tree object.
type TreeEntry struct {
	Mode uint32     // 100644, 100755, 040000
	Name string     // entry name, or the full slash path once flattened
	SHA  [20]byte   // raw SHA-1 of blob or subtree
	Type ObjectType // "blob", "tree" or "commit"
}

// TreeNode is the in-memory directory structure used to write tree objects
// from index entries.
type TreeNode struct {
	Files map[string]IndexEntry // blobs
	Dirs  map[string]*TreeNode  // subtrees
}
