package types

// CommitNode represents a parsed commit object
type CommitNode struct {
	TreeSHA    [20]byte   // root tree SHA
	ParentsSHA [][20]byte // parent commits, more than one for merges
	Author     Author
	Committer  string
	Message    string
}

type Author struct {
	Name  string
	Email string
}
