package types

// IndexEntry represents a single entry in the Git index (staging area).
type IndexEntry struct {
	Ctime    uint32   // seconds since epoch
	CtimeNs  uint32   // nanoseconds
	Mtime    uint32   // seconds since epoch
	MtimeNs  uint32   // nanoseconds
	Dev      uint32   // device
	Ino      uint32   // inode
	Mode     uint32   // file mode - 0100644 for regular file
	Uid      uint32   // user id
	Gid      uint32   // group id
	FileSize uint32   // size in bytes
	SHA1     [20]byte // SHA-1 hash of the file content
	Flags    uint16   // assume-valid, extended, stage (2 bits), name length (12 bits)
	Filename string   // file name
}

// Stage returns the merge stage stored in bits 12-13 of Flags. Zero means
// the entry is merged; 1..3 are base, ours and theirs of a conflict.
func (e IndexEntry) Stage() int {
	return int((e.Flags >> 12) & 0x3)
}

// Conflicted reports whether the entry belongs to an unresolved merge.
func (e IndexEntry) Conflicted() bool {
	return e.Stage() != 0
}
