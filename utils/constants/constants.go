package constants

const (
	ModeFile           = 0o100644
	ModeExecutable     = 0o100755
	ModeSymlink        = 0o120000
	ModeTree           = 0o040000
	DefaultFilePerm    = 0o644 // rw-r--r--
	DefaultDirPerm     = 0o755 // rwxr-xr-x
	GitDir             = ".git"
	IgnoreFile         = ".gitignore"
	DetachedBranchName = "(no branch)"
	Head               = "ref: refs/heads/master\n" // Default .git/HEAD content
	Config             = `[core]
	repositoryformatversion = 0
	filemode = true
	bare = false
	logallrefupdates = true

[status]
	showUntrackedFiles = normal
` // Default .git/config content
)

// Define the necessary directory structure
var DirPaths = []string{
	".git",
	".git/objects",
	".git/refs",
	".git/refs/heads",
	".git/refs/tags",
	".git/info",
}
