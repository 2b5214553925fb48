package types

// StatusType is the category code a path is classified under. The numeric
// value doubles as its precedence: lower codes win when a path could be
// reported under more than one category.
type StatusType int

const (
	MissingStatus  StatusType = 1
	RemovedStatus  StatusType = 2
	ModifiedStatus StatusType = 3
	AddedStatus    StatusType = 4
	UnmergedStatus StatusType = 5
)

// ChangeOrder lists the change categories in the order they are classified.
var ChangeOrder = []StatusType{MissingStatus, RemovedStatus, ModifiedStatus, AddedStatus}

var statusLabels = map[StatusType]string{
	MissingStatus:  "missing",
	RemovedStatus:  "deleted",
	ModifiedStatus: "modified",
	AddedStatus:    "new file",
	UnmergedStatus: "unmerged",
}

// Label returns the word printed in front of a path in the status report.
func (s StatusType) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "unknown"
}

func (s StatusType) String() string {
	return s.Label()
}

// StatusEntry is one classified path.
type StatusEntry struct {
	Path   string
	Status StatusType
	Staged bool
}
