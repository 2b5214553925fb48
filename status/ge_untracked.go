package status

import (
	"path/filepath"
	"sort"

	"github.com/brickster241/gegit/utils/types"
)

// IgnoreFilter answers whether a path under root is excluded by ignore rules.
// Both predicates receive the full filesystem path of the candidate.
type IgnoreFilter interface {
	IsFileIgnored(root, path string) bool
	IsDirectoryIgnored(root, path string) bool
}

// ResolveUntracked keeps the candidates that neither rule of filter
// excludes. The result is sorted by path. A nil filter ignores nothing.
func ResolveUntracked(candidates types.PathSet, root string, filter IgnoreFilter) []string {
	untracked := make([]string, 0, len(candidates))
	for candidate := range candidates {
		if filter != nil {
			full := filepath.Join(root, filepath.FromSlash(candidate))
			if filter.IsFileIgnored(root, full) || filter.IsDirectoryIgnored(root, full) {
				continue
			}
		}
		untracked = append(untracked, candidate)
	}
	sort.Strings(untracked)
	return untracked
}
