package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/brickster241/gegit/utils/types"
)

// Sort based on keys
func SortedEntries(m map[string]types.StatusType, staged bool) []types.StatusEntry {
	entries := make([]types.StatusEntry, 0, len(m))
	for path, status := range m {
		entries = append(entries, types.StatusEntry{Path: path, Status: status, Staged: staged})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// ParseModeStr parses an octal tree entry mode such as "100644" or "40000".
func ParseModeStr(mode string) (uint32, error) {
	v, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// RelSlash returns path relative to root using forward slashes. Paths that
// are already relative are only cleaned.
func RelSlash(root, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path)), nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
