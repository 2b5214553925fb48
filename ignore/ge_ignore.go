// Package ignore decides which working tree paths are excluded by
// .gitignore style rules.
package ignore

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/brickster241/gegit/utils"
	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const commentPrefix = "#"

// Rules is a compiled set of ignore patterns. The zero value and an empty
// rule set ignore nothing. Later patterns override earlier ones.
type Rules struct {
	patterns []gitignore.Pattern
	matcher  gitignore.Matcher
}

// NewRules compiles patterns; later patterns override earlier ones.
func NewRules(patterns []gitignore.Pattern) *Rules {
	return &Rules{patterns: patterns, matcher: gitignore.NewMatcher(patterns)}
}

// ParseLines parses the content of one ignore file. Each pattern applies below domain, given as slash separated path elements.
func ParseLines(content []byte, domain []string) []gitignore.Pattern {
	var ps []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.HasPrefix(line, commentPrefix) || strings.TrimSpace(line) == "" {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, domain))
	}
	return ps
}

// Len is the number of compiled patterns.
func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.patterns)
}

// readSource parses one ignore file. A missing file contributes no patterns.
func readSource(path string, domain []string) ([]gitignore.Pattern, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debugf("ignore source %s not found, treating as empty", path)
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "reading ignore file %s", path)
	}
	ps := ParseLines(content, domain)
	log.Debugf("loaded %d ignore patterns from %s", len(ps), path)
	return ps, nil
}

// LoadFile builds rules from a single ignore file applying to the whole tree.
// A missing file yields an empty rule set, not an error.
func LoadFile(path string) (*Rules, error) {
	ps, err := readSource(path, nil)
	if err != nil {
		return nil, err
	}
	return NewRules(ps), nil
}

// Load collects the rules that apply to the working tree at root, lowest
// priority first: the extra sources (such as core.excludesFile), then
// .git/info/exclude, then every .gitignore from the root downwards.
// Relative extra sources are resolved against root.
func Load(root string, extra ...string) (*Rules, error) {
	var ps []gitignore.Pattern

	sources := append([]string(nil), extra...)
	sources = append(sources, filepath.Join(root, constants.GitDir, "info", "exclude"))
	for _, src := range sources {
		if src == "" {
			continue
		}
		if !filepath.IsAbs(src) {
			src = filepath.Join(root, src)
		}
		found, err := readSource(src, nil)
		if err != nil {
			return nil, err
		}
		ps = append(ps, found...)
	}

	nested, err := readTree(root, ps)
	if err != nil {
		return nil, err
	}
	return NewRules(append(ps, nested...)), nil
}

// readTree walks root collecting .gitignore files. Directories already
// ignored by the patterns gathered so far are not entered.
func readTree(root string, base []gitignore.Pattern) ([]gitignore.Pattern, error) {
	var ps []gitignore.Pattern

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == constants.GitDir {
			return filepath.SkipDir
		}

		var domain []string
		if path != root {
			rel, err := utils.RelSlash(root, path)
			if err != nil {
				return err
			}
			domain = strings.Split(rel, "/")
			if gitignore.NewMatcher(append(append([]gitignore.Pattern(nil), base...), ps...)).Match(domain, true) {
				return filepath.SkipDir
			}
		}

		found, err := readSource(filepath.Join(path, constants.IgnoreFile), domain)
		if err != nil {
			return err
		}
		ps = append(ps, found...)
		return nil
	})
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "collecting ignore files under %s", root)
	}
	return ps, nil
}

// split turns path into slash separated elements relative to root. ok is false for paths outside root.
func split(root, path string) ([]string, bool) {
	rel, err := utils.RelSlash(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, false
	}
	return strings.Split(rel, "/"), true
}

// IsFileIgnored reports whether path, as a file, matches the rules.
func (r *Rules) IsFileIgnored(root, path string) bool {
	if r.Len() == 0 {
		return false
	}
	parts, ok := split(root, path)
	if !ok {
		return false
	}
	return r.matcher.Match(parts, false)
}

// IsDirectoryIgnored reports whether path lies in an ignored directory, or is one itself.
func (r *Rules) IsDirectoryIgnored(root, path string) bool {
	if r.Len() == 0 {
		return false
	}
	parts, ok := split(root, path)
	if !ok {
		return false
	}

	for i := 1; i < len(parts); i++ {
		if r.matcher.Match(parts[:i], true) {
			return true
		}
	}

	if fi, err := os.Stat(filepath.Join(root, filepath.FromSlash(strings.Join(parts, "/")))); err == nil && fi.IsDir() {
		return r.matcher.Match(parts, true)
	}
	return false
}
