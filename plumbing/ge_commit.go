package plumbing

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/types"
)

// WriteCommit creates a commit object and returns its SHA. Author and committer are the same identity.
func (r *Repo) WriteCommit(treeSHA [20]byte, parentsSHA [][20]byte, author types.Author, message string, when time.Time) ([20]byte, error) {
	var content bytes.Buffer

	// Tree Line : "tree <sha_hex>\n"
	content.WriteString("tree ")
	content.WriteString(hex.EncodeToString(treeSHA[:]))
	content.WriteByte('\n')

	// Parent Line per parent (if exists) : "parent <sha_parent1>\n"
	for _, parentSHA := range parentsSHA {
		content.WriteString("parent ")
		content.WriteString(hex.EncodeToString(parentSHA[:]))
		content.WriteByte('\n')
	}

	// Timezone as +hhmm / -hhmm
	_, offset := when.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	tz := fmt.Sprintf("%s%02d%02d", sign, offset/3600, (offset%3600)/60)
	ident := fmt.Sprintf("%s <%s> %d %s", author.Name, author.Email, when.Unix(), tz)

	content.WriteString("author " + ident + "\n")
	content.WriteString("committer " + ident + "\n")

	// blank line before message, message must end with newline
	content.WriteByte('\n')
	content.WriteString(message)
	content.WriteByte('\n')

	return r.WriteObject(types.CommitObject, content.Bytes())
}

// ReadCommit reads and parses a commit object.
func (r *Repo) ReadCommit(sha [20]byte) (*types.CommitNode, error) {
	objType, data, err := r.ReadObject(sha)
	if err != nil {
		return nil, err
	}
	if objType != types.CommitObject {
		return nil, errors.Errorf("object %x is not a commit", sha)
	}

	lines := strings.Split(string(data), "\n")
	var c types.CommitNode
	hasTree := false
	i := 0

	// Parse headers
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			i++
			break
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "tree":
			if c.TreeSHA, err = decodeSHA(value); err != nil {
				return nil, errors.WithStackTraceAndPrefix(err, "commit %x: bad tree line", sha)
			}
			hasTree = true

		case "parent":
			p, err := decodeSHA(value)
			if err != nil {
				return nil, errors.WithStackTraceAndPrefix(err, "commit %x: bad parent line", sha)
			}
			c.ParentsSHA = append(c.ParentsSHA, p)

		case "author":
			c.Author = parseAuthor(value)

		case "committer":
			c.Committer = value
		}
	}

	if !hasTree {
		return nil, errors.Errorf("invalid commit object %x: missing tree line", sha)
	}

	// Remaining Lines = commit message
	c.Message = strings.TrimSuffix(strings.Join(lines[i:], "\n"), "\n")
	return &c, nil
}

// parseAuthor splits "Name Surname <email> 1700000000 +0000" into name and email.
func parseAuthor(value string) types.Author {
	open := strings.Index(value, "<")
	end := strings.Index(value, ">")
	if open == -1 || end < open {
		return types.Author{Name: strings.TrimSpace(value)}
	}
	return types.Author{
		Name:  strings.TrimSpace(value[:open]),
		Email: value[open+1 : end],
	}
}
