package plumbing

import (
	"bytes"
	"compress/zlib"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/types"
)

// HashObject computes the SHA-1 of a Git object without writing it. The hashed form is "<type> <size>\0<content>".
func HashObject(objType types.ObjectType, content []byte) [20]byte {
	return sha1.Sum(encodeObject(objType, content))
}

func encodeObject(objType types.ObjectType, content []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", objType, len(content))
	return append([]byte(header), content...)
}

// HashFile hashes the file at path as a blob.
func HashFile(path string) ([20]byte, error) {
	content, err := blobContent(path)
	if err != nil {
		return [20]byte{}, err
	}
	return HashObject(types.BlobObject, content), nil
}

// blobContent returns what Git stores for path: the file bytes, or the target string for a symlink.
func blobContent(path string) ([]byte, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, errors.WithStackTrace(err)
		}
		return []byte(target), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return content, nil
}

func (r *Repo) objectPath(hexSha string) string {
	return r.GitPath("objects", hexSha[:2], hexSha[2:])
}

// WriteObject writes a Git object (blob, tree, or commit) to .git/objects. If the object already exists, it is NOT rewritten.
func (r *Repo) WriteObject(objType types.ObjectType, content []byte) ([20]byte, error) {

	sha := HashObject(objType, content)
	filePath := r.objectPath(hex.EncodeToString(sha[:]))

	// If object already exists, do nothing
	if _, err := os.Stat(filePath); err == nil {
		return sha, nil
	} else if !os.IsNotExist(err) {
		return [20]byte{}, errors.WithStackTrace(err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), constants.DefaultDirPerm); err != nil {
		return [20]byte{}, errors.WithStackTrace(err)
	}

	// Z-lib compress and write the object
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(encodeObject(objType, content)); err != nil {
		return [20]byte{}, errors.WithStackTrace(err)
	}
	if err := w.Close(); err != nil {
		return [20]byte{}, errors.WithStackTrace(err)
	}

	if err := os.WriteFile(filePath, buf.Bytes(), constants.DefaultFilePerm); err != nil {
		return [20]byte{}, errors.WithStackTrace(err)
	}
	return sha, nil
}

// ReadObject reads and inflates a loose object. It returns the object type and the content without its header.
func (r *Repo) ReadObject(sha [20]byte) (types.ObjectType, []byte, error) {

	shaHex := hex.EncodeToString(sha[:])
	f, err := os.Open(r.objectPath(shaHex))
	if err != nil {
		return "", nil, errors.WithStackTraceAndPrefix(err, "object %s", shaHex)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return "", nil, errors.WithStackTraceAndPrefix(err, "object %s", shaHex)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, errors.WithStackTraceAndPrefix(err, "object %s", shaHex)
	}

	// Split Header, Content -> then Header to parts
	nullIdx := bytes.IndexByte(data, 0)
	if nullIdx == -1 {
		return "", nil, errors.Errorf("corrupt object %s", shaHex)
	}

	header := string(data[:nullIdx])
	content := data[nullIdx+1:]

	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", nil, errors.Errorf("invalid object header in %s", shaHex)
	}
	if size, err := strconv.Atoi(parts[1]); err != nil || size != len(content) {
		return "", nil, errors.Errorf("object %s: size mismatch", shaHex)
	}

	return types.ObjectType(parts[0]), content, nil
}
