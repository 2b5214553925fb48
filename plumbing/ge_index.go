package plumbing

import (
	"crypto/sha1"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"

	"github.com/brickster241/gegit/utils/constants"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/types"
)

// LoadIndex reads .git/index. A missing index is an empty one.
func (r *Repo) LoadIndex() ([]types.IndexEntry, error) {

	data, err := os.ReadFile(r.GitPath("index"))
	if os.IsNotExist(err) {
		return []types.IndexEntry{}, nil
	}
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	// Check index file size
	if len(data) < 12+20 {
		return nil, errors.Errorf("index file is too short")
	}

	// Validate header, version and checksum
	if string(data[:4]) != "DIRC" {
		return nil, errors.Errorf("invalid index file header")
	}

	version := binary.BigEndian.Uint32(data[4:8])
	if version != 2 {
		return nil, errors.Errorf("unsupported index version: %d", version)
	}

	content := data[:len(data)-20]
	if sum := sha1.Sum(content); string(sum[:]) != string(data[len(data)-20:]) {
		return nil, errors.Errorf("index file checksum mismatch")
	}

	entryCount := binary.BigEndian.Uint32(data[8:12])
	entries := make([]types.IndexEntry, 0, entryCount)
	offset := 12

	for i := uint32(0); i < entryCount; i++ {
		entryStart := offset
		if offset+62 > len(content) {
			return nil, errors.Errorf("corrupt index entry")
		}

		// Fixed-size fields
		var ie types.IndexEntry
		fields := []*uint32{&ie.Ctime, &ie.CtimeNs, &ie.Mtime, &ie.MtimeNs, &ie.Dev, &ie.Ino, &ie.Mode, &ie.Uid, &ie.Gid, &ie.FileSize}
		for _, f := range fields {
			*f = binary.BigEndian.Uint32(content[offset:])
			offset += 4
		}

		copy(ie.SHA1[:], content[offset:offset+20])
		offset += 20

		ie.Flags = binary.BigEndian.Uint16(content[offset:])
		offset += 2

		start := offset
		for offset < len(content) && content[offset] != 0 {
			offset++
		}
		if offset >= len(content) {
			return nil, errors.Errorf("unterminated filename in index")
		}

		ie.Filename = string(content[start:offset])
		offset++ // Skip null terminator

		// Entries are padded to a multiple of 8 bytes from the entry start
		for (offset-entryStart)%8 != 0 {
			offset++
		}

		entries = append(entries, ie)
	}

	return entries, nil
}

// WriteIndex writes entries to .git/index, sorted by name then stage, followed by the SHA-1 checksum.
func (r *Repo) WriteIndex(entries []types.IndexEntry) error {

	sorted := append([]types.IndexEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Filename != sorted[j].Filename {
			return sorted[i].Filename < sorted[j].Filename
		}
		return sorted[i].Stage() < sorted[j].Stage()
	})

	var buffer []byte

	// 12-byte header: "DIRC" + version(2) + entry count
	buffer = append(buffer, []byte("DIRC")...)
	buffer = binary.BigEndian.AppendUint32(buffer, 2)
	buffer = binary.BigEndian.AppendUint32(buffer, uint32(len(sorted)))

	for _, entry := range sorted {

		entryStart := len(buffer)

		for _, v := range []uint32{entry.Ctime, entry.CtimeNs, entry.Mtime, entry.MtimeNs, entry.Dev, entry.Ino, entry.Mode, entry.Uid, entry.Gid, entry.FileSize} {
			buffer = binary.BigEndian.AppendUint32(buffer, v)
		}
		buffer = append(buffer, entry.SHA1[:]...)

		// Name length has 12 bits; longer names store 0xFFF
		nameLen := len(entry.Filename)
		if nameLen > 0xFFF {
			nameLen = 0xFFF
		}
		flags := uint16(entry.Stage())<<12 | uint16(nameLen)
		buffer = binary.BigEndian.AppendUint16(buffer, flags)

		buffer = append(buffer, []byte(entry.Filename)...)
		buffer = append(buffer, 0x00)

		entryLen := len(buffer) - entryStart
		padLen := (8 - (entryLen % 8)) % 8
		buffer = append(buffer, make([]byte, padLen)...)
	}

	hash := sha1.Sum(buffer)
	buffer = append(buffer, hash[:]...)

	if err := os.WriteFile(r.GitPath("index"), buffer, constants.DefaultFilePerm); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

// IndexToMap maps the merged (stage 0) entries by filename.
func IndexToMap(entries []types.IndexEntry) map[string]types.IndexEntry {
	indexMap := map[string]types.IndexEntry{}
	for _, e := range entries {
		if !e.Conflicted() {
			indexMap[e.Filename] = e
		}
	}
	return indexMap
}

// MapToSortedIndex converts an index map back into a slice sorted by filename, the order Git stores entries in.
func MapToSortedIndex(indexMap map[string]types.IndexEntry) []types.IndexEntry {
	entries := make([]types.IndexEntry, 0, len(indexMap))
	for _, entry := range indexMap {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Filename < entries[j].Filename
	})
	return entries
}

// ConflictPaths returns the set of paths that have at least one entry in a merge stage.
func ConflictPaths(entries []types.IndexEntry) types.PathSet {
	out := make(types.PathSet)
	for _, e := range entries {
		if e.Conflicted() {
			out.Add(e.Filename)
		}
	}
	return out
}

// IndexEntryForStage returns entry with its stage bits replaced.
func IndexEntryForStage(entry types.IndexEntry, stage int) types.IndexEntry {
	entry.Flags = entry.Flags&^(0x3<<12) | uint16(stage&0x3)<<12
	return entry
}

// GetIndexEntryFromStat builds an index entry for a repository path from its current filesystem state.
func (r *Repo) GetIndexEntryFromStat(path string, sha1sum [20]byte) (types.IndexEntry, error) {

	cleanPath := filepath.ToSlash(filepath.Clean(path))
	if filepath.IsAbs(path) {
		return types.IndexEntry{}, errors.Errorf("absolute paths are not supported in index entries: %s", path)
	}

	info, err := os.Lstat(r.WorkPath(cleanPath))
	if err != nil {
		return types.IndexEntry{}, errors.WithStackTrace(err)
	}

	mode := uint32(constants.ModeFile)
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		mode = constants.ModeSymlink
	case info.Mode().Perm()&0o111 != 0:
		mode = constants.ModeExecutable
	}

	mtime := info.ModTime()
	return types.IndexEntry{
		Ctime:    uint32(mtime.Unix()),
		CtimeNs:  uint32(mtime.Nanosecond()),
		Mtime:    uint32(mtime.Unix()),
		MtimeNs:  uint32(mtime.Nanosecond()),
		Mode:     mode,
		FileSize: uint32(info.Size()),
		SHA1:     sha1sum,
		Filename: cleanPath,
	}, nil
}

// StageFile hashes and stores the blob for path and returns its index entry.
func (r *Repo) StageFile(path string) (types.IndexEntry, error) {
	content, err := blobContent(r.WorkPath(path))
	if err != nil {
		return types.IndexEntry{}, err
	}
	sha, err := r.WriteObject(types.BlobObject, content)
	if err != nil {
		return types.IndexEntry{}, err
	}
	return r.GetIndexEntryFromStat(path, sha)
}

// ApplyIndexUpdates returns entries with updates written as stage 0 and removed paths dropped. Any merge stages of a touched path are resolved away; conflicts on other paths are kept.
func ApplyIndexUpdates(entries []types.IndexEntry, updates map[string]types.IndexEntry, removed types.PathSet) []types.IndexEntry {
	indexMap := IndexToMap(entries)
	for path, e := range updates {
		indexMap[path] = IndexEntryForStage(e, 0)
	}
	for path := range removed {
		delete(indexMap, path)
	}

	out := MapToSortedIndex(indexMap)
	for _, e := range entries {
		if !e.Conflicted() || removed.Has(e.Filename) {
			continue
		}
		if _, touched := updates[e.Filename]; touched {
			continue
		}
		out = append(out, e)
	}
	return out
}
