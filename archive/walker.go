// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// Entry is a single file in archive visited by Walk.
type Entry struct {
	// Name is path inside archive, decoded when archive was produced with
	// non UTF-8 names and code page was requested.
	Name string
	File *zip.File
	// NameErr is set when name could not be decoded, Name is left as is then.
	NameErr error
}

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, entry Entry) error

// Walk visits files in the archive whose names start with prefix in natural
// name order, calling walkFn for each item. Archives with absolute names or
// names containing path traversal components are refused.
func Walk(archive, prefix string, cp encoding.Encoding, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		e := Entry{Name: f.FileHeader.Name, File: f}
		if cp != nil && f.FileHeader.NonUTF8 {
			if n, err := cp.NewDecoder().String(e.Name); err == nil {
				e.Name = n
			} else {
				e.NameErr = err
			}
		}
		if !isSafePath(e.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", e.Name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		entries = append(entries, e)
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.Name == b.Name:
			return 0
		case natural.Less(a.Name, b.Name):
			return -1
		}
		return 1
	})

	for _, e := range entries {
		if err := walkFn(archive, e); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// headSize is enough for filetype to recognize zip signature.
const headSize = 262

// IsArchive checks if file has ".zip" extension and zip signature.
func IsArchive(fname string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(fname), ".zip") {
		return false, nil
	}

	f, err := os.Open(fname)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}
