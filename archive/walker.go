// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// Entry is a file inside archive visited by Walk.
type Entry struct {
	File *zip.File
	// Path is entry name, converted from forced code page when the archive
	// does not mark it as UTF-8.
	Path string
	// PathErr is set when conversion failed, Path keeps raw name then.
	PathErr error
}

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, e Entry) error

type options struct {
	suffix   string
	codePage encoding.Encoding
}

type Option func(*options)

// WithSuffix limits walk to names ending with suffix (case insensitive).
func WithSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = strings.ToLower(suffix)
	}
}

// WithCodePage forces encoding for names without UTF-8 flag.
func WithCodePage(cp encoding.Encoding) Option {
	return func(o *options) {
		o.codePage = cp
	}
}

// Walk walks all files in the archive under prefix in natural name order,
// calling walkFn for each item. Archives with absolute entries or entries
// containing ".." are rejected.
func Walk(archive, prefix string, walkFn WalkFunc, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		e := o.entry(f)
		if !strings.HasPrefix(e.Path, prefix) || !strings.HasSuffix(strings.ToLower(e.Path), o.suffix) {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return natural.Less(entries[i].Path, entries[j].Path)
	})

	for _, e := range entries {
		if err := walkFn(archive, e); err != nil {
			return err
		}
	}
	return nil
}

func (o *options) entry(f *zip.File) Entry {
	e := Entry{File: f, Path: f.Name}
	if o.codePage == nil || !f.NonUTF8 {
		return e
	}
	if n, err := o.codePage.NewDecoder().String(f.Name); err == nil {
		e.Path = n
	} else {
		e.PathErr = err
	}
	return e
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
