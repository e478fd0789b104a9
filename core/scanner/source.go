// Package scanner reads eSocial document containers and runs the parallel
// extraction batch. Sources yield raw documents by name; only entries with
// an .xml extension are considered.
package scanner

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"esocial-informe/internal/errors"
)

// Document is one raw XML document from a container.
type Document struct {
	// Name is the entry name inside the container
	Name string

	// Data is the raw document content
	Data []byte
}

// Source yields zero or more documents from one container.
type Source interface {
	// Name identifies the container for logging
	Name() string

	// Each calls fn for every .xml document; iteration stops on the first
	// error or when the context is cancelled
	Each(ctx context.Context, fn func(Document) error) error
}

// ForPath picks a source for a filesystem path: zip archives by extension,
// directories otherwise.
func ForPath(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "inspecting %s", path)
	}
	if info.IsDir() {
		return &DirSource{Path: path}, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return &ZipSource{Path: path}, nil
	}
	return nil, errors.Newf(errors.TypeInput, "unsupported container: %s (want a zip archive or a directory)", path)
}

func isXML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}

// ZipSource reads documents out of a zip archive.
type ZipSource struct {
	// Path is the archive location
	Path string
}

// Name identifies the archive
func (s *ZipSource) Name() string { return s.Path }

// Each yields every .xml entry in archive order.
func (s *ZipSource) Each(ctx context.Context, fn func(Document) error) error {
	reader, err := zip.OpenReader(s.Path)
	if err != nil {
		return errors.Wrapf(errors.TypeInput, err, "opening archive %s", s.Path)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.FileInfo().IsDir() || !isXML(entry.Name) {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return errors.Wrapf(errors.TypeInput, err, "opening entry %s", entry.Name)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return errors.Wrapf(errors.TypeInput, err, "reading entry %s", entry.Name)
		}
		if err := fn(Document{Name: entry.Name, Data: data}); err != nil {
			return err
		}
	}
	return nil
}

// DirSource reads loose .xml files from a directory tree.
type DirSource struct {
	// Path is the directory root
	Path string
}

// Name identifies the directory
func (s *DirSource) Name() string { return s.Path }

// Each walks the tree and yields every .xml file.
func (s *DirSource) Each(ctx context.Context, fn func(Document) error) error {
	return filepath.WalkDir(s.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isXML(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(errors.TypeInput, err, "reading %s", path)
		}
		rel, relErr := filepath.Rel(s.Path, path)
		if relErr != nil {
			rel = path
		}
		return fn(Document{Name: rel, Data: data})
	})
}
