/*******************************************************************************
*
* Copyright 2026 The ENDF Ingest Authors
*
* Licensed under the Apache License, Version 2.0 (the "License");
* you may not use this file except in compliance with the License.
* You may obtain a copy of the License at
*
*     http://www.apache.org/licenses/LICENSE-2.0
*
*******************************************************************************/

// Package library discovers ENDF-6 tapes under a root directory, the
// way ENDF.py's os.walk loop classifies files by extension before the
// main loop opens them: plain .dat/.txt files are enqueued directly,
// .zip archives are opened and every entry inside enqueued as a tape
// read through the archive (spec.md §6).
package library

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr3z/ENDF/internal/endf"
)

// Tape identifies one discoverable ENDF-6 tape: a plain file on disk,
// or an entry inside a zip archive (Archive non-empty).
type Tape struct {
	// Name is the tape's own filename (the .dat/.txt file, or the zip
	// entry name).
	Name string
	// Path is the directory the tape (or its containing zip) was found
	// in, relative to the walked root.
	Path string
	// Archive is the path to the containing zip file, empty for a plain
	// file on disk.
	Archive string
	// Root is the walked root directory that Path is relative to.
	Root string
}

// Discover walks root and returns every tape found, plain files before
// zip-archived entries, matching ENDF.py's dats-then-zips processing
// order.
func Discover(root string) ([]Tape, error) {
	var dats, archives []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".zip":
			archives = append(archives, path)
		case ".dat", ".txt":
			dats = append(dats, path)
		}
		return nil
	})
	if err != nil {
		return nil, endf.WrapError(endf.KindIO, err, "walking library directory %q", root)
	}

	var tapes []Tape
	for _, dat := range dats {
		rel, relErr := filepath.Rel(root, filepath.Dir(dat))
		if relErr != nil {
			rel = filepath.Dir(dat)
		}
		tapes = append(tapes, Tape{Name: filepath.Base(dat), Path: rel, Root: root})
	}

	for _, archivePath := range archives {
		rel, relErr := filepath.Rel(root, filepath.Dir(archivePath))
		if relErr != nil {
			rel = filepath.Dir(archivePath)
		}
		r, openErr := zip.OpenReader(archivePath)
		if openErr != nil {
			return nil, endf.WrapError(endf.KindIO, openErr, "opening zip archive %q", archivePath)
		}
		for _, f := range r.File {
			tapes = append(tapes, Tape{Name: f.Name, Path: rel, Archive: archivePath, Root: root})
		}
		r.Close()
	}

	return tapes, nil
}

// Open returns the raw ISO-8859-1 byte stream for t, for endf.NewLexer
// to decode, plus a closer the caller must invoke when done reading.
func Open(t Tape) (io.Reader, io.Closer, error) {
	if t.Archive == "" {
		path := filepath.Join(t.Root, t.Path, t.Name)
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, endf.WrapError(endf.KindIO, err, "opening tape %q", path)
		}
		return f, f, nil
	}

	r, err := zip.OpenReader(t.Archive)
	if err != nil {
		return nil, nil, endf.WrapError(endf.KindIO, err, "opening zip archive %q", t.Archive)
	}
	for _, f := range r.File {
		if f.Name != t.Name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, nil, endf.WrapError(endf.KindIO, err, "opening zip entry %q in %q", t.Name, t.Archive)
		}
		return rc, &multiCloser{rc, r}, nil
	}
	r.Close()
	return nil, nil, endf.NewError(endf.KindIO, "entry %q not found in archive %q", t.Name, t.Archive)
}

// multiCloser closes a zip entry's reader and, best-effort, releases
// the archive reader's resources.
type multiCloser struct {
	entry   io.Closer
	archive *zip.ReadCloser
}

func (m *multiCloser) Close() error {
	err := m.entry.Close()
	if m.archive != nil {
		_ = m.archive.Close()
	}
	return err
}
