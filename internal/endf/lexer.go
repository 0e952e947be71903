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

package endf

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Lexer produces a lazy sequence of Lines from an ENDF-6 tape byte stream.
// The stream is ISO-8859-1 per spec §6; Lexer decodes it to UTF-8 before
// slicing columns so that non-ASCII bytes in free-text fields (e.g. the
// MT=451 description) round-trip correctly instead of being mangled by an
// implicit UTF-8 assumption.
type Lexer struct {
	scanner *bufio.Scanner
	lineNo  int
}

// NewLexer wraps r, an ISO-8859-1 byte stream, for line-by-line decoding.
func NewLexer(r io.Reader) *Lexer {
	decoded := charmap.ISO8859_1.NewDecoder().Reader(r)
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 128), 4096)
	return &Lexer{scanner: scanner}
}

// Next returns the next decoded Line, or io.EOF when the stream is
// exhausted. Blank (all-whitespace) lines are skipped, matching the
// invariant that every non-empty input line produces exactly one Line.
func (l *Lexer) Next() (Line, error) {
	for l.scanner.Scan() {
		l.lineNo++
		raw := l.scanner.Text()
		if isBlank(raw) {
			continue
		}
		line, err := decodeLine(raw)
		if err != nil {
			if e, ok := err.(*Error); ok {
				return Line{}, wrapError(e.Kind, e, "line %d", l.lineNo)
			}
			return Line{}, err
		}
		return line, nil
	}
	if err := l.scanner.Err(); err != nil {
		return Line{}, wrapError(KindIO, err, "reading tape at line %d", l.lineNo+1)
	}
	return Line{}, io.EOF
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}
