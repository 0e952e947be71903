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

// Package tape drives the structural state machine of spec.md §4.4: it
// walks a decoded line stream Tape → Material → File → Section, handing
// each HEAD-to-SEND run to the section package and checking framing at
// the HEAD records (same MAT at each File HEAD of a material, same MF at
// each Section HEAD of a file, exactly one TEND as the final non-blank
// record; see Parse). It mirrors
// the teacher's single dispatch-loop-over-a-lexer shape (the holo-build
// build-plan walk in src/holo-build/common/*), generalized to a fixed
// five-level grammar instead of a flat instruction list.
package tape

import (
	"io"

	"github.com/kr3z/ENDF/internal/endf"
	"github.com/kr3z/ENDF/internal/section"
)

// File is an ordered MF-group: one MF number and its MT→Section map, in
// decode order.
type File struct {
	MF       int
	Sections []*section.Section
}

// Material is an ordered MAT-group: one MAT number and its File list, in
// decode order.
type Material struct {
	MAT   int
	Files []*File
}

// Tape is a fully parsed ENDF-6 tape: the TPID line's MAT (NTAPE) plus
// the ordered Materials terminated by the single TEND.
type Tape struct {
	NTAPE     int
	Materials []*Material
}

// Parse drains src (e.g. an *endf.Lexer) into a Tape. It checks MAT at
// the HEAD of each File against the material's MAT, MF at the HEAD of
// each Section against the file's MF, and that exactly one TEND ends the
// tape. Records inside a section are not checked against the HEAD's
// MAT/MF/MT. It returns on the first structural or decode error;
// NotImplemented schema errors are already absorbed inside section.Parse
// and never reach here.
func Parse(src endf.LineSource) (*Tape, error) {
	p := &parser{src: src}
	return p.run()
}

type parser struct {
	src     endf.LineSource
	tp      *Tape
	pending *pendingLine
}

func (p *parser) run() (*Tape, error) {
	if err := p.expectTPID(); err != nil {
		return nil, err
	}
	for {
		done, err := p.expectMaterial()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if err := p.expectTEND(); err != nil {
		return nil, err
	}
	return p.tp, nil
}

// expectTPID consumes the first line unconditionally as TPID, per spec
// §3's "TPID: first line of tape (overrides above)" rule: whatever its
// CONT fields decode to is irrelevant to its role.
func (p *parser) expectTPID() error {
	line, err := p.src.Next()
	if err != nil {
		return wrapIo(err, "reading TPID line")
	}
	p.tp = &Tape{NTAPE: line.MAT}
	return nil
}

// expectMaterial peeks the next line. A TEND ends the tape; anything
// else is the HEAD of the first Section of the first File of a new
// Material.
func (p *parser) expectMaterial() (done bool, err error) {
	line, cont, err := p.peekHead()
	if err != nil {
		return false, err
	}
	if endf.ClassifyTerminator(line, cont) == endf.KindTEND {
		p.pending = &pendingLine{line: line, cont: cont, valid: true}
		return true, nil
	}
	mat := &Material{MAT: line.MAT}
	p.tp.Materials = append(p.tp.Materials, mat)
	if err := p.expectFile(mat, line, cont); err != nil {
		return false, err
	}
	return false, nil
}

// expectFile begins a File with the given (already peeked) HEAD line and
// loops ExpectSection→InSection until a MEND finalizes the material.
func (p *parser) expectFile(mat *Material, headLine endf.Line, headCont endf.ContData) error {
	for {
		if endf.ClassifyTerminator(headLine, headCont) == endf.KindMEND {
			return nil
		}
		if headLine.MAT != mat.MAT {
			return endf.NewError(endf.KindBadFraming,
				"MAT changed from %d to %d within a material", mat.MAT, headLine.MAT)
		}
		file := &File{MF: headLine.MF}
		mat.Files = append(mat.Files, file)

		var err error
		headLine, headCont, err = p.expectSection(file, headLine, headCont)
		if err != nil {
			return err
		}
	}
}

// expectSection loops ExpectSection→InSection until a FEND finalizes the
// file, returning the next file's (or material's MEND) HEAD line.
func (p *parser) expectSection(file *File, headLine endf.Line, headCont endf.ContData) (endf.Line, endf.ContData, error) {
	for {
		if endf.ClassifyTerminator(headLine, headCont) == endf.KindFEND {
			nextLine, nextCont, err := p.peekHead()
			if err != nil {
				return endf.Line{}, endf.ContData{}, err
			}
			return nextLine, nextCont, nil
		}
		if headLine.MF != file.MF {
			return endf.Line{}, endf.ContData{}, endf.NewError(endf.KindBadFraming,
				"MF changed from %d to %d within a file", file.MF, headLine.MF)
		}

		sec, err := section.Parse(headLine.MAT, headLine.MF, headLine.MT, headCont, p.src)
		if err != nil {
			return endf.Line{}, endf.ContData{}, err
		}
		file.Sections = append(file.Sections, sec)

		nextLine, nextCont, err := p.peekHead()
		if err != nil {
			return endf.Line{}, endf.ContData{}, err
		}
		headLine, headCont = nextLine, nextCont
	}
}

// expectTEND consumes the tape's final record, which must already have
// been classified TEND by the last expectMaterial call, then verifies no
// further non-blank record follows.
func (p *parser) expectTEND() error {
	if p.pending == nil || !p.pending.valid {
		return endf.NewError(endf.KindBadFraming, "tape ended without a TEND record")
	}
	p.pending = nil

	_, err := p.src.Next()
	switch {
	case err == io.EOF:
		return nil
	case err != nil:
		return wrapIo(err, "reading past TEND")
	default:
		return endf.NewError(endf.KindBadFraming, "record found after TEND")
	}
}

type pendingLine struct {
	line  endf.Line
	cont  endf.ContData
	valid bool
}

// peekHead returns the next line and its decoded CONT fields. A line
// held in p.pending (the TEND stored by expectMaterial) is returned and
// cleared first; otherwise the next line is read from src and not cached.
func (p *parser) peekHead() (endf.Line, endf.ContData, error) {
	if p.pending != nil && p.pending.valid {
		pl := *p.pending
		p.pending = nil
		return pl.line, pl.cont, nil
	}
	line, err := p.src.Next()
	if err != nil {
		return endf.Line{}, endf.ContData{}, wrapIo(err, "reading next record")
	}
	cont, err := endf.DecodeCONT(line.Content)
	if err != nil {
		return endf.Line{}, endf.ContData{}, err
	}
	return line, cont, nil
}

func wrapIo(err error, format string, args ...interface{}) error {
	if err == io.EOF {
		return endf.NewError(endf.KindBadFraming, format+": unexpected end of file", args...)
	}
	return endf.WrapError(endf.KindIO, err, format, args...)
}
