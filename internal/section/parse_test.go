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

package section

import (
	"io"
	"testing"

	"github.com/kr3z/ENDF/internal/endf"
)

type fakeSource struct {
	lines []endf.Line
	pos   int
}

func (f *fakeSource) Next() (endf.Line, error) {
	if f.pos >= len(f.lines) {
		return endf.Line{}, io.EOF
	}
	l := f.lines[f.pos]
	f.pos++
	return l, nil
}

func field(s string) string {
	for len(s) < 11 {
		s += " "
	}
	return s[:11]
}

func record(mat, mf, mt int, ns int, nsValid bool, fields [6]string) endf.Line {
	content := ""
	for _, f := range fields {
		content += field(f)
	}
	return endf.Line{Content: content, MAT: mat, MF: mf, MT: mt, NS: ns, NSValid: nsValid}
}

func TestParseCrossSectionMinimalTape(t *testing.T) {
	// spec.md S2: MF=3 MT=1, NR=1, NP=2.
	contLine := record(125, 3, 1, 1, true, [6]string{"0.0", "0.0", "0", "0", "1", "2"})
	interpLine := record(125, 3, 1, 2, true, [6]string{"2", "2", "", "", "", ""})
	xyLine := record(125, 3, 1, 3, true, [6]string{"1.0-5", "3.0", "2.0+7", "4.0", "", ""})
	sendLine := record(125, 3, 0, 99999, true, [6]string{"0", "0", "0", "0", "0", "0"})

	src := &fakeSource{lines: []endf.Line{contLine, interpLine, xyLine, sendLine}}
	headCont := endf.ContData{C1: 0, C2: 0}

	sec, err := Parse(125, 3, 1, headCont, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sec.Parsed || sec.Kind != KindCrossSection {
		t.Fatalf("expected parsed cross-section section, got %+v", sec)
	}
	body := sec.Body.(CrossSectionData)
	if len(body.Tab.X) != 2 || len(body.Tab.Y) != 2 {
		t.Fatalf("expected 2 XY points, got %+v", body.Tab)
	}
	if body.Tab.X[0] != 1e-5 || body.Tab.Y[0] != 3.0 || body.Tab.X[1] != 2e7 || body.Tab.Y[1] != 4.0 {
		t.Fatalf("unexpected XY values: %+v", body.Tab)
	}
	if len(body.Tab.NBT) != 1 || body.Tab.NBT[0] != 2 || body.Tab.INT[0] != 2 {
		t.Fatalf("unexpected interpolation: %+v", body.Tab)
	}
}

func TestParseUnsupportedSkipsSilently(t *testing.T) {
	// spec.md S3: an (MF=4, MT=2) section is skipped, not an error.
	bodyLine := record(125, 4, 2, 1, true, [6]string{"1.0", "2.0", "0", "0", "0", "0"})
	sendLine := record(125, 4, 0, 99999, true, [6]string{"0", "0", "0", "0", "0", "0"})
	src := &fakeSource{lines: []endf.Line{bodyLine, sendLine}}

	sec, err := Parse(125, 4, 2, endf.ContData{}, src)
	if err != nil {
		t.Fatalf("unexpected error for unsupported section: %v", err)
	}
	if sec.Parsed {
		t.Fatalf("expected Parsed=false for unsupported (MF,MT)")
	}
	if sec.Body != nil {
		t.Fatalf("expected nil Body for unsupported section, got %+v", sec.Body)
	}
}

func TestParseGeneralInfoEarlySEND(t *testing.T) {
	// spec.md S5: NXC declared as 10 but SEND appears at directory entry 3.
	headCont := endf.ContData{C1: 1001, C2: 1.0, L1: 0, L2: 0, N1: 1, N2: 0}
	l1 := record(125, 1, 451, 1, true, [6]string{"0.0", "0", "0", "0", "0", "1"})
	l2 := record(125, 1, 451, 2, true, [6]string{"0.0", "0.0", "0", "0", "3", "5"})
	l3 := record(125, 1, 451, 3, true, [6]string{"300.0", "0", "0", "0", "1", "10"})
	descLine := record(125, 1, 451, 4, true, [6]string{"desc", "", "", "", "", ""})
	dir1 := record(125, 1, 451, 5, true, [6]string{"0", "0", "3", "1", "10", "1"})
	dir2 := record(125, 1, 451, 6, true, [6]string{"0", "0", "3", "2", "8", "1"})
	dir3 := record(125, 1, 451, 7, true, [6]string{"0", "0", "4", "2", "6", "1"})
	sendLine := record(125, 1, 0, 99999, true, [6]string{"0", "0", "0", "0", "0", "0"})

	src := &fakeSource{lines: []endf.Line{l1, l2, l3, descLine, dir1, dir2, dir3, sendLine}}

	sec, err := Parse(125, 1, 451, headCont, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sec.Parsed || sec.Kind != KindGeneralInfo {
		t.Fatalf("expected parsed general-info section, got %+v", sec)
	}
	body := sec.Body.(GeneralInfoData)
	if len(body.Directory) != 3 {
		t.Fatalf("expected 3 directory entries, got %d: %+v", len(body.Directory), body.Directory)
	}
}
