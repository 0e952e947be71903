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
	"strings"
)

// LineSource yields one decoded Line at a time. *Lexer satisfies this; tests
// typically use a slice-backed fake.
type LineSource interface {
	Next() (Line, error)
}

// ContData is the decoded payload of a CONT record: six 11-column fields,
// the first two interpreted as floats and the remaining four as integers.
type ContData struct {
	C1, C2         float64
	L1, L2, N1, N2 int
}

// splitFields partitions a 66-column payload into six 11-column fields.
func splitFields(content string) [6]string {
	if len(content) < 66 {
		content = content + strings.Repeat(" ", 66-len(content))
	}
	var f [6]string
	for i := 0; i < 6; i++ {
		f[i] = content[i*11 : (i+1)*11]
	}
	return f
}

func fieldFloat(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return DecodeFloat(s)
}

func fieldInt(s string) (int, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, nil
	}
	return parseSignedInt(t)
}

// DecodeCONT decodes a CONT record from a single 66-column payload.
func DecodeCONT(content string) (ContData, error) {
	f := splitFields(content)
	var d ContData
	var err error
	if d.C1, err = fieldFloat(f[0]); err != nil {
		return ContData{}, err
	}
	if d.C2, err = fieldFloat(f[1]); err != nil {
		return ContData{}, err
	}
	if d.L1, err = fieldInt(f[2]); err != nil {
		return ContData{}, err
	}
	if d.L2, err = fieldInt(f[3]); err != nil {
		return ContData{}, err
	}
	if d.N1, err = fieldInt(f[4]); err != nil {
		return ContData{}, err
	}
	if d.N2, err = fieldInt(f[5]); err != nil {
		return ContData{}, err
	}
	return d, nil
}

// ReadLIST reads ceil(nc/6) continuation payloads from src and returns the
// nc floats they encode (the final payload's unused tail is truncated).
// The consumed Lines are returned so callers can enforce MAT/MF/MT
// consistency (spec §3 Section invariant) and feed SEND enforcement.
func ReadLIST(src LineSource, nc int) ([]float64, []Line, error) {
	n := ceilDiv(nc, 6)
	values := make([]float64, 0, n*6)
	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		line, err := src.Next()
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, line)
		f := splitFields(line.Content)
		for _, raw := range f {
			v, err := fieldFloat(raw)
			if err != nil {
				return nil, nil, err
			}
			values = append(values, v)
		}
	}
	if len(values) > nc {
		values = values[:nc]
	}
	return values, lines, nil
}

// ReadInterpolationTable reads the NBT/INT prelude shared by TAB1 and TAB2:
// ceil(nr/3) payloads, each six integers (three interleaved NBT,INT pairs).
func ReadInterpolationTable(src LineSource, nr int) (nbt, interp []int, lines []Line, err error) {
	n := ceilDiv(nr, 3)
	nbt = make([]int, 0, n*3)
	interp = make([]int, 0, n*3)
	lines = make([]Line, 0, n)
	for i := 0; i < n; i++ {
		line, e := src.Next()
		if e != nil {
			return nil, nil, nil, e
		}
		lines = append(lines, line)
		f := splitFields(line.Content)
		for pair := 0; pair < 3; pair++ {
			b, e := fieldInt(f[pair*2])
			if e != nil {
				return nil, nil, nil, e
			}
			it, e := fieldInt(f[pair*2+1])
			if e != nil {
				return nil, nil, nil, e
			}
			nbt = append(nbt, b)
			interp = append(interp, it)
		}
	}
	if len(nbt) > nr {
		nbt = nbt[:nr]
		interp = interp[:nr]
	}
	return nbt, interp, lines, nil
}

// ReadXYTable reads the (X,Y) table of a TAB1 record: ceil(np/3) payloads,
// each six floats (three interleaved X,Y pairs).
func ReadXYTable(src LineSource, np int) (x, y []float64, lines []Line, err error) {
	n := ceilDiv(np, 3)
	x = make([]float64, 0, n*3)
	y = make([]float64, 0, n*3)
	lines = make([]Line, 0, n)
	for i := 0; i < n; i++ {
		line, e := src.Next()
		if e != nil {
			return nil, nil, nil, e
		}
		lines = append(lines, line)
		f := splitFields(line.Content)
		for pair := 0; pair < 3; pair++ {
			xv, e := fieldFloat(f[pair*2])
			if e != nil {
				return nil, nil, nil, e
			}
			yv, e := fieldFloat(f[pair*2+1])
			if e != nil {
				return nil, nil, nil, e
			}
			x = append(x, xv)
			y = append(y, yv)
		}
	}
	if len(x) > np {
		x = x[:np]
		y = y[:np]
	}
	return x, y, lines, nil
}

// Tab1Data is the decoded payload of a TAB1 record: the interpolation
// prelude plus the (X,Y) table.
type Tab1Data struct {
	NBT, INT []int
	X, Y     []float64
}

// ReadTAB1 reads a full TAB1 body (interpolation prelude + XY table) given
// NR interpolation ranges and NP tabulated points.
func ReadTAB1(src LineSource, nr, np int) (Tab1Data, []Line, error) {
	nbt, interp, preludeLines, err := ReadInterpolationTable(src, nr)
	if err != nil {
		return Tab1Data{}, nil, err
	}
	x, y, xyLines, err := ReadXYTable(src, np)
	if err != nil {
		return Tab1Data{}, nil, err
	}
	lines := append(preludeLines, xyLines...)
	return Tab1Data{NBT: nbt, INT: interp, X: x, Y: y}, lines, nil
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
