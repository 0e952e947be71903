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

import "testing"

func TestClassifyTerminator(t *testing.T) {
	zero := ContData{}
	cases := []struct {
		name string
		l    Line
		c    ContData
		want RecordKind
	}{
		{"TEND", Line{MAT: -1, MF: 0, MT: 0}, zero, KindTEND},
		{"MEND", Line{MAT: 0, MF: 0, MT: 0}, zero, KindMEND},
		{"SEND-by-fields", Line{MAT: 125, MF: 3, MT: 0}, zero, KindSEND},
		{"SEND-by-NS", Line{MAT: 125, MF: 3, MT: 1, NS: 99999, NSValid: true}, ContData{N1: 1}, KindSEND},
		{"FEND", Line{MAT: 125, MF: 0, MT: 0}, zero, KindFEND},
		{"body", Line{MAT: 125, MF: 3, MT: 1}, ContData{C1: 1.0}, KindOther},
	}
	for _, c := range cases {
		got := ClassifyTerminator(c.l, c.c)
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
