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

// RecordKind tags the structural role of a Line within a tape.
type RecordKind int

const (
	// KindOther is a HEAD or BODY record; the tape driver disambiguates
	// the two based on whether a new section was expected (spec §3).
	KindOther RecordKind = iota
	KindTPID
	KindSEND
	KindFEND
	KindMEND
	KindTEND
)

func (k RecordKind) String() string {
	switch k {
	case KindTPID:
		return "TPID"
	case KindSEND:
		return "SEND"
	case KindFEND:
		return "FEND"
	case KindMEND:
		return "MEND"
	case KindTEND:
		return "TEND"
	default:
		return "OTHER"
	}
}

// ClassifyTerminator applies the terminator-detection rule of spec §3 to a
// decoded Line and its CONT fields. It never returns KindTPID (the tape
// driver tags the first line of a tape as TPID unconditionally,
// overriding whatever this function would say about it) and never
// distinguishes HEAD from BODY (KindOther covers both; see RecordKind).
func ClassifyTerminator(l Line, c ContData) RecordKind {
	// NS==99999 marks SEND regardless of the CONT payload; every other
	// terminator requires an all-zero CONT record, so that check is
	// evaluated first and unconditionally.
	if l.NSValid && l.NS == 99999 {
		return KindSEND
	}
	if !isAllZero(c) {
		return KindOther
	}
	switch {
	case l.MAT == -1 && l.MF == 0 && l.MT == 0:
		return KindTEND
	case l.MAT == 0 && l.MF == 0 && l.MT == 0:
		return KindMEND
	case l.MT == 0 && l.MF > 0 && l.MAT > 0:
		return KindSEND
	case l.MT == 0 && l.MF == 0 && l.MAT > 0:
		return KindFEND
	default:
		return KindOther
	}
}

func isAllZero(c ContData) bool {
	return c.C1 == 0.0 && c.C2 == 0.0 && c.L1 == 0 && c.L2 == 0 && c.N1 == 0 && c.N2 == 0
}
