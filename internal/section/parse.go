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

import "github.com/kr3z/ENDF/internal/endf"

// Parse decodes the section starting at the given HEAD record (already
// consumed by the caller; headCont is its decoded CONT fields) by reading
// further records from src until (and including) the section's SEND. It
// never returns an error for an unsupported (MF, MT) pair: that case is
// caught here and the returned Section has Parsed=false, matching spec
// §4.3 "Unknown (MF, MT)" and §7's NotImplemented-is-not-a-failure rule.
func Parse(mat, mf, mt int, headCont endf.ContData, src endf.LineSource) (*Section, error) {
	s := &Section{MAT: mat, MF: mf, MT: mt, Parsed: true}

	switch {
	case mf == 1 && mt == 451:
		body, endedOnEarlySEND, err := parseGeneralInfo(headCont, src)
		if err != nil {
			return nil, err
		}
		s.Kind = KindGeneralInfo
		s.Body = body
		if endedOnEarlySEND {
			return s, nil
		}
	case mf == 1 && (mt == 452 || mt == 456):
		body, err := parseNeutronYield(headCont, src)
		if err != nil {
			return nil, err
		}
		s.Kind = KindNeutronYield
		s.Body = body
	case mf == 1 && mt == 455:
		body, skip, err := parseDelayedNeutron(headCont, src)
		if err != nil {
			return nil, err
		}
		if skip {
			return skipToSEND(mat, mf, mt, src)
		}
		s.Kind = KindDelayedNeutron
		s.Body = body
	case mf == 1 && mt == 458:
		body, err := parseEnergyRelease(headCont, src)
		if err != nil {
			return nil, err
		}
		s.Kind = KindEnergyRelease
		s.Body = body
	case mf == 1 && mt == 460:
		body, err := parseDelayedPhoton(headCont, src)
		if err != nil {
			return nil, err
		}
		s.Kind = KindDelayedPhoton
		s.Body = body
	case mf == 3:
		body, err := parseCrossSection(headCont, src)
		if err != nil {
			return nil, err
		}
		s.Kind = KindCrossSection
		s.Body = body
	default:
		return skipToSEND(mat, mf, mt, src)
	}

	if err := expectSEND(mat, mf, mt, src); err != nil {
		return nil, err
	}
	return s, nil
}

// skipToSEND drains records until SEND is seen and returns an unparsed
// Section, per spec §4.3/§7: an unsupported schema is not an error.
func skipToSEND(mat, mf, mt int, src endf.LineSource) (*Section, error) {
	for {
		line, cont, kind, err := readRecord(src)
		if err != nil {
			return nil, err
		}
		if kind == endf.KindSEND {
			return &Section{MAT: mat, MF: mf, MT: mt, Parsed: false, Kind: KindUnparsed}, nil
		}
		_ = line
		_ = cont
	}
}

// readRecord reads the next Line from src and classifies it as a
// terminator (or KindOther for HEAD/BODY records).
func readRecord(src endf.LineSource) (endf.Line, endf.ContData, endf.RecordKind, error) {
	line, err := src.Next()
	if err != nil {
		return endf.Line{}, endf.ContData{}, endf.KindOther, err
	}
	cont, err := endf.DecodeCONT(line.Content)
	if err != nil {
		return endf.Line{}, endf.ContData{}, endf.KindOther, err
	}
	return line, cont, endf.ClassifyTerminator(line, cont), nil
}

// expectSEND enforces the spec §4.3 SEND-enforcement rule: after decoding
// a supported schema, the next record must be a SEND.
func expectSEND(mat, mf, mt int, src endf.LineSource) error {
	_, _, kind, err := readRecord(src)
	if err != nil {
		return err
	}
	if kind != endf.KindSEND {
		return endf.NewError(endf.KindBadFraming,
			"expected SEND after (MAT=%d, MF=%d, MT=%d) section, got %s", mat, mf, mt, kind)
	}
	return nil
}
