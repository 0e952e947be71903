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

// parseGeneralInfo decodes (MF=1, MT=451): descriptive data and directory.
// The second return value is true when a SEND record was encountered
// inside the NXC directory loop (spec §4.3's documented early-termination
// exception to the generic SEND-enforcement rule); in that case the
// caller must not additionally expect a trailing SEND.
func parseGeneralInfo(head endf.ContData, src endf.LineSource) (GeneralInfoData, bool, error) {
	var d GeneralInfoData
	d.ZA, d.AWR, d.LRP, d.LFI, d.NLIB, d.NMOD = head.C1, head.C2, head.L1, head.L2, head.N1, head.N2

	l1, err := nextCONT(src)
	if err != nil {
		return d, false, err
	}
	d.ELIS, d.STA, d.LIS, d.LISO, d.NFOR = l1.C1, l1.C2, l1.L1, l1.L2, l1.N2

	l2, err := nextCONT(src)
	if err != nil {
		return d, false, err
	}
	d.AWI, d.EMAX, d.LREL, d.NSUB, d.NVER = l2.C1, l2.C2, l2.L1, l2.N1, l2.N2

	l3, err := nextCONT(src)
	if err != nil {
		return d, false, err
	}
	d.TEMP, d.LDRV, d.NWD, d.NXC = l3.C1, l3.L1, l3.N1, l3.N2

	for i := 0; i < d.NWD; i++ {
		line, err := src.Next()
		if err != nil {
			return d, false, err
		}
		d.Desc += line.Content + "\n"
	}

	for i := 0; i < d.NXC; i++ {
		line, cont, kind, err := readRecord(src)
		if err != nil {
			return d, false, err
		}
		if kind == endf.KindSEND {
			return d, true, nil
		}
		_ = line
		d.Directory = append(d.Directory, DirectoryEntry{
			MF:  cont.L1,
			MT:  cont.L2,
			NC:  cont.N1,
			MOD: cont.N2,
		})
	}

	return d, false, nil
}

// nextCONT reads one record from src and decodes it as a CONT payload.
func nextCONT(src endf.LineSource) (endf.ContData, error) {
	line, err := src.Next()
	if err != nil {
		return endf.ContData{}, err
	}
	return endf.DecodeCONT(line.Content)
}
