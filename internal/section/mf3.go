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

// parseCrossSection decodes (MF=3, *): reaction cross sections.
func parseCrossSection(head endf.ContData, src endf.LineSource) (CrossSectionData, error) {
	d := CrossSectionData{ZA: head.C1, AWR: head.C2}

	cont, err := nextCONT(src)
	if err != nil {
		return d, err
	}
	d.QM, d.QI, d.LR = cont.C1, cont.C2, cont.L2

	tab, _, err := endf.ReadTAB1(src, cont.N1, cont.N2)
	if err != nil {
		return d, err
	}
	d.Tab = tab
	return d, nil
}
