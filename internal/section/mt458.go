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

// parseEnergyRelease decodes (MF=1, MT=458): components of energy release.
func parseEnergyRelease(head endf.ContData, src endf.LineSource) (EnergyReleaseData, error) {
	d := EnergyReleaseData{ZA: head.C1, AWR: head.C2, LFC: head.L2, NFC: head.N2}

	cont, err := nextCONT(src)
	if err != nil {
		return d, err
	}
	d.NPLY = cont.L2

	components, _, err := endf.ReadLIST(src, cont.N1)
	if err != nil {
		return d, err
	}
	d.Components = components

	if d.LFC == 1 {
		for i := 0; i < d.NFC; i++ {
			fcCont, err := nextCONT(src)
			if err != nil {
				return d, err
			}
			tab, _, err := endf.ReadTAB1(src, fcCont.N1, fcCont.N2)
			if err != nil {
				return d, err
			}
			d.PerFC = append(d.PerFC, EnergyReleaseComponent{
				LDRV: fcCont.L1,
				IFC:  fcCont.L2,
				Tab:  tab,
			})
		}
	}
	return d, nil
}
