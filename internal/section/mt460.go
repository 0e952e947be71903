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

// parseDelayedPhoton decodes (MF=1, MT=460): delayed photon data.
func parseDelayedPhoton(head endf.ContData, src endf.LineSource) (DelayedPhotonData, error) {
	d := DelayedPhotonData{ZA: head.C1, AWR: head.C2, LO: head.L1}
	ng := head.N1

	switch d.LO {
	case 1:
		for i := 0; i < ng; i++ {
			cont, err := nextCONT(src)
			if err != nil {
				return d, err
			}
			tab, _, err := endf.ReadTAB1(src, cont.N1, cont.N2)
			if err != nil {
				return d, err
			}
			d.Groups = append(d.Groups, DelayedPhotonGroup{
				E:   cont.C1,
				ING: cont.L1,
				Tab: tab,
			})
		}
	case 2:
		cont, err := nextCONT(src)
		if err != nil {
			return d, err
		}
		values, _, err := endf.ReadLIST(src, cont.N2)
		if err != nil {
			return d, err
		}
		d.List = values
	default:
		return d, endf.NewError(endf.KindBadSchema, "invalid LO=%d for delayed photon section", d.LO)
	}
	return d, nil
}
