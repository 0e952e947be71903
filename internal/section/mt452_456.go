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

// parseNeutronYield decodes (MF=1, MT=452|456): prompt/total neutron yield.
func parseNeutronYield(head endf.ContData, src endf.LineSource) (NeutronYieldData, error) {
	d := NeutronYieldData{ZA: head.C1, AWR: head.C2, LNU: head.L2}

	cont, err := nextCONT(src)
	if err != nil {
		return d, err
	}

	switch d.LNU {
	case 1:
		values, _, err := endf.ReadLIST(src, cont.N1)
		if err != nil {
			return d, err
		}
		d.List = values
	case 2:
		tab, _, err := endf.ReadTAB1(src, cont.N1, cont.N2)
		if err != nil {
			return d, err
		}
		d.Tab = tab
	default:
		return d, endf.NewError(endf.KindBadSchema, "invalid LNU=%d for neutron yield section", d.LNU)
	}
	return d, nil
}
