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

// parseDelayedNeutron decodes (MF=1, MT=455): delayed neutron data.
// LDG=1 is NotImplemented per spec §4.3; the second return value tells
// the caller to drain the section to its SEND instead of treating it as
// decoded.
func parseDelayedNeutron(head endf.ContData, src endf.LineSource) (DelayedNeutronData, bool, error) {
	d := DelayedNeutronData{ZA: head.C1, AWR: head.C2, LDG: head.L1, LNU: head.L2}

	if d.LDG == 1 {
		return DelayedNeutronData{}, true, nil
	}
	if d.LDG != 0 {
		return d, false, endf.NewError(endf.KindBadSchema, "invalid LDG=%d for delayed neutron section", d.LDG)
	}

	decayCont, err := nextCONT(src)
	if err != nil {
		return d, false, err
	}
	decayConstants, _, err := endf.ReadLIST(src, decayCont.N1)
	if err != nil {
		return d, false, err
	}
	d.DecayConstants = decayConstants

	yieldCont, err := nextCONT(src)
	if err != nil {
		return d, false, err
	}

	switch d.LNU {
	case 1:
		values, _, err := endf.ReadLIST(src, 1)
		if err != nil {
			return d, false, err
		}
		d.Yield = values
	case 2:
		tab, _, err := endf.ReadTAB1(src, yieldCont.N1, yieldCont.N2)
		if err != nil {
			return d, false, err
		}
		d.Tab = tab
	default:
		return d, false, endf.NewError(endf.KindBadSchema, "invalid LNU=%d for delayed neutron section", d.LNU)
	}
	return d, false, nil
}
