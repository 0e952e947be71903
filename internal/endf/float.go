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
	"math"
	"strconv"
	"strings"
)

// DecodeFloat decodes an ENDF-6 11-column float field. The ENDF dialect
// permits the exponent marker ('E'/'D') to be omitted entirely, relying on
// the sign of the exponent to delimit it from the significand; see
// spec §4.2 for the exact normalization steps.
func DecodeFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	s = strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, s)

	if !strings.ContainsAny(s, "eE") {
		if idx := lastSignIndex(s); idx > 0 {
			s = s[:idx] + "E" + s[idx:]
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, wrapError(KindBadFloat, err, "cannot parse float field %q", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newError(KindBadFloat, "float field %q decodes to a non-finite value", raw)
	}
	return f, nil
}

// lastSignIndex returns the index of the last '+' or '-' in s that is not
// at position 0, or -1 if none exists. Such a sign (when present) marks
// the boundary between an unmarked significand and its exponent.
func lastSignIndex(s string) int {
	idx := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			idx = i
		}
	}
	return idx
}
