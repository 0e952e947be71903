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

// Package section decodes a contiguous HEAD-to-SEND run of an ENDF-6 tape
// into a typed payload, per the (MF, MT) schema catalog of spec §4.3. The
// schema catalog is modeled as a tagged variant (Body), the way the teacher
// dispatches per-package-format Generators from a single Validate/Build
// call site (src/holo-build/common/generator.go); here the dispatch key is
// (MF, MT) instead of a command-line flag.
package section

import "github.com/kr3z/ENDF/internal/endf"

// Kind tags which schema, if any, a Section's Body was decoded with.
type Kind int

const (
	KindUnparsed Kind = iota
	KindGeneralInfo
	KindNeutronYield
	KindDelayedNeutron
	KindEnergyRelease
	KindDelayedPhoton
	KindCrossSection
)

// Section is a fully decoded HEAD-to-SEND run. Body is nil when Parsed is
// false (an (MF, MT) pair outside the supported schema set, spec §4.3
// "Unknown (MF, MT)"); otherwise it holds one of the *Data types below,
// selected by Kind.
type Section struct {
	MAT, MF, MT int
	Parsed      bool
	Kind        Kind
	Body        interface{}

	// Foreign keys assigned during the persistence walk (spec §3
	// "Persistence entities"); zero until then.
	LibraryKey  int64
	MaterialKey int64
	FileKey     int64
}

// GeneralInfoData is the (MF=1, MT=451) descriptive-data-and-directory
// payload.
type GeneralInfoData struct {
	ZA, AWR            float64
	LRP, LFI, NLIB     int
	NMOD               int
	ELIS               float64
	STA                float64
	LIS, LISO          int
	NFOR               int
	AWI, EMAX          float64
	LREL, NSUB, NVER   int
	TEMP               float64
	LDRV               int
	NWD, NXC           int
	Desc               string
	Directory          []DirectoryEntry
}

// DirectoryEntry is one (MF, MT, NC, MOD) row of the MT=451 directory.
type DirectoryEntry struct {
	MF, MT, NC, MOD int
}

// NeutronYieldData is the (MF=1, MT=452|456) payload.
type NeutronYieldData struct {
	ZA, AWR float64
	LNU     int
	// List holds the decoded values when LNU=1.
	List []float64
	// Tab holds the decoded table when LNU=2.
	Tab endf.Tab1Data
}

// DelayedNeutronData is the (MF=1, MT=455) payload, LDG=0 only (LDG=1 is
// NotImplemented per spec §4.3).
type DelayedNeutronData struct {
	ZA, AWR        float64
	LDG, LNU       int
	DecayConstants []float64
	// Yield holds the single value when LNU=1, or is empty when LNU=2.
	Yield []float64
	// Tab holds the decoded table when LNU=2.
	Tab endf.Tab1Data
}

// EnergyReleaseData is the (MF=1, MT=458) payload.
type EnergyReleaseData struct {
	ZA, AWR    float64
	LFC        int
	NFC        int
	NPLY       int
	Components []float64
	PerFC      []EnergyReleaseComponent
}

// EnergyReleaseComponent is one of the NFC repeated blocks present when
// LFC=1.
type EnergyReleaseComponent struct {
	LDRV, IFC int
	Tab       endf.Tab1Data
}

// DelayedPhotonData is the (MF=1, MT=460) payload.
type DelayedPhotonData struct {
	ZA, AWR float64
	LO      int
	// Groups holds the NG decoded tables when LO=1.
	Groups []DelayedPhotonGroup
	// List holds the decoded values when LO=2.
	List []float64
}

// DelayedPhotonGroup is one of the NG repeated blocks present when LO=1.
type DelayedPhotonGroup struct {
	E   float64
	ING int
	Tab endf.Tab1Data
}

// CrossSectionData is the (MF=3, *) reaction cross-section payload.
type CrossSectionData struct {
	ZA, AWR float64
	QM, QI  float64
	LR      int
	Tab     endf.Tab1Data
}
