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

package persist

import (
	"math"
	"testing"

	"github.com/kr3z/ENDF/internal/endf"
	"github.com/kr3z/ENDF/internal/persist/mem"
	"github.com/kr3z/ENDF/internal/section"
	"github.com/kr3z/ENDF/internal/tape"
)

func generalInfoSection(mat int) *section.Section {
	return &section.Section{
		MAT: mat, MF: 1, MT: 451, Parsed: true, Kind: section.KindGeneralInfo,
		Body: section.GeneralInfoData{
			ZA: float64(mat*2 + 1), AWR: 1.0, LFI: 0, LIS: 0, LISO: 0,
			NLIB: 1, NMOD: 0, NVER: 1, LREL: 1, NSUB: 10, NFOR: 6,
			ELIS: 0.0, STA: 0.0, LRP: 1, AWI: 1.0, EMAX: 2e7, TEMP: 0,
			LDRV: 0, Desc: "test material\n",
			Directory: []section.DirectoryEntry{
				{MF: 3, MT: 1, NC: 10, MOD: 1},
				{MF: 3, MT: 2, NC: 8, MOD: 1},
			},
		},
	}
}

func crossSectionSection(mat, mt int, y []float64) *section.Section {
	return &section.Section{
		MAT: mat, MF: 3, MT: mt, Parsed: true, Kind: section.KindCrossSection,
		Body: section.CrossSectionData{
			ZA: float64(mat*2 + 1), AWR: 1.0, QM: 0, QI: 0, LR: 0,
			Tab: endf.Tab1Data{
				NBT: []int{2}, INT: []int{2},
				X:   []float64{1e-5, 2e7},
				Y:   y,
			},
		},
	}
}

func buildMaterial(mat int, y []float64) *tape.Material {
	return &tape.Material{
		MAT: mat,
		Files: []*tape.File{
			{MF: 1, Sections: []*section.Section{generalInfoSection(mat)}},
			{MF: 3, Sections: []*section.Section{crossSectionSection(mat, 1, y)}},
		},
	}
}

func TestPersistTapeBasic(t *testing.T) {
	store := mem.NewStore()
	ids := mem.NewIDAllocator()
	registry := mem.NewFileRegistry()
	fileKey, err := registry.Register("n_0125.dat", "", "")
	if err != nil {
		t.Fatalf("registering file: %v", err)
	}

	tp := &tape.Tape{NTAPE: 125, Materials: []*tape.Material{buildMaterial(125, []float64{3.0, 4.0})}}

	ec, timings := PersistTape(store, ids, registry, fileKey, tp)
	if len(ec.Errors) != 0 {
		t.Fatalf("unexpected persist errors: %v", ec.Errors)
	}
	if timings.Total < 0 {
		t.Fatalf("expected a non-negative total timing, got %+v", timings)
	}

	sec := tp.Materials[0].Files[0].Sections[0]
	if sec.LibraryKey == 0 || sec.MaterialKey == 0 {
		t.Fatalf("expected library/material keys to be assigned, got %+v", sec)
	}
	csSec := tp.Materials[0].Files[1].Sections[0]
	if csSec.LibraryKey != sec.LibraryKey || csSec.MaterialKey != sec.MaterialKey {
		t.Fatalf("expected propagated keys on cross-section, got %+v", csSec)
	}

	giKey, ok, err := store.FindGeneralInfo(sec.MaterialKey, sec.LibraryKey)
	if err != nil || !ok {
		t.Fatalf("expected a persisted GeneralInfo row, ok=%v err=%v", ok, err)
	}
	if dir := store.Directory(giKey); len(dir) != 2 {
		t.Fatalf("expected 2 directory rows, got %d", len(dir))
	}
}

func TestPersistTapeIdempotent(t *testing.T) {
	// spec.md invariant 8: persisting the same tape twice against an
	// empty-then-populated store yields the same rows (keyed upserts dedupe).
	store := mem.NewStore()
	ids := mem.NewIDAllocator()
	registry := mem.NewFileRegistry()
	fileKey, _ := registry.Register("n_0125.dat", "", "")

	tp1 := &tape.Tape{NTAPE: 125, Materials: []*tape.Material{buildMaterial(125, []float64{3.0, 4.0})}}
	tp2 := &tape.Tape{NTAPE: 125, Materials: []*tape.Material{buildMaterial(125, []float64{3.0, 4.0})}}

	ec1, _ := PersistTape(store, ids, registry, fileKey, tp1)
	if len(ec1.Errors) != 0 {
		t.Fatalf("unexpected errors on first persist: %v", ec1.Errors)
	}
	ec2, _ := PersistTape(store, ids, registry, fileKey, tp2)
	if len(ec2.Errors) != 0 {
		t.Fatalf("unexpected errors on second persist: %v", ec2.Errors)
	}

	gi1 := tp1.Materials[0].Files[0].Sections[0]
	gi2 := tp2.Materials[0].Files[0].Sections[0]
	if gi1.LibraryKey != gi2.LibraryKey || gi1.MaterialKey != gi2.MaterialKey {
		t.Fatalf("expected second persist to reuse keys: %+v vs %+v", gi1, gi2)
	}

	giKey, ok, err := store.FindGeneralInfo(gi1.MaterialKey, gi1.LibraryKey)
	if err != nil || !ok {
		t.Fatalf("expected a persisted GeneralInfo row, ok=%v err=%v", ok, err)
	}
	if dir := store.Directory(giKey); len(dir) != 2 {
		t.Fatalf("expected directory rows to stay at 2 after re-persisting, got %d", len(dir))
	}
}

func TestPersistTapeNaNGuard(t *testing.T) {
	// spec.md S4: a NaN in cross-section Y fails that material's persist
	// with NaNInData, annotates the file's comment, and other materials
	// in the same tape still persist.
	store := mem.NewStore()
	ids := mem.NewIDAllocator()
	registry := mem.NewFileRegistry()
	fileKey, _ := registry.Register("mixed.dat", "", "")

	good := buildMaterial(125, []float64{3.0, 4.0})
	bad := buildMaterial(126, []float64{3.0, math.NaN()})

	tp := &tape.Tape{NTAPE: 125, Materials: []*tape.Material{bad, good}}

	ec, _ := PersistTape(store, ids, registry, fileKey, tp)
	if len(ec.Errors) == 0 {
		t.Fatalf("expected a NaNInData error from the bad material")
	}
	var found bool
	for _, err := range ec.Errors {
		if e, ok := err.(*endf.Error); ok && e.Kind == endf.KindNaNInData {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected KindNaNInData among errors, got %v", ec.Errors)
	}

	comment := registry.Comment(fileKey)
	if len(comment) < len("Persist:") || comment[:len("Persist:")] != "Persist:" {
		t.Fatalf("expected comment to begin with \"Persist:\", got %q", comment)
	}

	goodSec := good.Files[0].Sections[0]
	if goodSec.LibraryKey == 0 || goodSec.MaterialKey == 0 {
		t.Fatalf("expected the good material to still be persisted: %+v", goodSec)
	}
}
