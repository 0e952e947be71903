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
	"fmt"
	"time"

	"github.com/kr3z/ENDF/internal/endf"
	"github.com/kr3z/ENDF/internal/section"
	"github.com/kr3z/ENDF/internal/tape"
)

// PersistTape walks every Material of tp depth-first, each in its own
// transaction (spec.md §4.5). A material that fails to persist is
// rolled back and annotated against fileKey's Files row (spec.md S4);
// the walk continues with the remaining materials. The returned
// ErrorCollector holds the error of each failed material, in tape order,
// plus any error returned by Rollback, SetComment or Commit.
// Timings accumulates per-component wall time across every material,
// the Go shape of the original's self.timings dict (spec.md §4.3
// supplement).
func PersistTape(store Store, ids IDAllocator, registry FileRegistry, fileKey int64, tp *tape.Tape) (*endf.ErrorCollector, Timings) {
	ec := &endf.ErrorCollector{}
	var totals Timings
	for _, mat := range tp.Materials {
		start := time.Now()
		t, err := persistMaterial(store, ids, fileKey, mat)
		totals.Add(t)
		if err != nil {
			if rbErr := store.Rollback(); rbErr != nil {
				ec.Add(rbErr)
			}
			comment := fmt.Sprintf("Persist: %s", err.Error())
			if cErr := registry.SetComment(fileKey, comment); cErr != nil {
				ec.Add(cErr)
			}
			ec.Add(err)
			totals.Total += time.Since(start)
			continue
		}
		if err := store.Commit(); err != nil {
			ec.Add(err)
		}
		totals.Total += time.Since(start)
	}
	return ec, totals
}

// persistMaterial runs the two-pass walk of spec.md §4.5: first locate
// and persist the (1,451) section to learn library_key/material_key,
// then propagate those keys to every other parsed section before
// persisting it. Sections outside the (1,451)/(3,*) schema pair are
// decoded (spec.md §4.3) but have no persistence rule and are skipped
// here, matching the "Per-section rules" list being exhaustive.
func persistMaterial(store Store, ids IDAllocator, fileKey int64, mat *tape.Material) (Timings, error) {
	var t Timings
	if err := store.BeginMaterial(); err != nil {
		return t, err
	}

	var libKey, matKey int64
	var found bool
	for _, f := range mat.Files {
		for _, sec := range f.Sections {
			if sec.Parsed && sec.Kind == section.KindGeneralInfo {
				var giTimings Timings
				var err error
				libKey, matKey, giTimings, err = persistGeneralInfo(store, ids, fileKey, mat.MAT, sec)
				t.Add(giTimings)
				if err != nil {
					return t, err
				}
				sec.LibraryKey, sec.MaterialKey, sec.FileKey = libKey, matKey, fileKey
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	for _, f := range mat.Files {
		for _, sec := range f.Sections {
			if !sec.Parsed || sec.Kind == section.KindGeneralInfo {
				continue
			}
			sec.LibraryKey, sec.MaterialKey, sec.FileKey = libKey, matKey, fileKey
			if sec.Kind != section.KindCrossSection {
				continue
			}
			csTimings, err := persistCrossSection(store, ids, libKey, matKey, sec)
			t.Add(csTimings)
			if err != nil {
				return t, err
			}
		}
	}
	return t, nil
}

// persistGeneralInfo implements the (1,451) rules of spec.md §4.5,
// grounded on ENDFSection.persist()'s Library/Material/GeneralInfo/
// Directory upserts.
func persistGeneralInfo(store Store, ids IDAllocator, fileKey int64, mat int, sec *section.Section) (libKey, matKey int64, t Timings, err error) {
	d := sec.Body.(section.GeneralInfoData)

	start := time.Now()
	libRow := LibraryRow{
		NLIB: d.NLIB, NVER: d.NVER, LREL: d.LREL, NSUB: d.NSUB, NFOR: d.NFOR,
		IPART: d.NSUB / 10, ITYPE: d.NSUB % 10,
	}
	libKey, ok, err := store.FindLibrary(libRow)
	if err != nil {
		return 0, 0, t, newDbError(err, "looking up Library row")
	}
	if !ok {
		libKey, err = ids.NextID()
		if err != nil {
			return 0, 0, t, newDbError(err, "allocating Library id")
		}
		if err := store.InsertLibrary(libKey, libRow); err != nil {
			return 0, 0, t, newDbError(err, "inserting Library row")
		}
	}
	t.Lib = time.Since(start)

	start = time.Now()
	za := int64(d.ZA)
	matRow := MaterialRow{
		MAT: mat, Z: int(za / 1000), A: int(za % 1000), AWR: d.AWR,
		LFI: d.LFI, LIS: d.LIS, LISO: d.LISO, ELIS: d.ELIS, STA: d.STA,
	}
	matKey, ok, err = store.FindMaterial(matRow)
	if err != nil {
		return 0, 0, t, newDbError(err, "looking up Material row")
	}
	if !ok {
		matKey, err = ids.NextID()
		if err != nil {
			return 0, 0, t, newDbError(err, "allocating Material id")
		}
		if err := store.InsertMaterial(matKey, matRow); err != nil {
			return 0, 0, t, newDbError(err, "inserting Material row")
		}
	}
	t.Mat = time.Since(start)

	start = time.Now()
	giKey, ok, err := store.FindGeneralInfo(matKey, libKey)
	if err != nil {
		return 0, 0, t, newDbError(err, "looking up GeneralInfo row")
	}
	if !ok {
		giKey, err = ids.NextID()
		if err != nil {
			return 0, 0, t, newDbError(err, "allocating GeneralInfo id")
		}
		giRow := GeneralInfoRow{
			MaterialKey: matKey, LibraryKey: libKey, FileKey: fileKey,
			LRP: d.LRP, NMOD: d.NMOD, AWI: d.AWI, EMAX: d.EMAX,
			TEMP: d.TEMP, LDRV: d.LDRV, Description: d.Desc,
		}
		if err := store.InsertGeneralInfo(giKey, giRow); err != nil {
			return 0, 0, t, newDbError(err, "inserting GeneralInfo row")
		}
	}
	t.GI = time.Since(start)

	start = time.Now()
	hasDir, err := store.HasDirectory(giKey)
	if err != nil {
		return 0, 0, t, newDbError(err, "checking Directory rows")
	}
	if !hasDir && len(d.Directory) > 0 {
		block, err := ids.NextIDBlock(len(d.Directory))
		if err != nil {
			return 0, 0, t, newDbError(err, "allocating Directory ids")
		}
		rows := make([]DirectoryRow, len(d.Directory))
		for i, e := range d.Directory {
			rows[i] = DirectoryRow{ID: block[i], GeneralInfoKey: giKey, MF: e.MF, MT: e.MT, NC: e.NC, MOD: e.MOD}
		}
		if err := insertDirectoryBatches(store, rows); err != nil {
			return 0, 0, t, err
		}
	}
	t.Dir = time.Since(start)

	return libKey, matKey, t, nil
}

func insertDirectoryBatches(store Store, rows []DirectoryRow) error {
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := store.InsertDirectoryBatch(rows[i:end]); err != nil {
			return newDbError(err, "inserting Directory batch")
		}
	}
	return nil
}

// persistCrossSection implements the (3,*) rules of spec.md §4.5,
// including the NaNInData guard over X/Y.
func persistCrossSection(store Store, ids IDAllocator, libKey, matKey int64, sec *section.Section) (Timings, error) {
	var t Timings
	d := sec.Body.(section.CrossSectionData)

	start := time.Now()
	csRow := CrossSectionInfoRow{
		MT: sec.MT, MaterialKey: matKey, LibraryKey: libKey,
		ZA: d.ZA, AWR: d.AWR, QM: d.QM, QI: d.QI, LR: d.LR,
		NR: len(d.Tab.NBT), NP: len(d.Tab.X),
	}
	csKey, ok, err := store.FindCrossSectionInfo(sec.MT, matKey, libKey)
	if err != nil {
		return t, newDbError(err, "looking up CrossSectionInfo row")
	}
	if !ok {
		csKey, err = ids.NextID()
		if err != nil {
			return t, newDbError(err, "allocating CrossSectionInfo id")
		}
		if err := store.InsertCrossSectionInfo(csKey, csRow); err != nil {
			return t, newDbError(err, "inserting CrossSectionInfo row")
		}
	}
	t.CSInfo = time.Since(start)

	start = time.Now()
	hasInterp, err := store.HasInterpolation(csKey, sec.MT, sec.MF)
	if err != nil {
		return t, newDbError(err, "checking Interpolation rows")
	}
	if !hasInterp && len(d.Tab.NBT) > 0 {
		block, err := ids.NextIDBlock(len(d.Tab.NBT))
		if err != nil {
			return t, newDbError(err, "allocating Interpolation ids")
		}
		rows := make([]InterpolationRow, len(d.Tab.NBT))
		for i := range d.Tab.NBT {
			rows[i] = InterpolationRow{ID: block[i], InfoKey: csKey, MT: sec.MT, MF: sec.MF, NBT: d.Tab.NBT[i], INT: d.Tab.INT[i]}
		}
		if err := insertInterpolationBatches(store, rows); err != nil {
			return t, err
		}
	}
	t.Interp = time.Since(start)

	start = time.Now()
	hasData, err := store.HasCrossSectionData(csKey)
	if err != nil {
		return t, newDbError(err, "checking CrossSectionData rows")
	}
	if !hasData && len(d.Tab.X) > 0 {
		block, err := ids.NextIDBlock(len(d.Tab.X))
		if err != nil {
			return t, newDbError(err, "allocating CrossSectionData ids")
		}
		rows := make([]CrossSectionDataRow, len(d.Tab.X))
		for i := range d.Tab.X {
			if isNaN(d.Tab.X[i]) || isNaN(d.Tab.Y[i]) {
				return t, endf.NewError(endf.KindNaNInData, "NaN in cross section data for MAT=%d MT=%d at index %d", sec.MAT, sec.MT, i)
			}
			rows[i] = CrossSectionDataRow{ID: block[i], CrossSectionInfoKey: csKey, MT: sec.MT, Energy: d.Tab.X[i], CrossSec: d.Tab.Y[i]}
		}
		if err := insertCrossSectionDataBatches(store, rows); err != nil {
			return t, err
		}
	}
	t.CSData = time.Since(start)
	return t, nil
}

func insertInterpolationBatches(store Store, rows []InterpolationRow) error {
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := store.InsertInterpolationBatch(rows[i:end]); err != nil {
			return newDbError(err, "inserting Interpolation batch")
		}
	}
	return nil
}

func insertCrossSectionDataBatches(store Store, rows []CrossSectionDataRow) error {
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := store.InsertCrossSectionDataBatch(rows[i:end]); err != nil {
			return newDbError(err, "inserting CrossSectionData batch")
		}
	}
	return nil
}

func isNaN(f float64) bool {
	return f != f
}
