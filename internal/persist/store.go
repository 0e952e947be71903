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

// Package persist implements the depth-first persistence walk of
// spec.md §4.5: for each Material of a parsed Tape, the (1,451) section
// is located and persisted first (it mints library_key/material_key),
// then those keys are propagated to every other section before its own
// persistence runs. The relational sink itself is out of scope
// (spec.md §1); Store, IDAllocator and FileRegistry are Go interfaces
// here, grounded on DB.py's DBConnection (execute/executemany/commit/
// rollback/id pool) and ENDF.py's Files-table lookups, with an
// in-memory reference implementation in package mem for tests.
package persist

import (
	"time"

	"github.com/kr3z/ENDF/internal/endf"
)

// LibraryRow is a row of the Library table, keyed by
// (NLIB, NSUB, NVER, LREL, NFOR).
type LibraryRow struct {
	NLIB, NVER, LREL, NSUB, NFOR int
	IPART, ITYPE                 int
}

// MaterialRow is a row of the Material table.
type MaterialRow struct {
	MAT            int
	Z, A           int
	AWR            float64
	LFI, LIS, LISO int
	ELIS           float64
	STA            float64
}

// GeneralInfoRow is a row of the GeneralInfo table (the persisted
// projection of an (MF=1, MT=451) section).
type GeneralInfoRow struct {
	MaterialKey, LibraryKey, FileKey int64
	LRP, NMOD                        int
	AWI, EMAX, TEMP                  float64
	LDRV                             int
	Description                      string
}

// DirectoryRow is a row of the Directory table.
type DirectoryRow struct {
	ID              int64
	GeneralInfoKey  int64
	MF, MT, NC, MOD int
}

// CrossSectionInfoRow is a row of the CrossSectionInfo table, keyed by
// (MT, material_key, library_key).
type CrossSectionInfoRow struct {
	MT                    int
	MaterialKey           int64
	LibraryKey            int64
	ZA, AWR, QM, QI       float64
	LR, NR, NP            int
}

// InterpolationRow is a row of the Interpolation table.
type InterpolationRow struct {
	ID       int64
	InfoKey  int64
	MT, MF   int
	NBT, INT int
}

// CrossSectionDataRow is a row of the CrossSectionData table.
type CrossSectionDataRow struct {
	ID                  int64
	CrossSectionInfoKey int64
	MT                  int
	Energy, CrossSec    float64
}

// Store is the relational sink every upsert in this package writes
// through. Each Find* method reports ok=false when no matching row
// exists yet (the "else" branch of DB.py-style SELECT-then-INSERT
// upserts); Insert* methods assume the caller already decided no row
// exists.
type Store interface {
	FindLibrary(row LibraryRow) (key int64, ok bool, err error)
	InsertLibrary(key int64, row LibraryRow) error

	FindMaterial(row MaterialRow) (key int64, ok bool, err error)
	InsertMaterial(key int64, row MaterialRow) error

	FindGeneralInfo(materialKey, libraryKey int64) (key int64, ok bool, err error)
	InsertGeneralInfo(key int64, row GeneralInfoRow) error

	HasDirectory(generalInfoKey int64) (bool, error)
	InsertDirectoryBatch(rows []DirectoryRow) error

	FindCrossSectionInfo(mt int, materialKey, libraryKey int64) (key int64, ok bool, err error)
	InsertCrossSectionInfo(key int64, row CrossSectionInfoRow) error

	HasInterpolation(infoKey int64, mt, mf int) (bool, error)
	InsertInterpolationBatch(rows []InterpolationRow) error

	HasCrossSectionData(infoKey int64) (bool, error)
	InsertCrossSectionDataBatch(rows []CrossSectionDataRow) error

	// BeginMaterial/Commit/Rollback bracket the transaction-per-material
	// semantics of spec.md §4.5.
	BeginMaterial() error
	Commit() error
	Rollback() error
}

// IDAllocator mints primary keys from an external contiguous-block
// sequence, the way DB.py's DBConnection.getNextId/get_ids refill
// _id_pool from "SELECT NEXTVAL(id_seq), increment FROM id_seq".
type IDAllocator interface {
	NextID() (int64, error)
	NextIDBlock(n int) ([]int64, error)
}

// FileRegistry models the Files table: one row per input file (plain or
// zip-archived), looked up by (name, path, zipFile) and annotated with
// a comment on parse/persist failure (spec.md §6, ENDF.py's
// "UPDATE Files set comment=... where id=...").
type FileRegistry interface {
	Lookup(name, path, zipFile string) (key int64, ok bool, err error)
	Register(name, path, zipFile string) (key int64, err error)
	SetComment(key int64, comment string) error
}

// Timings records the depth-first walk's per-component wall time, the
// same breakdown ENDFSection/ENDFFile/ENDFMaterial.persist() accumulate
// into self.timings ("lib", "mat", "gi", "dir", "csinfo", "interp",
// "csdata", "total") and print when non-negligible.
type Timings struct {
	Lib, Mat, GI, Dir, CSInfo, Interp, CSData, Total time.Duration
}

// Add accumulates another Timings into t, mirroring the Python's
// per-key summation across files within a material.
func (t *Timings) Add(o Timings) {
	t.Lib += o.Lib
	t.Mat += o.Mat
	t.GI += o.GI
	t.Dir += o.Dir
	t.CSInfo += o.CSInfo
	t.Interp += o.Interp
	t.CSData += o.CSData
	t.Total += o.Total
}

// batchSize is the bulk-insert chunk size of spec.md §4.5.
const batchSize = 10000

func newDbError(cause error, format string, args ...interface{}) error {
	return endf.WrapError(endf.KindDb, cause, format, args...)
}
