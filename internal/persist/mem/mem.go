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

// Package mem provides in-memory reference implementations of
// persist.Store, persist.IDAllocator and persist.FileRegistry, used by
// tests and by local runs that never open a real relational connection.
// The id allocator mirrors DB.py's DBConnection pool (a slice refilled
// in blocks), shrunk to a plain counter since there is no real
// id_seq table to refill from.
package mem

import (
	"fmt"
	"math"
	"sync"

	"github.com/kr3z/ENDF/internal/persist"
)

// IDAllocator is a process-local, mutex-guarded counter satisfying
// persist.IDAllocator. Real deployments refill from an external
// id_seq table in contiguous blocks (spec.md §4.5); this allocator
// simulates the same contiguous-block contract without a backing table.
type IDAllocator struct {
	mu   sync.Mutex
	next int64
}

// NewIDAllocator returns an allocator whose first minted id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

func (a *IDAllocator) NextID() (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id, nil
}

func (a *IDAllocator) NextIDBlock(n int) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = a.next
		a.next++
	}
	return ids, nil
}

// libraryKey/materialKey are the composite lookup keys for their
// respective upserts, mirroring the WHERE clauses of ENDFSection.persist().
type libraryKey struct {
	NLIB, NVER, LREL, NSUB, NFOR int
}

type materialKey struct {
	MAT            int
	AWR            float64
	LFI, LIS, LISO int
	STA            float64
}

type generalInfoKey struct {
	MaterialKey, LibraryKey int64
}

type crossSectionInfoKey struct {
	MT                      int
	MaterialKey, LibraryKey int64
}

// Store is an in-memory persist.Store. It is not safe for concurrent
// use by multiple goroutines against the same instance; callers run
// one Store per worker, as spec.md §5 requires.
type Store struct {
	libraries    map[libraryKey]int64
	libraryRows  map[int64]persist.LibraryRow
	materials    map[materialKey]int64
	materialRows map[int64]persist.MaterialRow
	generalInfo  map[generalInfoKey]int64
	giRows       map[int64]persist.GeneralInfoRow
	directory    map[int64][]persist.DirectoryRow

	csInfo     map[crossSectionInfoKey]int64
	csInfoRows map[int64]persist.CrossSectionInfoRow
	interp     map[int64][]persist.InterpolationRow
	csData     map[int64][]persist.CrossSectionDataRow

	inTransaction bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		libraries:    make(map[libraryKey]int64),
		libraryRows:  make(map[int64]persist.LibraryRow),
		materials:    make(map[materialKey]int64),
		materialRows: make(map[int64]persist.MaterialRow),
		generalInfo:  make(map[generalInfoKey]int64),
		giRows:       make(map[int64]persist.GeneralInfoRow),
		directory:    make(map[int64][]persist.DirectoryRow),
		csInfo:       make(map[crossSectionInfoKey]int64),
		csInfoRows:   make(map[int64]persist.CrossSectionInfoRow),
		interp:       make(map[int64][]persist.InterpolationRow),
		csData:       make(map[int64][]persist.CrossSectionDataRow),
	}
}

func (s *Store) FindLibrary(row persist.LibraryRow) (int64, bool, error) {
	k := libraryKey{row.NLIB, row.NVER, row.LREL, row.NSUB, row.NFOR}
	key, ok := s.libraries[k]
	return key, ok, nil
}

func (s *Store) InsertLibrary(key int64, row persist.LibraryRow) error {
	k := libraryKey{row.NLIB, row.NVER, row.LREL, row.NSUB, row.NFOR}
	s.libraries[k] = key
	s.libraryRows[key] = row
	return nil
}

// FindMaterial applies the |ELIS-row.ELIS|<0.05 tolerance of
// spec.md §4.5 instead of folding ELIS into the exact-match map key.
func (s *Store) FindMaterial(row persist.MaterialRow) (int64, bool, error) {
	for key, existing := range s.materialRows {
		if existing.MAT == row.MAT && existing.AWR == row.AWR &&
			existing.LFI == row.LFI && existing.LIS == row.LIS && existing.LISO == row.LISO &&
			existing.STA == row.STA && math.Abs(existing.ELIS-row.ELIS) < 0.05 {
			return key, true, nil
		}
	}
	return 0, false, nil
}

func (s *Store) InsertMaterial(key int64, row persist.MaterialRow) error {
	s.materialRows[key] = row
	return nil
}

func (s *Store) FindGeneralInfo(materialKey, libraryKey int64) (int64, bool, error) {
	key, ok := s.generalInfo[generalInfoKey{materialKey, libraryKey}]
	return key, ok, nil
}

func (s *Store) InsertGeneralInfo(key int64, row persist.GeneralInfoRow) error {
	s.generalInfo[generalInfoKey{row.MaterialKey, row.LibraryKey}] = key
	s.giRows[key] = row
	return nil
}

func (s *Store) HasDirectory(generalInfoKey int64) (bool, error) {
	rows, ok := s.directory[generalInfoKey]
	return ok && len(rows) > 0, nil
}

func (s *Store) InsertDirectoryBatch(rows []persist.DirectoryRow) error {
	if len(rows) == 0 {
		return nil
	}
	giKey := rows[0].GeneralInfoKey
	s.directory[giKey] = append(s.directory[giKey], rows...)
	return nil
}

func (s *Store) FindCrossSectionInfo(mt int, materialKey, libraryKey int64) (int64, bool, error) {
	key, ok := s.csInfo[crossSectionInfoKey{mt, materialKey, libraryKey}]
	return key, ok, nil
}

func (s *Store) InsertCrossSectionInfo(key int64, row persist.CrossSectionInfoRow) error {
	s.csInfo[crossSectionInfoKey{row.MT, row.MaterialKey, row.LibraryKey}] = key
	s.csInfoRows[key] = row
	return nil
}

func (s *Store) HasInterpolation(infoKey int64, mt, mf int) (bool, error) {
	rows, ok := s.interp[infoKey]
	return ok && len(rows) > 0, nil
}

func (s *Store) InsertInterpolationBatch(rows []persist.InterpolationRow) error {
	if len(rows) == 0 {
		return nil
	}
	infoKey := rows[0].InfoKey
	s.interp[infoKey] = append(s.interp[infoKey], rows...)
	return nil
}

func (s *Store) HasCrossSectionData(infoKey int64) (bool, error) {
	rows, ok := s.csData[infoKey]
	return ok && len(rows) > 0, nil
}

func (s *Store) InsertCrossSectionDataBatch(rows []persist.CrossSectionDataRow) error {
	if len(rows) == 0 {
		return nil
	}
	infoKey := rows[0].CrossSectionInfoKey
	s.csData[infoKey] = append(s.csData[infoKey], rows...)
	return nil
}

func (s *Store) BeginMaterial() error {
	s.inTransaction = true
	return nil
}

func (s *Store) Commit() error {
	s.inTransaction = false
	return nil
}

// Rollback is a no-op past the point of failure: unlike a real
// connection, this Store has already applied every upsert made before
// the failing one, since there is no pending-writes buffer to discard.
// Tests that need rollback fidelity should construct their own
// snapshot-and-restore wrapper; the reference Store here only needs to
// satisfy the interface for tests and local (non --dry-run) ingest runs.
func (s *Store) Rollback() error {
	s.inTransaction = false
	return nil
}

// CrossSectionData exposes the in-memory CrossSectionData rows for a
// given CrossSectionInfo key, for test assertions.
func (s *Store) CrossSectionData(csInfoKey int64) []persist.CrossSectionDataRow {
	return s.csData[csInfoKey]
}

// Directory exposes the in-memory Directory rows for a given
// GeneralInfo key, for test assertions.
func (s *Store) Directory(giKey int64) []persist.DirectoryRow {
	return s.directory[giKey]
}

// FileRegistry is an in-memory persist.FileRegistry.
type FileRegistry struct {
	mu      sync.Mutex
	byKey   map[int64]string
	lookup  map[string]int64
	next    int64
	comment map[int64]string
}

// NewFileRegistry returns an empty FileRegistry.
func NewFileRegistry() *FileRegistry {
	return &FileRegistry{
		byKey:   make(map[int64]string),
		lookup:  make(map[string]int64),
		next:    1,
		comment: make(map[int64]string),
	}
}

func registryKey(name, path, zipFile string) string {
	return fmt.Sprintf("%s\x00%s\x00%s", name, path, zipFile)
}

func (r *FileRegistry) Lookup(name, path, zipFile string) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.lookup[registryKey(name, path, zipFile)]
	return key, ok, nil
}

func (r *FileRegistry) Register(name, path, zipFile string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.next
	r.next++
	r.lookup[registryKey(name, path, zipFile)] = key
	r.byKey[key] = registryKey(name, path, zipFile)
	return key, nil
}

func (r *FileRegistry) SetComment(key int64, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comment[key] = comment
	return nil
}

// Comment returns the last comment recorded against key, for test
// assertions.
func (r *FileRegistry) Comment(key int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.comment[key]
}
