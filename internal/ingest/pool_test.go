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

package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kr3z/ENDF/internal/library"
	"github.com/kr3z/ENDF/internal/persist"
	"github.com/kr3z/ENDF/internal/persist/mem"
)

// rawField pads/truncates s to the 11-column field width shared by every
// CONT-family record.
func rawField(s string) string {
	for len(s) < 11 {
		s += " "
	}
	return s[:11]
}

// rawLine renders one 80-column record, mirroring internal/tape's own
// test helper but producing the text a real Lexer reads instead of a
// pre-decoded endf.Line.
func rawLine(mat, mf, mt, ns int, nsValid bool, fields [6]string) string {
	content := ""
	for _, f := range fields {
		content += rawField(f)
	}
	nsStr := "     "
	if nsValid {
		nsStr = fmt.Sprintf("%5d", ns)
	}
	return fmt.Sprintf("%s%4d%2d%3d%s", content, mat, mf, mt, nsStr)
}

func rawZero() [6]string { return [6]string{"0", "0", "0", "0", "0", "0"} }

// minimalTapeLines is spec S2's tape: a single (MAT=125, MF=3, MT=1)
// cross-section section with NR=1, NP=2, the same fixture values
// internal/tape and internal/section's own tests already exercise.
func minimalTapeLines() string {
	lines := []string{
		rawLine(125, 1, 0, 0, false, [6]string{"tape", "", "", "", "", ""}),
		rawLine(125, 3, 1, 1, true, [6]string{"0.0", "0.0", "0", "0", "0", "0"}),
		rawLine(125, 3, 1, 2, true, [6]string{"0.0", "0.0", "0", "0", "1", "2"}),
		rawLine(125, 3, 1, 3, true, [6]string{"2", "2", "", "", "", ""}),
		rawLine(125, 3, 1, 4, true, [6]string{"1.0-5", "3.0", "2.0+7", "4.0", "", ""}),
		rawLine(125, 3, 0, 99999, true, rawZero()),
		rawLine(125, 0, 0, 0, false, rawZero()),
		rawLine(0, 0, 0, 0, false, rawZero()),
		rawLine(-1, 0, 0, 0, false, rawZero()),
	}
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func writeTape(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(minimalTapeLines()), 0o644); err != nil {
		t.Fatalf("writing tape: %v", err)
	}
}

func TestRunProcessesTapes(t *testing.T) {
	dir := t.TempDir()
	writeTape(t, dir, "n_0125.dat")

	tapes, err := library.Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tapes) != 1 {
		t.Fatalf("expected 1 tape, got %d", len(tapes))
	}

	ids := mem.NewIDAllocator()
	registry := mem.NewFileRegistry()
	results := Run(context.Background(), tapes, 2, ids, registry, func() (persist.Store, error) {
		return mem.NewStore(), nil
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("unexpected parse error: %v", results[0].Err)
	}
	if results[0].Persist == nil || len(results[0].Persist.Errors) != 0 {
		t.Fatalf("unexpected persist errors: %+v", results[0].Persist)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeTape(t, dir, "n_0125.dat")
	writeTape(t, dir, "n_0126.dat")

	tapes, err := library.Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, tapes, 1, mem.NewIDAllocator(), mem.NewFileRegistry(), func() (persist.Store, error) {
		return mem.NewStore(), nil
	})

	for _, r := range results {
		if r.Err == nil {
			t.Fatalf("expected every tape to be canceled, got %+v", r)
		}
	}
}
