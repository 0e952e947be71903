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

package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/ogier/pflag"

	"github.com/kr3z/ENDF/internal/config"
	"github.com/kr3z/ENDF/internal/endf"
	"github.com/kr3z/ENDF/internal/ingest"
	"github.com/kr3z/ENDF/internal/library"
	"github.com/kr3z/ENDF/internal/logging"
	"github.com/kr3z/ENDF/internal/persist"
	"github.com/kr3z/ENDF/internal/persist/mem"
	"github.com/kr3z/ENDF/internal/tape"
)

func main() {
	configPath := flag.String("config", "endf-ingest.toml", "path to the TOML configuration file")
	libraryDirOverride := flag.String("library-dir", "", "override endf.library_dir from the config file")
	workers := flag.Int("workers", 0, "tape-level parallelism (0 uses endf.workers from the config file)")
	dryRun := flag.Bool("dry-run", false, "parse every discovered tape but skip persistence")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("%s", err)
		os.Exit(1)
	}
	if *libraryDirOverride != "" {
		cfg.Endf.LibraryDir = *libraryDirOverride
	}
	if *workers > 0 {
		cfg.Endf.Workers = *workers
	}

	tapes, err := library.Discover(cfg.Endf.LibraryDir)
	if err != nil {
		logging.Error("discovering tapes under %q: %s", cfg.Endf.LibraryDir, err)
		os.Exit(1)
	}
	logging.Info("discovered %d tape(s) under %q", len(tapes), cfg.Endf.LibraryDir)

	if *dryRun {
		os.Exit(runDryRun(tapes))
	}
	os.Exit(runIngest(tapes, cfg.Endf.Workers))
}

// runIngest fans tapes out over the persistence-aware worker pool,
// backed by the in-memory reference Store (spec.md §1 scopes the real
// relational connection out of this repository; see internal/persist/mem).
func runIngest(tapes []library.Tape, workers int) int {
	ids := mem.NewIDAllocator()
	registry := mem.NewFileRegistry()
	newStore := func() (persist.Store, error) {
		return mem.NewStore(), nil
	}

	results := ingest.Run(context.Background(), tapes, workers, ids, registry, newStore)

	failed := 0
	var totals persist.Timings
	for _, r := range results {
		name := tapeLabel(r.Tape)
		totals.Add(r.Timings)
		if r.Err != nil {
			logging.Error("%s: %s", name, r.Err)
			failed++
			continue
		}
		if r.Persist != nil && len(r.Persist.Errors) > 0 {
			for _, perr := range r.Persist.Errors {
				logging.Warn("%s: %s", name, perr)
			}
			failed++
			continue
		}
		logging.Info("%s: ok", name)
	}
	logging.Info("persistence timing: lib=%s mat=%s gi=%s dir=%s csinfo=%s interp=%s csdata=%s total=%s",
		totals.Lib, totals.Mat, totals.GI, totals.Dir, totals.CSInfo, totals.Interp, totals.CSData, totals.Total)
	if failed > 0 {
		return 2
	}
	return 0
}

// runDryRun only exercises the lexer/tape driver, sequentially, never
// touching a Store.
func runDryRun(tapes []library.Tape) int {
	failed := 0
	for _, t := range tapes {
		name := tapeLabel(t)
		if err := dryRunOne(t); err != nil {
			logging.Error("%s: %s", name, err)
			failed++
			continue
		}
		logging.Info("%s: parsed ok", name)
	}
	if failed > 0 {
		return 2
	}
	return 0
}

func dryRunOne(t library.Tape) error {
	r, closer, err := library.Open(t)
	if err != nil {
		return err
	}
	defer closer.Close()

	_, err = tape.Parse(endf.NewLexer(r))
	return err
}

func tapeLabel(t library.Tape) string {
	if t.Archive != "" {
		return fmt.Sprintf("%s!%s", t.Archive, t.Name)
	}
	return fmt.Sprintf("%s/%s", t.Path, t.Name)
}
