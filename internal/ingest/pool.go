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

// Package ingest drives the tape-level concurrency model of spec.md §5:
// the core is single-threaded per tape, but distinct tapes may be
// processed in parallel. Only the relational connection (Store) is
// owned by one worker; the id-sequence allocator and the Files registry
// are process-wide resources shared by every worker, guarded internally
// by their own mutex, exactly as §5 describes the id pool. The teacher
// never parallelizes its one-shot build (it has nothing to fan out
// over), so this package follows the plain sync.WaitGroup/channel shape
// any bounded worker pool in the standard library tool chain uses
// rather than a teacher file; see DESIGN.md.
package ingest

import (
	"context"
	"sync"

	"github.com/kr3z/ENDF/internal/endf"
	"github.com/kr3z/ENDF/internal/library"
	"github.com/kr3z/ENDF/internal/persist"
	"github.com/kr3z/ENDF/internal/tape"
)

// StoreFactory opens one Store (database connection) per worker
// goroutine.
type StoreFactory func() (persist.Store, error)

// Result is one tape's outcome: either a structural parse failure (Err),
// or a (possibly empty) collector of per-material persistence failures
// plus the wall time spent in each persistence component.
type Result struct {
	Tape    library.Tape
	Err     error
	Persist *endf.ErrorCollector
	Timings persist.Timings
}

// Run processes tapes across workers goroutines, stopping early when ctx
// is canceled (spec.md §5 "cancellation is cooperative"; here a worker
// checks ctx before starting its next tape, the coarsest record boundary
// visible at this layer). ids and registry are shared process-wide
// across every worker, matching §5's "process-wide integer pool guarded
// by a mutex"; newStore opens a distinct connection per worker.
// workers <= 1 still runs through the same pool machinery with a
// single goroutine.
func Run(ctx context.Context, tapes []library.Tape, workers int, ids persist.IDAllocator, registry persist.FileRegistry, newStore StoreFactory) []Result {
	if workers < 1 {
		workers = 1
	}

	type indexed struct {
		idx int
		t   library.Tape
	}

	jobs := make(chan indexed)
	results := make([]Result, len(tapes))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store, storeErr := newStore()
			for job := range jobs {
				if storeErr != nil {
					results[job.idx] = Result{Tape: job.t, Err: storeErr}
					continue
				}
				if ctx.Err() != nil {
					results[job.idx] = Result{Tape: job.t, Err: ctx.Err()}
					continue
				}
				results[job.idx] = processTape(store, ids, registry, job.t)
			}
		}()
	}

	// Every tape is always sent: a worker that picks one up after ctx was
	// canceled still owns the slot and records the cancellation, so no
	// result is ever left as an unpopulated zero value.
	go func() {
		defer close(jobs)
		for i, t := range tapes {
			jobs <- indexed{i, t}
		}
	}()

	wg.Wait()
	return results
}

// processTape parses and persists a single tape end to end, single
// threaded, matching spec.md §5's per-tape sequencing.
func processTape(store persist.Store, ids persist.IDAllocator, registry persist.FileRegistry, t library.Tape) Result {
	r, closer, err := library.Open(t)
	if err != nil {
		return Result{Tape: t, Err: err}
	}
	defer closer.Close()

	fileKey, found, err := registry.Lookup(t.Name, t.Path, t.Archive)
	if err != nil {
		return Result{Tape: t, Err: err}
	}
	if !found {
		fileKey, err = registry.Register(t.Name, t.Path, t.Archive)
		if err != nil {
			return Result{Tape: t, Err: err}
		}
	}

	lexer := endf.NewLexer(r)
	tp, err := tape.Parse(lexer)
	if err != nil {
		_ = registry.SetComment(fileKey, "Parse: "+err.Error())
		return Result{Tape: t, Err: err}
	}

	ec, timings := persist.PersistTape(store, ids, registry, fileKey, tp)
	return Result{Tape: t, Persist: ec, Timings: timings}
}
