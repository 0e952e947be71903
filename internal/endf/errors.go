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
	"errors"
	"fmt"
)

// Kind classifies the errors the ENDF core can raise, per the taxonomy of
// failure modes the tape lexer, field decoder and section parser can hit,
// plus KindDb, which package persist uses for persistence-layer failures.
type Kind int

const (
	// KindIO marks a failure to open or read the input stream.
	KindIO Kind = iota
	// KindBadFraming marks missing/duplicate terminators, out-of-section
	// MAT/MF/MT, or data found after the final terminator.
	KindBadFraming
	// KindBadFloat marks a float field that does not parse under the ENDF
	// float dialect.
	KindBadFloat
	// KindBadSchema marks an enumerant value outside the set a section
	// schema understands (e.g. LNU not in {1,2}).
	KindBadSchema
	// KindNotImplemented marks an (MF, MT) pair outside the supported
	// schema set. Callers at the section boundary convert this into a
	// skip rather than propagating it as a failure.
	KindNotImplemented
	// KindNaNInData marks a persisted float field (X or Y of a cross
	// section) that decoded to NaN.
	KindNaNInData
	// KindDb marks a failure raised by the Store/IDAllocator/FileRegistry
	// interfaces in package persist.
	KindDb
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindBadFraming:
		return "BadFraming"
	case KindBadFloat:
		return "BadFloat"
	case KindBadSchema:
		return "BadSchema"
	case KindNotImplemented:
		return "NotImplemented"
	case KindNaNInData:
		return "NaNInData"
	case KindDb:
		return "Db"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised by the lexer, field decoder, and
// section parser. Wrap it with fmt.Errorf("...: %w", err) when adding
// context; errors.As still finds the *Error underneath.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, KindBadFraming-tagged sentinel) style checks work
// by comparing Kind; callers typically use errors.As to get at the Kind
// field directly instead, but this keeps errors.Is(err, &Error{Kind: K})
// usable too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewError builds an *Error of the given Kind. Exported so sibling packages
// (section, tape, persist) that build on top of the core can raise errors
// from the same taxonomy instead of inventing their own.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return newError(kind, format, args...)
}

// WrapError is like NewError but records a causing error, reachable via
// errors.Unwrap/errors.Is/errors.As.
func WrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return wrapError(kind, cause, format, args...)
}

// ErrorCollector aggregates errors from a batch of independent operations
// (e.g. persisting every material on a tape) for collective reporting,
// instead of aborting the whole run at the first failure.
type ErrorCollector struct {
	Errors []error
}

// Add adds an error to the collector; a nil err is a no-op, so callers can
// write ec.Add(operationThatMightFail()) unconditionally.
func (c *ErrorCollector) Add(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}

// Addf adds an error built from a format string, the way fmt.Errorf does.
func (c *ErrorCollector) Addf(format string, args ...interface{}) {
	if len(args) > 0 {
		c.Errors = append(c.Errors, fmt.Errorf(format, args...))
	} else {
		c.Errors = append(c.Errors, errors.New(format))
	}
}
