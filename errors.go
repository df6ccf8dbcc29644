// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import "fmt"

// Sentinel errors for the taxonomy in the jsonfix design notes. Use
// [errors.Is] against these to classify a failure without inspecting the
// concrete type.
var (
	ErrPipeline      = fmt.Errorf("jsonfix: pipeline error")
	ErrRepairGate    = fmt.Errorf("jsonfix: repair gate")
	ErrStrictParse   = fmt.Errorf("jsonfix: strict parse")
	ErrInvalidOption = fmt.Errorf("jsonfix: invalid option")
)

// PipelineError is returned when a normalizer encounters input it cannot
// safely rewrite. The only current producer is the comment stripper, on an
// unclosed block comment.
type PipelineError struct {
	Position int
	Message  string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("jsonfix: %s at position %d", e.Message, e.Position)
}

func (e *PipelineError) Unwrap() error { return ErrPipeline }

// RepairGateError is returned when [WithOnRepair] is set to "error" and the
// pipeline performed at least one repair. It carries the coordinates and
// message of the first repair in the log.
type RepairGateError struct {
	Repair Repair
}

func (e *RepairGateError) Error() string {
	return fmt.Sprintf("jsonfix: repair needed at line %d, column %d: %s",
		e.Repair.Line, e.Repair.Column, e.Repair.Message)
}

func (e *RepairGateError) Unwrap() error { return ErrRepairGate }

// StrictParseError wraps a failure from the strict JSON parser that ran
// after the normalization pipeline completed. The wrapped error is
// whatever [encoding/json] produced.
type StrictParseError struct {
	Err error
}

func (e *StrictParseError) Error() string {
	return fmt.Sprintf("jsonfix: strict parse failed: %s", e.Err)
}

func (e *StrictParseError) Unwrap() error { return e.Err }

func (e *StrictParseError) Is(target error) bool { return target == ErrStrictParse }

// InvalidOptionError is returned by [NewOptions] when an option value is
// outside its allowed range, such as an unrecognized [OnRepairMode].
type InvalidOptionError struct {
	Message string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("jsonfix: invalid option: %s", e.Message)
}

func (e *InvalidOptionError) Unwrap() error { return ErrInvalidOption }
