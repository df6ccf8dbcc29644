// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonfix turns "almost JSON" — text corrupted by manual editing,
// LLM generation, lossy copy-paste, or truncated export — into standard
// JSON. It runs a fixed, ordered pipeline of text-level normalizers that
// track JSON string context as they go, recording every edit it makes as
// a [Repair], and then hands the result to a strict JSON parser.
package jsonfix

import (
	"fmt"
	"io"
)

// LoadsRelaxed repairs and parses text, returning the decoded value, the
// log of repairs the pipeline made, and an error if the pipeline or the
// final strict parse failed. With [WithStrict](true) the pipeline is
// skipped entirely and text goes straight to the strict parser.
func LoadsRelaxed(text string, opts ...Option) (interface{}, RepairLog, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, nil, err
	}

	if o.Strict {
		v, err := parseStrict(text, o)
		return v, nil, err
	}

	fixed, log, err := runPipeline(text, o)
	if o.Log != nil {
		*o.Log = append(*o.Log, log...)
	}
	if err != nil {
		return nil, log, err
	}

	if err := dispatchRepairs(log, o); err != nil {
		return nil, log, err
	}

	v, err := parseStrict(fixed, o)
	if err != nil {
		return nil, log, err
	}
	return v, log, nil
}

// LoadRelaxed reads all of r and behaves like [LoadsRelaxed].
func LoadRelaxed(r io.Reader, opts ...Option) (interface{}, RepairLog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("jsonfix: reading input: %w", err)
	}
	return LoadsRelaxed(string(data), opts...)
}

// CanParse reports whether text parses via [LoadsRelaxed] without error.
// It discards the decoded value and the repair log; use [LoadsRelaxed]
// directly when you need either.
func CanParse(text string, opts ...Option) bool {
	_, _, err := LoadsRelaxed(text, opts...)
	return err == nil
}

// GetRepairs runs the normalization pipeline over text and returns the
// repairs it would make, without invoking the strict parser. Useful for
// previewing what [LoadsRelaxed] will do, e.g. for a --dry-run CLI flag.
func GetRepairs(text string, opts ...Option) (RepairLog, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	if o.Strict {
		return nil, nil
	}
	_, log, err := runPipeline(text, o)
	return log, err
}
