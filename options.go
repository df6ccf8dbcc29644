// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import "log/slog"

// OnRepairMode controls what the pipeline driver does once normalization
// has produced one or more repairs.
type OnRepairMode uint8

const (
	// OnRepairIgnore runs the pipeline silently (the default).
	OnRepairIgnore OnRepairMode = iota
	// OnRepairWarn logs one diagnostic per repair after the pipeline
	// completes, through the configured [*slog.Logger].
	OnRepairWarn
	// OnRepairError fails with a [*RepairGateError] carrying the first
	// repair's coordinates, before the strict parse runs.
	OnRepairError
)

// Options configures a single relaxed parse. The zero value is not valid;
// construct one with [DefaultOptions] or [NewOptions].
type Options struct {
	// Strict, when true, skips the pipeline entirely and hands the input
	// straight to the strict JSON parser.
	Strict bool

	OnRepair OnRepairMode
	Logger   *slog.Logger
	Log      *RepairLog

	StripBOM                 bool
	RemoveMarkdownFences     bool
	ExtractJSON              bool
	NormalizeSmartQuotes     bool
	ConvertSingleQuoteString bool
	QuoteUnquotedKeys        bool
	ConvertPythonLiterals    bool
	FixUnescapedBackslash    bool
	EscapeNewlines           bool
	EscapeControlChars       bool
	RemoveEllipsis           bool
	StripComments            bool
	ConvertNumberFormats     bool
	ConvertJavaScriptValues  bool
	FixMissingColon          bool
	FixUnescapedQuotes       bool
	FixMissingComma          bool
	AutoCloseBrackets        bool
	RemoveTrailingCommas     bool
	RemoveDoubleCommas       bool
}

// DefaultOptions returns an Options value with every transform enabled and
// OnRepair set to [OnRepairIgnore].
func DefaultOptions() Options {
	return Options{
		StripBOM:                 true,
		RemoveMarkdownFences:     true,
		ExtractJSON:              true,
		NormalizeSmartQuotes:     true,
		ConvertSingleQuoteString: true,
		QuoteUnquotedKeys:        true,
		ConvertPythonLiterals:    true,
		FixUnescapedBackslash:    true,
		EscapeNewlines:           true,
		EscapeControlChars:       true,
		RemoveEllipsis:           true,
		StripComments:            true,
		ConvertNumberFormats:     true,
		ConvertJavaScriptValues:  true,
		FixMissingColon:          true,
		FixUnescapedQuotes:       true,
		FixMissingComma:          true,
		AutoCloseBrackets:        true,
		RemoveTrailingCommas:     true,
		RemoveDoubleCommas:       true,
	}
}

// Option mutates an [Options] value. Pass zero or more to [NewOptions],
// [LoadsRelaxed], or [LoadRelaxed].
type Option func(*Options)

// WithStrict enables or disables strict mode (bypassing the pipeline).
func WithStrict(strict bool) Option { return func(o *Options) { o.Strict = strict } }

// WithOnRepair sets the repair-dispatch mode.
func WithOnRepair(mode OnRepairMode) Option { return func(o *Options) { o.OnRepair = mode } }

// WithLogger sets the logger used for [OnRepairWarn] diagnostics. When
// unset, the pipeline uses [slog.Default].
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithRepairLog supplies a caller-owned log for the pipeline to append to.
// Without this option the pipeline allocates its own and returns it.
func WithRepairLog(log *RepairLog) Option { return func(o *Options) { o.Log = log } }

func WithBOMStrip(v bool) Option             { return func(o *Options) { o.StripBOM = v } }
func WithMarkdownFences(v bool) Option       { return func(o *Options) { o.RemoveMarkdownFences = v } }
func WithJSONExtraction(v bool) Option       { return func(o *Options) { o.ExtractJSON = v } }
func WithSmartQuotes(v bool) Option          { return func(o *Options) { o.NormalizeSmartQuotes = v } }
func WithSingleQuoteStrings(v bool) Option   { return func(o *Options) { o.ConvertSingleQuoteString = v } }
func WithUnquotedKeys(v bool) Option         { return func(o *Options) { o.QuoteUnquotedKeys = v } }
func WithPythonLiterals(v bool) Option       { return func(o *Options) { o.ConvertPythonLiterals = v } }
func WithUnescapedBackslash(v bool) Option   { return func(o *Options) { o.FixUnescapedBackslash = v } }
func WithLiteralNewlines(v bool) Option      { return func(o *Options) { o.EscapeNewlines = v } }
func WithControlCharacters(v bool) Option    { return func(o *Options) { o.EscapeControlChars = v } }
func WithEllipsisMarkers(v bool) Option      { return func(o *Options) { o.RemoveEllipsis = v } }
func WithComments(v bool) Option             { return func(o *Options) { o.StripComments = v } }
func WithNumberFormats(v bool) Option        { return func(o *Options) { o.ConvertNumberFormats = v } }
func WithJavaScriptValues(v bool) Option     { return func(o *Options) { o.ConvertJavaScriptValues = v } }
func WithMissingColon(v bool) Option         { return func(o *Options) { o.FixMissingColon = v } }
func WithUnescapedQuotes(v bool) Option      { return func(o *Options) { o.FixUnescapedQuotes = v } }
func WithMissingComma(v bool) Option         { return func(o *Options) { o.FixMissingComma = v } }
func WithAutoCloseBrackets(v bool) Option    { return func(o *Options) { o.AutoCloseBrackets = v } }
func WithTrailingCommas(v bool) Option       { return func(o *Options) { o.RemoveTrailingCommas = v } }
func WithDoubleCommas(v bool) Option         { return func(o *Options) { o.RemoveDoubleCommas = v } }

// NewOptions builds an Options from [DefaultOptions] plus the given
// overrides, validating the result.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.OnRepair != OnRepairIgnore && o.OnRepair != OnRepairWarn && o.OnRepair != OnRepairError {
		return o, &InvalidOptionError{Message: "on_repair must be ignore, warn, or error"}
	}
	return o, nil
}
