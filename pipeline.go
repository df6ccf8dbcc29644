// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import "log/slog"

// runPipeline runs the fixed, ordered sequence of normalizers over text
// and returns the normalized JSON text plus whatever repairs they logged.
// The order is load-bearing: later stages assume earlier ones already
// ran (missing-comma insertion, for instance, assumes quote ambiguity was
// already resolved by the stage before it).
func runPipeline(text string, o Options) (string, RepairLog, error) {
	var log RepairLog

	if o.StripBOM {
		text = stripBOM(text)
	}
	if o.RemoveMarkdownFences {
		text = stripMarkdownFence(text, &log)
	}
	if o.ExtractJSON {
		text = extractJSON(text, &log)
	}
	if o.NormalizeSmartQuotes {
		text = normalizeSmartQuotes(text, &log)
	}
	if o.ConvertSingleQuoteString {
		text = convertSingleQuoteStrings(text, &log)
	}
	if o.QuoteUnquotedKeys {
		text = quoteUnquotedKeys(text, &log)
	}
	if o.ConvertPythonLiterals {
		text = convertPythonLiterals(text, &log)
	}
	if o.FixUnescapedBackslash {
		text = fixUnescapedBackslash(text, &log)
	}
	if o.EscapeNewlines {
		text = escapeLiteralNewlines(text, &log)
	}
	if o.EscapeControlChars {
		text = escapeControlChars(text, &log)
	}
	if o.RemoveEllipsis {
		text = removeEllipsisMarkers(text, &log)
	}
	if o.StripComments {
		var err error
		text, err = stripComments(text, &log)
		if err != nil {
			return text, log, err
		}
	}
	if o.ConvertNumberFormats {
		text = convertNumberFormats(text, &log)
	}
	if o.ConvertJavaScriptValues {
		text = convertJavaScriptValues(text, &log)
	}
	if o.FixMissingColon {
		text = fixMissingColons(text, &log)
	}
	if o.FixUnescapedQuotes {
		text = fixUnescapedQuotes(text, &log)
	}
	if o.FixMissingComma {
		text = fixMissingCommas(text, &log)
	}
	if o.AutoCloseBrackets {
		text = autoCloseBrackets(text, &log)
	}
	if o.RemoveTrailingCommas || o.RemoveDoubleCommas {
		text = stripTrailingAndDoubleCommas(text, &log, o.RemoveTrailingCommas, o.RemoveDoubleCommas)
	}

	return text, log, nil
}

// dispatchRepairs applies the configured [OnRepairMode] to a completed
// repair log, returning a non-nil error only for [OnRepairError].
func dispatchRepairs(log RepairLog, o Options) error {
	if len(log) == 0 {
		return nil
	}
	switch o.OnRepair {
	case OnRepairIgnore:
		return nil
	case OnRepairWarn:
		logger := o.Logger
		if logger == nil {
			logger = slog.Default()
		}
		for _, r := range log {
			logger.Warn("jsonfix: repair applied",
				"kind", r.Kind.String(),
				"line", r.Line,
				"column", r.Column,
				"message", r.Message,
			)
		}
		return nil
	case OnRepairError:
		return &RepairGateError{Repair: log[0]}
	default:
		return &InvalidOptionError{Message: "on_repair must be ignore, warn, or error"}
	}
}
