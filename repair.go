// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import (
	"fmt"
	"strings"
)

// RepairKind identifies the normalizer that produced a [Repair]. The set is
// closed: every emission path in this package sets one of these values.
type RepairKind uint8

const (
	TrailingComma RepairKind = iota + 1
	SingleLineComment
	MultiLineComment
	HashComment
	SmartQuote
	SingleQuoteString
	UnquotedKey
	PythonLiteral
	UnescapedNewline
	MissingBracket
	TruncationMarker
	MarkdownFenceRemoved
	JSONExtracted
	MissingColon
	MissingComma
	ControlCharacter
	UnescapedBackslash
	UnescapedQuote
	DoubleComma
	JavaScriptValue
	NumberFormat
)

var repairKindNames = [...]string{
	TrailingComma:        "trailing_comma",
	SingleLineComment:    "single_line_comment",
	MultiLineComment:     "multi_line_comment",
	HashComment:          "hash_comment",
	SmartQuote:           "smart_quote",
	SingleQuoteString:    "single_quote_string",
	UnquotedKey:          "unquoted_key",
	PythonLiteral:        "python_literal",
	UnescapedNewline:     "unescaped_newline",
	MissingBracket:       "missing_bracket",
	TruncationMarker:     "truncation_marker",
	MarkdownFenceRemoved: "markdown_fence_removed",
	JSONExtracted:        "json_extracted",
	MissingColon:         "missing_colon",
	MissingComma:         "missing_comma",
	ControlCharacter:     "control_character",
	UnescapedBackslash:   "unescaped_backslash",
	UnescapedQuote:       "unescaped_quote",
	DoubleComma:          "double_comma",
	JavaScriptValue:      "javascript_value",
	NumberFormat:         "number_format",
}

// String returns the tag from spec.md §4.1, e.g. "trailing_comma".
func (k RepairKind) String() string {
	if int(k) < len(repairKindNames) && repairKindNames[k] != "" {
		return repairKindNames[k]
	}
	return fmt.Sprintf("RepairKind(%d)", uint8(k))
}

// Repair is an immutable record of a single edit made to the input text
// while normalizing it. Position is a 0-indexed byte offset into the
// text the generating normalizer was reading (see the note on
// [RepairLog] about why that is not always the original input).
type Repair struct {
	Kind        RepairKind
	Position    int
	Line        int
	Column      int
	Original    string
	Replacement string
	Message     string
}

// RepairLog is an ordered, append-only sequence of repairs. Order reflects
// pipeline processing order, not source position; sort by Position
// yourself if you need source order.
type RepairLog []Repair

// lineColumn derives 1-indexed line/column from a 0-indexed byte offset
// into text, by counting newlines in the prefix.
func lineColumn(text string, position int) (line, column int) {
	if position < 0 {
		position = 0
	}
	if position > len(text) {
		position = len(text)
	}
	prefix := text[:position]
	line = 1 + strings.Count(prefix, "\n")
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		column = len(prefix) - idx
	} else {
		column = len(prefix) + 1
	}
	return line, column
}

// truncate returns s, or its first n runes followed by "..." if s is
// longer than that, for use in repair messages.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// newRepair builds a Repair, computing line/column from text and position
// and generating a kind-specific human-readable message.
func newRepair(kind RepairKind, text string, position int, original, replacement string) Repair {
	line, column := lineColumn(text, position)
	return Repair{
		Kind:        kind,
		Position:    position,
		Line:        line,
		Column:      column,
		Original:    original,
		Replacement: replacement,
		Message:     repairMessage(kind, original, replacement),
	}
}

func repairMessage(kind RepairKind, original, replacement string) string {
	switch kind {
	case TrailingComma:
		return "Removed trailing comma"
	case SingleLineComment:
		return fmt.Sprintf("Removed single-line comment %q", truncate(original, 30))
	case MultiLineComment:
		return fmt.Sprintf("Removed multi-line comment %q", truncate(original, 30))
	case HashComment:
		return fmt.Sprintf("Removed hash comment %q", truncate(original, 30))
	case SmartQuote:
		return fmt.Sprintf("Replaced smart quote %q with %q", original, replacement)
	case SingleQuoteString:
		return fmt.Sprintf("Converted single-quoted string %q to double quotes", truncate(original, 30))
	case UnquotedKey:
		return fmt.Sprintf("Added quotes around unquoted key %q", original)
	case PythonLiteral:
		return fmt.Sprintf("Converted Python literal %q to JSON %q", original, replacement)
	case UnescapedNewline:
		return "Escaped literal newline in string"
	case MissingBracket:
		return fmt.Sprintf("Added missing closing bracket %q", replacement)
	case TruncationMarker:
		return fmt.Sprintf("Removed truncation marker %q", original)
	case MarkdownFenceRemoved:
		return "Removed markdown code fence"
	case JSONExtracted:
		return "Extracted JSON from surrounding text"
	case MissingColon:
		return "Inserted missing colon between key and value"
	case MissingComma:
		return "Inserted missing comma between elements"
	case ControlCharacter:
		return fmt.Sprintf("Escaped control character %q in string", original)
	case UnescapedBackslash:
		return "Escaped unescaped backslash in string"
	case UnescapedQuote:
		return "Escaped unescaped internal quote in string"
	case DoubleComma:
		return "Removed redundant comma"
	case JavaScriptValue:
		return fmt.Sprintf("Converted JavaScript value %q to null", original)
	case NumberFormat:
		return fmt.Sprintf("Converted number %q to decimal %q", original, replacement)
	default:
		return fmt.Sprintf("Repaired: %s -> %s", original, replacement)
	}
}
