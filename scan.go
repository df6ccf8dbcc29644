// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

// scanner is the shared string-aware scan primitive: a 2-state DFA
// (outside a JSON string literal / inside one) plus a bracket stack for
// object-vs-array context, the rule from spec §4.2. It drives
// extractJSON, quoteUnquotedKeys, convertPythonLiterals,
// removeEllipsisMarkers, stripComments, convertNumberFormats,
// convertJavaScriptValues, fixMissingColons, autoCloseBrackets,
// stripTrailingAndDoubleCommas and substituteNonStandardLiterals. It is
// not used by convertSingleQuoteStrings, fixUnescapedBackslash,
// escapeLiteralNewlines, escapeControlChars, fixUnescapedQuotes or
// fixMissingCommas, each of which tracks string and escape state in its
// own loop.
type scanner struct {
	inString bool
	escape   bool
	brackets []byte
}

// Advance feeds one byte to the scanner, updating its string/escape state
// and bracket stack. Call InString/TopBracket/Depth *before* Advance to
// learn the state the byte c was seen in.
func (s *scanner) Advance(c byte) {
	if s.escape {
		s.escape = false
		return
	}
	if s.inString {
		switch c {
		case '\\':
			s.escape = true
		case '"':
			s.inString = false
		}
		return
	}
	switch c {
	case '"':
		s.inString = true
	case '{', '[':
		s.brackets = append(s.brackets, c)
	case '}':
		if n := len(s.brackets); n > 0 && s.brackets[n-1] == '{' {
			s.brackets = s.brackets[:n-1]
		}
	case ']':
		if n := len(s.brackets); n > 0 && s.brackets[n-1] == '[' {
			s.brackets = s.brackets[:n-1]
		}
	}
}

// InString reports whether the scanner is currently positioned inside a
// JSON string literal.
func (s *scanner) InString() bool { return s.inString }

// Depth reports the current bracket nesting depth.
func (s *scanner) Depth() int { return len(s.brackets) }

// TopBracket returns the innermost open bracket ('{' or '['), or 0 if the
// stack is empty.
func (s *scanner) TopBracket() byte {
	if len(s.brackets) == 0 {
		return 0
	}
	return s.brackets[len(s.brackets)-1]
}

func isJSONSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isAlpha(c) || isDigitByte(c) || c == '_' || c == '$'
}

func isHexDigit(c byte) bool {
	return isDigitByte(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }

func isBinDigit(c byte) bool { return c == '0' || c == '1' }

// isValueStart reports whether text[j:] begins a JSON value: a string,
// object, array, number, or the keywords true/false/null.
func isValueStart(text string, j int) bool {
	if j >= len(text) {
		return false
	}
	c := text[j]
	if c == '"' || c == '{' || c == '[' || c == '-' || isDigitByte(c) {
		return true
	}
	rest := text[j:]
	return hasPrefixWord(rest, "true") || hasPrefixWord(rest, "false") || hasPrefixWord(rest, "null")
}

// hasPrefixWord reports whether s starts with word and the following byte
// (if any) is not an identifier character, so "truely" does not match
// "true".
func hasPrefixWord(s, word string) bool {
	if len(s) < len(word) || s[:len(word)] != word {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	return !isIdentByte(s[len(word)])
}
