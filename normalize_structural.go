// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import "strings"

// fixMissingColons inserts ':' between a key string and its value when the
// colon was dropped, per spec §4.15. A string is treated as a key
// candidate when the last significant character before its opening quote
// is '{' or ',', or — inside an object — when it follows a prior
// primitive value (closing bracket, digit, or keyword), and it is
// immediately (modulo whitespace) followed by the start of another value.
func fixMissingColons(text string, log *RepairLog) string {
	var out strings.Builder
	sc := &scanner{}
	var lastSig byte
	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		if !sc.InString() && c == '"' {
			prevSig := lastSig
			isObjectTop := sc.TopBracket() == '{'
			out.WriteByte(c)
			sc.Advance(c)
			i++
			for i < n {
				cc := text[i]
				wasIn := sc.InString()
				out.WriteByte(cc)
				sc.Advance(cc)
				i++
				if wasIn && cc == '"' {
					break
				}
			}
			lastSig = '"'
			keyLike := prevSig == '{' || prevSig == ','
			altKey := isObjectTop && (prevSig == '}' || prevSig == ']' || isDigitByte(prevSig) || prevSig == 'e' || prevSig == 'l')
			if keyLike || altKey {
				j := i
				for j < n && isJSONSpace(text[j]) {
					j++
				}
				if isValueStart(text, j) {
					out.WriteString(":")
					*log = append(*log, newRepair(MissingColon, text, i, "", ":"))
				}
			}
			continue
		}
		out.WriteByte(c)
		if !sc.InString() && !isJSONSpace(c) {
			lastSig = c
		}
		sc.Advance(c)
		i++
	}
	return out.String()
}

type quoteDecision int

const (
	quoteInternal quoteDecision = iota
	quoteClosing
)

// classifyQuote decides whether the '"' at text[idx] closes the string it
// is inside, by inspecting what follows it, per spec §4.16.
func classifyQuote(text string, idx int, objCtx, arrCtx bool) quoteDecision {
	n := len(text)
	j := idx + 1
	for j < n && isJSONSpace(text[j]) {
		j++
	}
	if j >= n {
		return quoteClosing
	}
	switch text[j] {
	case ']', '}', ':':
		return quoteClosing
	case ',':
		k := j + 1
		for k < n && isJSONSpace(text[k]) {
			k++
		}
		if k < n {
			if text[k] == '"' {
				k2 := k + 1
				for k2 < n && text[k2] != '"' {
					if text[k2] == '\\' {
						k2++
					}
					k2++
				}
				k3 := k2 + 1
				for k3 < n && isJSONSpace(text[k3]) {
					k3++
				}
				if k3 < n && text[k3] == ':' {
					return quoteClosing
				}
			} else if isDigitByte(text[k]) || text[k] == '-' || text[k] == '{' || text[k] == '[' ||
				hasPrefixWord(text[k:], "true") || hasPrefixWord(text[k:], "false") || hasPrefixWord(text[k:], "null") {
				return quoteClosing
			}
		}
		alpha := 0
		for m := idx + 1; m < n && text[m] != '"'; m++ {
			if isAlpha(text[m]) {
				alpha++
			}
		}
		if alpha <= 3 {
			return quoteClosing
		}
		return quoteInternal
	case '"':
		if j+1 < n && text[j+1] == '"' {
			return quoteInternal
		}
		k := j + 1
		for k < n && text[k] != '"' {
			if text[k] == '\\' {
				k++
			}
			k++
		}
		k++
		for k < n && isJSONSpace(text[k]) {
			k++
		}
		if k < n {
			switch text[k] {
			case ':', ',', '}', ']':
				return quoteClosing
			}
		}
		if arrCtx {
			return quoteClosing
		}
		return quoteInternal
	default:
		if isDigitByte(text[j]) || text[j] == '{' || text[j] == '[' || text[j] == '-' ||
			hasPrefixWord(text[j:], "true") || hasPrefixWord(text[j:], "false") || hasPrefixWord(text[j:], "null") {
			if objCtx || arrCtx {
				return quoteClosing
			}
		}
		return quoteInternal
	}
}

// fixUnescapedQuotes escapes '"' bytes found inside what was meant to be a
// single string literal, using [classifyQuote] to tell an internal quote
// from the real closing one, per spec §4.16. Deliberately conservative:
// it is a heuristic, not a round-trip-complete re-tokenizer.
func fixUnescapedQuotes(text string, log *RepairLog) string {
	var out strings.Builder
	var brackets []byte
	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		if c == '"' {
			out.WriteByte(c)
			i++
			objCtx := len(brackets) > 0 && brackets[len(brackets)-1] == '{'
			arrCtx := len(brackets) > 0 && brackets[len(brackets)-1] == '['
			for i < n {
				cc := text[i]
				if cc == '\\' && i+1 < n {
					out.WriteByte(cc)
					out.WriteByte(text[i+1])
					i += 2
					continue
				}
				if cc != '"' {
					out.WriteByte(cc)
					i++
					continue
				}
				if classifyQuote(text, i, objCtx, arrCtx) == quoteClosing {
					out.WriteByte('"')
					i++
					break
				}
				out.WriteString(`\"`)
				*log = append(*log, newRepair(UnescapedQuote, text, i, `"`, `\"`))
				i++
			}
			continue
		}
		if c == '{' || c == '[' {
			brackets = append(brackets, c)
		} else if c == '}' || c == ']' {
			if len(brackets) > 0 {
				brackets = brackets[:len(brackets)-1]
			}
		}
		out.WriteByte(c)
		i++
	}
	return out.String()
}

func isNumberByte(c byte) bool {
	return isDigitByte(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

// fixMissingCommas inserts ',' between two adjacent values where the
// comma was dropped, per spec §4.17. Token-based: each JSON value (string,
// number, object/array open, or keyword) is consumed as a unit, and a
// comma is inserted before it when the previous token was itself a
// complete value and we are nested inside at least one bracket.
func fixMissingCommas(text string, log *RepairLog) string {
	var out strings.Builder
	depth := 0
	justSawValue := false
	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		if isJSONSpace(c) {
			out.WriteByte(c)
			i++
			continue
		}
		if c == '"' {
			if justSawValue && depth > 0 {
				out.WriteString(",")
				*log = append(*log, newRepair(MissingComma, text, i, "", ","))
			}
			start := i
			i++
			for i < n {
				cc := text[i]
				if cc == '\\' && i+1 < n {
					i += 2
					continue
				}
				i++
				if cc == '"' {
					break
				}
			}
			out.WriteString(text[start:i])
			justSawValue = true
			continue
		}
		if c == '{' || c == '[' {
			if justSawValue && depth > 0 {
				out.WriteString(",")
				*log = append(*log, newRepair(MissingComma, text, i, "", ","))
			}
			depth++
			out.WriteByte(c)
			justSawValue = false
			i++
			continue
		}
		if c == '}' || c == ']' {
			if depth > 0 {
				depth--
			}
			out.WriteByte(c)
			justSawValue = true
			i++
			continue
		}
		if c == ':' || c == ',' {
			out.WriteByte(c)
			justSawValue = false
			i++
			continue
		}
		if c == '-' || isDigitByte(c) {
			if justSawValue && depth > 0 {
				out.WriteString(",")
				*log = append(*log, newRepair(MissingComma, text, i, "", ","))
			}
			start := i
			i++
			for i < n && isNumberByte(text[i]) {
				i++
			}
			out.WriteString(text[start:i])
			justSawValue = true
			continue
		}
		if kw := matchKeyword(text[i:]); kw != "" {
			if justSawValue && depth > 0 {
				out.WriteString(",")
				*log = append(*log, newRepair(MissingComma, text, i, "", ","))
			}
			out.WriteString(kw)
			i += len(kw)
			justSawValue = true
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String()
}

func matchKeyword(s string) string {
	for _, kw := range []string{"true", "false", "null"} {
		if hasPrefixWord(s, kw) {
			return kw
		}
	}
	return ""
}

// autoCloseBrackets appends the closing brackets needed to balance any
// objects/arrays left open at end of input, innermost first, per spec
// §4.18.
func autoCloseBrackets(text string, log *RepairLog) string {
	sc := &scanner{}
	for i := 0; i < len(text); i++ {
		sc.Advance(text[i])
	}
	if sc.Depth() == 0 {
		return text
	}
	var closers strings.Builder
	for k := len(sc.brackets) - 1; k >= 0; k-- {
		closer := byte('}')
		if sc.brackets[k] == '[' {
			closer = ']'
		}
		closers.WriteByte(closer)
		*log = append(*log, newRepair(MissingBracket, text, len(text), "", string(closer)))
	}
	return text + closers.String()
}

// stripTrailingAndDoubleCommas removes a comma that is immediately
// followed (modulo whitespace) by a closing bracket, and a comma that
// immediately follows another comma or an opening bracket, per spec
// §4.19. The two kinds are classified independently of each other so
// that removeTrailing and removeDouble can be disabled separately:
// disabling one must not suppress repair of the other, and a comma left
// in place because its own flag is off must not be mistaken for a
// still-present double comma by the next iteration.
func stripTrailingAndDoubleCommas(text string, log *RepairLog, removeTrailing, removeDouble bool) string {
	var out strings.Builder
	sc := &scanner{}
	var lastSig byte
	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		if !sc.InString() && c == ',' {
			j := i + 1
			for j < n && isJSONSpace(text[j]) {
				j++
			}
			isTrailing := j < n && (text[j] == ']' || text[j] == '}')
			isDouble := !isTrailing && (lastSig == ',' || lastSig == '{' || lastSig == '[')
			if isTrailing && removeTrailing {
				*log = append(*log, newRepair(TrailingComma, text, i, ",", ""))
				sc.Advance(c)
				i++
				continue
			}
			if isDouble && removeDouble {
				*log = append(*log, newRepair(DoubleComma, text, i, ",", ""))
				sc.Advance(c)
				i++
				continue
			}
		}
		out.WriteByte(c)
		if !sc.InString() && !isJSONSpace(c) {
			lastSig = c
		}
		sc.Advance(c)
		i++
	}
	return out.String()
}
