// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import (
	"encoding/json"
	"math"
	"strings"
)

// Sentinel string payloads substituted for non-standard numeric literals
// when ConvertJavaScriptValues is disabled, so encoding/json can still
// parse the document; resolveSentinels swaps them back for the actual
// float64 values afterward. The leading private-use code point U+E000
// keeps them from colliding with anything a real document would contain,
// and unlike a raw control byte it is legal inside a JSON string literal.
const (
	sentinelNaN    = "NaN"
	sentinelPosInf = "Infinity"
	sentinelNegInf = "-Infinity"
)

var sentinelTokens = []struct {
	tok      string
	sentinel string
}{
	{"+Infinity", sentinelPosInf},
	{"-Infinity", sentinelNegInf},
	{"Infinity", sentinelPosInf},
	{"NaN", sentinelNaN},
}

// substituteNonStandardLiterals quotes bare NaN/Infinity/-Infinity/
// +Infinity tokens found outside string literals as sentinel string
// values, so the strict parser sees valid JSON. Not logged as a repair:
// see spec note on the NaN/Infinity open question.
func substituteNonStandardLiterals(text string) string {
	var out strings.Builder
	sc := &scanner{}
	i := 0
	n := len(text)
	for i < n {
		if !sc.InString() {
			matched, sentinel := "", ""
			for _, t := range sentinelTokens {
				if strings.HasPrefix(text[i:], t.tok) {
					before := i == 0 || !isIdentByte(text[i-1])
					after := i+len(t.tok) >= n || !isIdentByte(text[i+len(t.tok)])
					if before && after {
						matched, sentinel = t.tok, t.sentinel
						break
					}
				}
			}
			if matched != "" {
				out.WriteString(`"` + sentinel + `"`)
				for k := 0; k < len(matched); k++ {
					sc.Advance(matched[k])
				}
				i += len(matched)
				continue
			}
		}
		out.WriteByte(text[i])
		sc.Advance(text[i])
		i++
	}
	return out.String()
}

// resolveSentinels walks a decoded value tree replacing sentinel strings
// with the float64 NaN/Inf values they stand in for.
func resolveSentinels(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		switch val {
		case sentinelNaN:
			return math.NaN()
		case sentinelPosInf:
			return math.Inf(1)
		case sentinelNegInf:
			return math.Inf(-1)
		}
		return val
	case []interface{}:
		for i := range val {
			val[i] = resolveSentinels(val[i])
		}
		return val
	case map[string]interface{}:
		for k := range val {
			val[k] = resolveSentinels(val[k])
		}
		return val
	default:
		return v
	}
}

// parseStrict hands normalized text to the standard library's JSON
// decoder. This is the one place in the package that deliberately does
// not reach for a third-party decoder: spec.md treats the strict parser
// as an external collaborator outside the pipeline's own algorithmic
// scope, and encoding/json's decode-into-interface{} behavior is exactly
// what callers of a relaxed-JSON loader expect (see DESIGN.md).
func parseStrict(text string, o Options) (interface{}, error) {
	if !o.ConvertJavaScriptValues {
		text = substituteNonStandardLiterals(text)
	}
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, &StrictParseError{Err: err}
	}
	if !o.ConvertJavaScriptValues {
		v = resolveSentinels(v)
	}
	return v, nil
}
