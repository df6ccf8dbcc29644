// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripBOM(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripBOM("\uFEFF{\"a\":1}"))
	assert.Equal(t, `{"a":1}`, stripBOM(`{"a":1}`))
}

func TestStripMarkdownFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"not a fence", `{"a":1}`, `{"a":1}`},
		{"unrecognized tag", "```python\nx = 1\n```", "```python\nx = 1\n```"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var log RepairLog
			got := stripMarkdownFence(c.in, &log)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	in := "Sure, here you go:\n```\n{\"a\":1}\n```\nLet me know if that helps."
	var log RepairLog
	got := extractJSON(in, &log)
	assert.Equal(t, `{"a":1}`, got, "fence markers inside the surrounding prose are discarded with it")

	in2 := `Here is the JSON you asked for: {"a": 1, "b": [1,2,3]} Hope that helps!`
	log = nil
	got2 := extractJSON(in2, &log)
	assert.Equal(t, `{"a": 1, "b": [1,2,3]}`, got2)
	require.Len(t, log, 1)
	assert.Equal(t, JSONExtracted, log[0].Kind)
}

func TestExtractJSONLeavesTrailingCommentForCommentStripper(t *testing.T) {
	in := `{"a": 1} // note`
	var log RepairLog
	got := extractJSON(in, &log)
	assert.Equal(t, in, got, "trailing comment must stay in the returned region")
	assert.Empty(t, log, "a bare trailing comment must not be logged as json_extracted")

	in2 := "prefix text {\"a\": 1} # trailing hash comment"
	log = nil
	got2 := extractJSON(in2, &log)
	assert.Equal(t, `{"a": 1} # trailing hash comment`, got2)
	require.Len(t, log, 1, "prose before the value is still logged as json_extracted")
	assert.Equal(t, JSONExtracted, log[0].Kind)
}

func TestNormalizeSmartQuotes(t *testing.T) {
	var log RepairLog
	got := normalizeSmartQuotes("“hello” and ‘world’", &log)
	assert.Equal(t, `"hello" and 'world'`, got)
	assert.Len(t, log, 4)
}

func TestConvertSingleQuoteStrings(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{'a': 'b'}`, `{"a": "b"}`},
		{`{'a': 'it\'s'}`, `{"a": "it's"}`},
		{`{'a': 'she said "hi"'}`, `{"a": "she said \"hi\""}`},
		{`{"a": "don't touch me"}`, `{"a": "don't touch me"}`},
	}
	for _, c := range cases {
		var log RepairLog
		got := convertSingleQuoteStrings(c.in, &log)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestQuoteUnquotedKeys(t *testing.T) {
	var log RepairLog
	got := quoteUnquotedKeys(`{foo: 1, bar: 2}`, &log)
	assert.Equal(t, `{"foo": 1, "bar": 2}`, got)
	assert.Len(t, log, 2)
}

func TestQuoteUnquotedKeysLeavesStringsAlone(t *testing.T) {
	var log RepairLog
	got := quoteUnquotedKeys(`{"foo": "bar: baz"}`, &log)
	assert.Equal(t, `{"foo": "bar: baz"}`, got)
	assert.Empty(t, log)
}

func TestConvertPythonLiterals(t *testing.T) {
	var log RepairLog
	got := convertPythonLiterals(`{"a": True, "b": False, "c": None}`, &log)
	assert.Equal(t, `{"a": true, "b": false, "c": null}`, got)
	assert.Len(t, log, 3)
}

func TestConvertPythonLiteralsInsideStringUntouched(t *testing.T) {
	var log RepairLog
	got := convertPythonLiterals(`{"a": "None of this matters"}`, &log)
	assert.Equal(t, `{"a": "None of this matters"}`, got)
	assert.Empty(t, log)
}

func TestFixUnescapedBackslash(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"C:\Users\name"`, `"C:\\Users\\name"`},
		{`"line1\nline2"`, `"line1\nline2"`},
		{`"bad \x escape"`, `"bad \\x escape"`},
		{`"\u00e9"`, `"\u00e9"`},
	}
	for _, c := range cases {
		var log RepairLog
		got := fixUnescapedBackslash(c.in, &log)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestEscapeLiteralNewlines(t *testing.T) {
	var log RepairLog
	got := escapeLiteralNewlines("\"line1\nline2\"", &log)
	assert.Equal(t, `"line1\nline2"`, got)
	assert.Len(t, log, 1)
}

func TestEscapeControlChars(t *testing.T) {
	var log RepairLog
	got := escapeControlChars("\"a\tb\"", &log)
	assert.Equal(t, `"a\tb"`, got)
	assert.Len(t, log, 1)
}

func TestRemoveEllipsisMarkers(t *testing.T) {
	var log RepairLog
	got := removeEllipsisMarkers(`[1, 2, ...]`, &log)
	assert.Equal(t, `[1, 2]`, got)
	assert.Len(t, log, 1)
}

func TestStripComments(t *testing.T) {
	cases := []struct{ in, want string }{
		{"{\"a\": 1 // comment\n}", "{\"a\": 1 \n}"},
		{"{\"a\": 1 # comment\n}", "{\"a\": 1 \n}"},
		{"{/* c */\"a\": 1}", `{"a": 1}`},
		{`{"url": "http://example.com"}`, `{"url": "http://example.com"}`},
	}
	for _, c := range cases {
		var log RepairLog
		got, err := stripComments(c.in, &log)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestStripCommentsUnclosedBlock(t *testing.T) {
	var log RepairLog
	_, err := stripComments(`{"a": 1 /* oops`, &log)
	require.Error(t, err)
	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
}

func TestConvertNumberFormats(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a": 0xFF}`, `{"a": 255}`},
		{`{"a": 0o17}`, `{"a": 15}`},
		{"{\"a\": 0b101}", `{"a": 5}`},
		{`{"a": -0x10}`, `{"a": -16}`},
		{`{"a": "0xFF"}`, `{"a": "0xFF"}`},
	}
	for _, c := range cases {
		var log RepairLog
		got := convertNumberFormats(c.in, &log)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestConvertJavaScriptValues(t *testing.T) {
	var log RepairLog
	got := convertJavaScriptValues(`{"a": NaN, "b": Infinity, "c": -Infinity, "d": undefined}`, &log)
	assert.Equal(t, `{"a": null, "b": null, "c": null, "d": null}`, got)
	assert.Len(t, log, 4)
}
