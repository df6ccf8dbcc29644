// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairKindString(t *testing.T) {
	assert.Equal(t, "trailing_comma", TrailingComma.String())
	assert.Equal(t, "single_line_comment", SingleLineComment.String())
	assert.Equal(t, "number_format", NumberFormat.String())
	assert.Contains(t, RepairKind(0).String(), "RepairKind")
}

func TestLineColumn(t *testing.T) {
	text := "line1\nline2\nline3"
	cases := []struct {
		pos        int
		line, col  int
	}{
		{0, 1, 1},
		{5, 1, 6},
		{6, 2, 1},
		{len(text), 3, 6},
	}
	for _, c := range cases {
		line, col := lineColumn(text, c.pos)
		assert.Equal(t, c.line, line, "pos %d line", c.pos)
		assert.Equal(t, c.col, col, "pos %d col", c.pos)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel...", truncate("hello", 3))
}

func TestNewRepairPopulatesMessage(t *testing.T) {
	r := newRepair(SmartQuote, `“x”`, 0, "“", `"`)
	assert.Equal(t, SmartQuote, r.Kind)
	assert.NotEmpty(t, r.Message)
	assert.Equal(t, 1, r.Line)
}
