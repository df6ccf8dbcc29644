// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonfix

import "testing"

func TestScannerStringTracking(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []bool // InString() sampled before advancing each byte
	}{
		{name: "empty", in: "", want: nil},
		{name: "plain", in: `ab`, want: []bool{false, false}},
		{name: "simple string", in: `"a"`, want: []bool{false, true, true}},
		{name: "escaped quote stays inside", in: `"a\"b"`, want: []bool{false, true, true, true, true, true}},
		{name: "backslash then quote closes", in: `"a\\"x`, want: []bool{false, true, true, true, true, false}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc := &scanner{}
			var got []bool
			for i := 0; i < len(c.in); i++ {
				got = append(got, sc.InString())
				sc.Advance(c.in[i])
			}
			if len(got) != len(c.want) {
				t.Fatalf("length mismatch: got %v want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("byte %d (%q): got InString()=%v want %v", i, c.in[i], got[i], c.want[i])
				}
			}
		})
	}
}

func TestScannerBracketStack(t *testing.T) {
	sc := &scanner{}
	for _, c := range []byte(`{"a":[1,2,{"b":3}]}`) {
		sc.Advance(c)
	}
	if sc.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0 after balanced input", sc.Depth())
	}

	sc = &scanner{}
	for _, c := range []byte(`{"a":[1,2`) {
		sc.Advance(c)
	}
	if sc.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2 for unbalanced input", sc.Depth())
	}
	if sc.TopBracket() != '[' {
		t.Fatalf("TopBracket() = %q, want '['", sc.TopBracket())
	}
}

func TestIsValueStart(t *testing.T) {
	cases := map[string]bool{
		`"x"`: true, `{}`: true, `[]`: true, `1`: true, `-1`: true,
		`true`: true, `false`: true, `null`: true,
		`truely`: false, `}`: false, `,`: false, ``: false,
	}
	for in, want := range cases {
		if got := isValueStart(in, 0); got != want {
			t.Errorf("isValueStart(%q) = %v, want %v", in, got, want)
		}
	}
}
