// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sdlite_test

import (
	"bytes"
	"testing"

	"github.com/creachadair/sdlite"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []sdlite.Token
	}{
		// Empty inputs
		{"", []sdlite.Token{sdlite.EOF}},
		{"  \t ", []sdlite.Token{sdlite.EOF}},
		{"\n", []sdlite.Token{sdlite.EOL, sdlite.EOF}},
		{"\r\n\n\r", []sdlite.Token{sdlite.EOL, sdlite.EOL, sdlite.EOL, sdlite.EOF}},

		// Constants
		{"true false on off null", []sdlite.Token{
			sdlite.Boolean, sdlite.Boolean, sdlite.Boolean, sdlite.Boolean,
			sdlite.Null, sdlite.EOF,
		}},

		// Keywords followed by identifier characters are identifiers.
		{"truex null_ on.off", []sdlite.Token{
			sdlite.Ident, sdlite.Ident, sdlite.Ident, sdlite.EOF,
		}},

		// Identifiers
		{"foo foo:bar _x a-b.c$d über", []sdlite.Token{
			sdlite.Ident, sdlite.Ident, sdlite.Namespace, sdlite.Ident,
			sdlite.Ident, sdlite.Ident, sdlite.Ident, sdlite.EOF,
		}},

		// Punctuation
		{"{ } ; = : \\", []sdlite.Token{
			sdlite.BlockOpen, sdlite.BlockClose, sdlite.Semicolon,
			sdlite.Assign, sdlite.Namespace, sdlite.Backslash, sdlite.EOF,
		}},

		// Strings
		{`"" "a b c" "a\"b\\c"`, []sdlite.Token{
			sdlite.Text, sdlite.Text, sdlite.Text, sdlite.EOF,
		}},
		{"\"a\\\n   b\"", []sdlite.Token{sdlite.Text, sdlite.EOF}},
		{"`raw\nstring` x", []sdlite.Token{sdlite.Text, sdlite.Ident, sdlite.EOF}},

		// Binary
		{"[] [aGVsbG8=] [aGVs bG8=\n\tdGhlcmU=]", []sdlite.Token{
			sdlite.Binary, sdlite.Binary, sdlite.Binary, sdlite.EOF,
		}},

		// Comments
		{"// a\n# b\n-- c\n/* d\ne */ x", []sdlite.Token{
			sdlite.Comment, sdlite.EOL, sdlite.Comment, sdlite.EOL,
			sdlite.Comment, sdlite.EOL, sdlite.Comment, sdlite.Ident, sdlite.EOF,
		}},

		// Numbers
		{"12 -5 42L 7l 2D 3d 4f 2.5 2.5f 2.5d 2.0bd", []sdlite.Token{
			sdlite.Number, sdlite.Number, sdlite.Number, sdlite.Number,
			sdlite.Number, sdlite.Number, sdlite.Number, sdlite.Number,
			sdlite.Number, sdlite.Number, sdlite.Number, sdlite.EOF,
		}},

		// Durations
		{"12:14:34 2d:12:14:34 -1:02:03.5 0:00:00.1234567", []sdlite.Token{
			sdlite.Duration, sdlite.Duration, sdlite.Duration, sdlite.Duration, sdlite.EOF,
		}},

		// Dates and date-times
		{"2015/12/06", []sdlite.Token{sdlite.Date, sdlite.EOF}},
		{"2015/12/06 foo", []sdlite.Token{sdlite.Date, sdlite.Ident, sdlite.EOF}},
		{"2015/12/06 42", []sdlite.Token{sdlite.Date, sdlite.Number, sdlite.EOF}},
		{"2015/12/06 12:00", []sdlite.Token{sdlite.DateTime, sdlite.EOF}},
		{"2015/12/06 12:00:00.123", []sdlite.Token{sdlite.DateTime, sdlite.EOF}},
		{"2015/12/06 12:00:00-UTC", []sdlite.Token{sdlite.DateTime, sdlite.EOF}},
		{"2015/12/06 12:00:00-GMT-02:30", []sdlite.Token{sdlite.DateTime, sdlite.EOF}},
		{"2015/12/06 12:00:00-PST", []sdlite.Token{sdlite.DateTime, sdlite.EOF}},

		// Malformed constructs
		{"&", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{`"abc`, []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{`"a\qb"`, []sdlite.Token{sdlite.Invalid, sdlite.Ident, sdlite.Invalid, sdlite.EOF}},
		{"\"a\nb\"", []sdlite.Token{sdlite.Invalid, sdlite.EOL, sdlite.Ident, sdlite.Invalid, sdlite.EOF}},
		{"`abc", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"/* x", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"/x", []sdlite.Token{sdlite.Invalid, sdlite.Ident, sdlite.EOF}},
		{"[abc]", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"[aGVsbG8=", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"1.5x", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"1.", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"12:14", []sdlite.Token{sdlite.Invalid, sdlite.EOF}},
		{"2015/12/06 12:00:00-foo", []sdlite.Token{sdlite.Invalid, sdlite.Ident, sdlite.EOF}},
	}

	for _, test := range tests {
		var got []sdlite.Token
		s := sdlite.NewScanner([]byte(test.input), "test")
		for s.Next() {
			got = append(got, s.Token())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

// Concatenating each token's whitespace prefix and text must reconstruct
// the input exactly.
func TestScannerLossless(t *testing.T) {
	const input = "foo \"bar\" 12 2.5f {\n\ttag ns:a=[aGVsbG8=] // trailing\n\t`x`\n}\n"

	var buf bytes.Buffer
	s := sdlite.NewScanner([]byte(input), "test")
	for s.Next() {
		buf.Write(s.Prefix())
		buf.Write(s.Text())
	}
	if got := buf.String(); got != input {
		t.Errorf("Reassembled input: got %#q, want %#q", got, input)
	}
}

func TestScannerText(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"foo 12", []string{"foo", "12", ""}},
		{"\"a b\" `c`", []string{`"a b"`, "`c`", ""}},
		{"a\r\nb", []string{"a", "\r\n", "b", ""}},
		{"/* x\ny */ z", []string{"/* x\ny */", "z", ""}},
	}
	for _, test := range tests {
		var got []string
		s := sdlite.NewScanner([]byte(test.input), "test")
		for s.Next() {
			got = append(got, string(s.Text()))
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nText: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerLocation(t *testing.T) {
	const input = "foo bar\n  baz\n/* two\nlines */ quux"

	want := []sdlite.Location{
		{File: "test", Line: 0, Column: 0, Offset: 0},  // foo
		{File: "test", Line: 0, Column: 4, Offset: 4},  // bar
		{File: "test", Line: 0, Column: 7, Offset: 7},  // EOL
		{File: "test", Line: 1, Column: 2, Offset: 10}, // baz
		{File: "test", Line: 1, Column: 5, Offset: 13}, // EOL
		{File: "test", Line: 2, Column: 0, Offset: 14}, // comment
		{File: "test", Line: 3, Column: 9, Offset: 30}, // quux
		{File: "test", Line: 3, Column: 13, Offset: 34},
	}
	var got []sdlite.Location
	s := sdlite.NewScanner([]byte(input), "test")
	for s.Next() {
		got = append(got, s.Location())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Input: %#q\nLocations: (-want, +got)\n%s", input, diff)
	}
}
