// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sdlite

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A Location describes the position of a token in source text.  Line and
// Column are 0-based; rendered messages report the 1-based line number.
type Location struct {
	File   string // input name as given to the scanner
	Line   int    // line number, 0-based
	Column int    // byte offset of the column in its line, 0-based
	Offset int    // byte offset in the input, 0-based
}

// String renders loc in "file:line" form with a 1-based line number.
func (loc Location) String() string {
	return fmt.Sprintf("%s:%d", loc.File, loc.Line+1)
}
