// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of SDLang strings.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"

	"github.com/creachadair/sdlite/pool"
)

// Unquote decodes a byte view containing the SDLang encoding of a quoted
// string, appending the decoded bytes to out.  The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents.  A
// backslash followed by a line break splices physical lines: the
// backslash, the break, and any following run of spaces and tabs are
// removed.  Unquote reports an error for an incomplete or unrecognized
// escape sequence.
func Unquote(src mem.RO, out *pool.Appender[byte]) error {
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			pool.AppendRO(out, src)
			return nil
		}
		pool.AppendRO(out, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return errors.New("incomplete escape sequence")
		}
		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\':
			out.Put(b)
		case 'n':
			out.Put('\n')
		case 'r':
			out.Put('\r')
		case 't':
			out.Put('\t')
		case '\r', '\n':
			// Line continuation: splice out the break and the leading
			// horizontal whitespace of the next physical line.
			if b == '\r' && src.Len() != 0 && src.At(0) == '\n' {
				src = src.SliceFrom(1)
			}
			for src.Len() != 0 && (src.At(0) == ' ' || src.At(0) == '\t') {
				src = src.SliceFrom(1)
			}
		default:
			return fmt.Errorf("invalid escape %q", b)
		}
	}
	return nil
}
