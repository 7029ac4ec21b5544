// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sdlite

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go4.org/mem"

	"github.com/creachadair/sdlite/internal/escape"
)

// Generate writes nodes to w as SDLang text, indented by one tab per
// nesting level starting at level.  The output of Generate parses back
// to an equal sequence of nodes, with two exceptions: a non-integral
// float may be rounded to 7 (Float32) or 15 (Float64) significant digits,
// and a Duration whose seconds and fraction are zero is written as HH:MM,
// which the scanner does not read as a duration.  Source formatting and
// comments are not reproduced.
func Generate(w io.Writer, nodes []*Node, level int) error {
	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		writeNode(bw, n, level)
	}
	return bw.Flush()
}

// WriteValue writes the SDLang rendering of a single value to w.
// It panics if v is not one of the Value types of this package.
func WriteValue(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	writeValue(bw, v)
	return bw.Flush()
}

// EscapeString writes s to w as an SDLang quoted string, including the
// enclosing quotation marks.
func EscapeString(w io.Writer, s string) error {
	bw := bufio.NewWriter(w)
	writeQuoted(bw, s)
	return bw.Flush()
}

// WriteFloat writes the SDLang rendering of a floating-point value of
// the given bit width (32 or 64) to w, without a type suffix.  NaN and
// infinities render as 0.0: they have no representation in the grammar.
func WriteFloat(w io.Writer, v float64, bits int) error {
	bw := bufio.NewWriter(w)
	writeFloat(bw, v, bits)
	return bw.Flush()
}

func writeNode(bw *bufio.Writer, n *Node, level int) {
	writeIndent(bw, level)
	if n.Name != anonymousName {
		bw.WriteString(n.Name)
	}
	for _, v := range n.Values {
		bw.WriteByte(' ')
		writeValue(bw, v)
	}
	for _, a := range n.Attributes {
		bw.WriteByte(' ')
		bw.WriteString(a.Name)
		bw.WriteByte('=')
		writeValue(bw, a.Value)
	}
	if len(n.Children) == 0 {
		bw.WriteByte('\n')
		return
	}
	bw.WriteString(" {\n")
	for _, c := range n.Children {
		writeNode(bw, c, level+1)
	}
	writeIndent(bw, level)
	bw.WriteString("}\n")
}

func writeIndent(bw *bufio.Writer, level int) {
	for i := 0; i < level; i++ {
		bw.WriteByte('\t')
	}
}

func writeValue(bw *bufio.Writer, v Value) {
	switch t := v.(type) {
	case Null, Decimal:
		bw.WriteString("null")
	case String:
		writeQuoted(bw, string(t))
	case Binary:
		bw.WriteByte('[')
		bw.WriteString(base64.StdEncoding.EncodeToString(t))
		bw.WriteByte(']')
	case Int32:
		bw.WriteString(strconv.FormatInt(int64(t), 10))
	case Int64:
		bw.WriteString(strconv.FormatInt(int64(t), 10))
		bw.WriteByte('L')
	case Float32:
		writeFloat(bw, float64(t), 32)
		bw.WriteByte('f')
	case Float64:
		writeFloat(bw, float64(t), 64)
	case Bool:
		if t {
			bw.WriteString("true")
		} else {
			bw.WriteString("false")
		}
	case Date:
		writeDate(bw, t)
	case DateTime:
		writeDateTime(bw, t)
	case Duration:
		writeDuration(bw, t)
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func writeQuoted(bw *bufio.Writer, s string) {
	bw.WriteByte('"')
	bw.Write(escape.Quote(mem.S(s)))
	bw.WriteByte('"')
}

// writeFloat renders v with just enough precision to avoid redundant
// trailing digits: the significand budget of the type (7 or 15 digits)
// less the position of the first significant digit.  Integer-valued
// floats keep one fractional digit so the value reads back as a double.
func writeFloat(bw *bufio.Writer, v float64, bits int) {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		bw.WriteString("0.0")
		return
	}
	if v == math.Trunc(v) {
		fmt.Fprintf(bw, "%.1f", v)
		return
	}
	digits := 15
	if bits == 32 {
		digits = 7
	}
	n := digits - int(math.Log10(math.Abs(v)))
	if n < 1 {
		n = 1
	} else if n > digits {
		n = digits
	}
	s := strconv.FormatFloat(v, 'g', n, 64)
	if strings.ContainsAny(s, "eE") {
		// The grammar has no exponent form.
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	bw.WriteString(s)
}

func writeDate(bw *bufio.Writer, d Date) {
	fmt.Fprintf(bw, "%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// writeFrac renders fractional-second ticks: milliseconds when the value
// is whole milliseconds, the full seven digits otherwise.
func writeFrac(bw *bufio.Writer, frac int) {
	if frac == 0 {
		return
	}
	if frac%10_000 == 0 {
		fmt.Fprintf(bw, ".%03d", frac/10_000)
	} else {
		fmt.Fprintf(bw, ".%07d", frac)
	}
}

func writeDateTime(bw *bufio.Writer, dt DateTime) {
	writeDate(bw, dt.Date)
	fmt.Fprintf(bw, " %02d:%02d:%02d", dt.Hour, dt.Minute, dt.Second)
	writeFrac(bw, dt.Frac)
	switch z := dt.Zone; z.Kind {
	case ZoneLocal:
		// No suffix: the value is interpreted in the reader's zone.
	case ZoneUTC:
		bw.WriteString("-UTC")
	case ZoneOffset:
		sign, m := byte('+'), z.Minutes
		if m < 0 {
			sign, m = '-', -m
		}
		// The SDL spec names fixed offsets GMT, not UTC.
		fmt.Fprintf(bw, "-GMT%c%02d:%02d", sign, m/60, m%60)
	case ZoneNamed:
		bw.WriteByte('-')
		bw.WriteString(z.Name)
	}
}

func writeDuration(bw *bufio.Writer, d Duration) {
	t := int64(d)
	if t < 0 {
		bw.WriteByte('-')
		t = -t
	}
	frac := int(t % TicksPerSecond)
	t /= TicksPerSecond
	ss := t % 60
	t /= 60
	mm := t % 60
	t /= 60
	hh := t % 24
	if days := t / 24; days > 0 {
		fmt.Fprintf(bw, "%dd:", days)
	}
	fmt.Fprintf(bw, "%02d:%02d", hh, mm)
	if ss != 0 || frac != 0 {
		fmt.Fprintf(bw, ":%02d", ss)
		writeFrac(bw, frac)
	}
}
