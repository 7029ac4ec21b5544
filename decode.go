// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sdlite

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go4.org/mem"

	"github.com/creachadair/sdlite/internal/escape"
	"github.com/creachadair/sdlite/pool"
)

// DecodeValue converts the token at t into its data value.  String
// contents are accumulated through chars and binary payloads through
// data, so that a caller decoding many tokens can reuse the same buffer
// regions.  Tokens whose type does not carry a value decode to Null.
//
// The returned error reports a malformed or out-of-range payload, for
// example a date whose month is 13.  The scanner does not reject those:
// they are lexically well-formed.
func DecodeValue(t Anchor, chars, data *pool.Appender[byte]) (Value, error) {
	text := t.Text()
	switch t.Token() {
	case Text:
		return decodeText(text, chars)
	case Binary:
		return decodeBinary(text, data)
	case Number:
		return decodeNumber(text)
	case Boolean:
		switch text[0] {
		case 't':
			return Bool(true), nil
		case 'f':
			return Bool(false), nil
		}
		return Bool(text[1] == 'n'), nil // on, off
	case Date:
		return decodeDate(text)
	case Duration:
		return decodeDuration(text)
	case DateTime:
		return decodeDateTime(text)
	default:
		return Null{}, nil
	}
}

func decodeText(text []byte, chars *pool.Appender[byte]) (Value, error) {
	body := text[1 : len(text)-1]
	if text[0] == '`' {
		// WYSIWYG form: the body is taken verbatim.
		chars.PutSlice(body)
		return String(pool.ExtractString(chars)), nil
	}
	if err := escape.Unquote(mem.B(body), chars); err != nil {
		return nil, err
	}
	return String(pool.ExtractString(chars)), nil
}

func decodeBinary(text []byte, data *pool.Appender[byte]) (Value, error) {
	body := text[1 : len(text)-1]
	enc := make([]byte, 0, len(body))
	for _, b := range body {
		switch b {
		case ' ', '\t', '\n', '\r':
		default:
			enc = append(enc, b)
		}
	}
	dec := make([]byte, base64.StdEncoding.DecodedLen(len(enc)))
	n, err := base64.StdEncoding.Decode(dec, enc)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	data.PutSlice(dec[:n])
	return Binary(data.Extract()), nil
}

func decodeNumber(text []byte) (Value, error) {
	if bytes.IndexByte(text, '.') < 0 {
		i := 0
		if text[0] == '-' {
			i = 1
		}
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		v, err := strconv.ParseInt(string(text[:i]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", text)
		}
		if i == len(text) {
			// No suffix: a 32-bit integer, clamped to its range.
			if v > math.MaxInt32 {
				v = math.MaxInt32
			} else if v < math.MinInt32 {
				v = math.MinInt32
			}
			return Int32(v), nil
		}
		switch text[i] {
		case 'l', 'L':
			return Int64(v), nil
		case 'd', 'D':
			return Float64(v), nil
		case 'f', 'F':
			return Float32(v), nil
		}
		return nil, fmt.Errorf("invalid number suffix %q", text[i])
	}

	n := len(text)
	if n >= 2 && strings.EqualFold(string(text[n-2:]), "bd") {
		return Null{}, nil // decimal placeholder
	}
	switch text[n-1] {
	case 'f', 'F':
		v, err := strconv.ParseFloat(string(text[:n-1]), 32)
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", text)
		}
		return Float32(v), nil
	case 'd', 'D':
		text = text[:n-1]
	}
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return nil, fmt.Errorf("number out of range: %s", text)
	}
	return Float64(v), nil
}

func decodeDate(text []byte) (Value, error) {
	y, m, d := splitDate(text)
	return NewDate(y, m, d)
}

// splitDate splits "YYYY/MM/DD" into its parts.  The scanner guarantees
// the shape, so the integer conversions cannot fail.
func splitDate(text []byte) (y, m, d int) {
	parts := bytes.SplitN(text, []byte("/"), 3)
	y, _ = strconv.Atoi(string(parts[0]))
	m, _ = strconv.Atoi(string(parts[1]))
	d, _ = strconv.Atoi(string(parts[2]))
	return
}

// fracTicks converts a run of fractional-second digits to ticks,
// right-padding (or truncating) to seven digits.
func fracTicks(frac []byte) int {
	var t int
	for i := 0; i < 7; i++ {
		t *= 10
		if i < len(frac) {
			t += int(frac[i] - '0')
		}
	}
	return t
}

func decodeDuration(text []byte) (Value, error) {
	neg := text[0] == '-'
	if neg {
		text = text[1:]
	}
	var days int64
	if i := bytes.IndexByte(text, 'd'); i >= 0 {
		d, _ := strconv.Atoi(string(text[:i]))
		days = int64(d)
		text = text[i+2:] // skip "d:"
	}
	hms := bytes.SplitN(text, []byte(":"), 3)
	hh, _ := strconv.Atoi(string(hms[0]))
	mm, _ := strconv.Atoi(string(hms[1]))
	sec := hms[2]
	var frac []byte
	if i := bytes.IndexByte(sec, '.'); i >= 0 {
		sec, frac = sec[:i], sec[i+1:]
	}
	ss, _ := strconv.Atoi(string(sec))

	ticks := (((days*24+int64(hh))*60+int64(mm))*60+int64(ss))*TicksPerSecond + int64(fracTicks(frac))
	if neg {
		ticks = -ticks
	}
	return Duration(ticks), nil
}

func decodeDateTime(text []byte) (Value, error) {
	sp := bytes.IndexByte(text, ' ')
	y, m, d := splitDate(text[:sp])
	date, err := NewDate(y, m, d)
	if err != nil {
		return nil, err
	}

	rest := text[sp+1:]
	zone := TimeZone{} // local
	if i := bytes.IndexByte(rest, '-'); i >= 0 {
		zone = decodeZone(rest[i+1:])
		rest = rest[:i]
	}

	hms := bytes.SplitN(rest, []byte(":"), 3)
	hh, _ := strconv.Atoi(string(hms[0]))
	mm, _ := strconv.Atoi(string(hms[1]))
	var ss int
	var frac []byte
	if len(hms) == 3 {
		sec := hms[2]
		if i := bytes.IndexByte(sec, '.'); i >= 0 {
			sec, frac = sec[:i], sec[i+1:]
		}
		ss, _ = strconv.Atoi(string(sec))
	}
	return NewDateTime(date, hh, mm, ss, fracTicks(frac), zone)
}

// decodeZone converts the time zone text following the "-" separator.
// The scanner guarantees three uppercase letters with an optional signed
// offset.
func decodeZone(tz []byte) TimeZone {
	name := string(tz[:3])
	if len(tz) == 3 {
		if name == "UTC" || name == "GMT" {
			return UTC()
		}
		return NamedZone(name)
	}
	sign := tz[3]
	off := tz[4:]
	var hh, mm int
	if i := bytes.IndexByte(off, ':'); i >= 0 {
		hh, _ = strconv.Atoi(string(off[:i]))
		mm, _ = strconv.Atoi(string(off[i+1:]))
	} else {
		hh, _ = strconv.Atoi(string(off))
	}
	minutes := hh*60 + mm
	if sign == '-' {
		minutes = -minutes
	}
	return OffsetZone(minutes)
}
