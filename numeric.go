package bsonjson

import (
	"math"
	"strconv"
	"time"
)

// digitPairs holds the two-character decimal representation of every value
// 0-99 back to back, so a value can be peeled off two digits at a time
// instead of one, the same table-driven trick fmt and this package's
// teacher corpus use for fast integer formatting.
const digitPairs = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// appendInt writes the base-10 representation of v to buf. It covers both
// BSON int32 and int64 fields; Go gains nothing by specializing the two
// widths the way the template-based reference engine does.
func appendInt(buf []byte, v int64) []byte {
	var tmp [20]byte
	i := len(tmp)

	neg := v < 0
	uv := uint64(v)
	if neg {
		uv = -uv
	}

	for uv >= 100 {
		idx := (uv % 100) * 2
		uv /= 100
		i -= 2
		tmp[i], tmp[i+1] = digitPairs[idx], digitPairs[idx+1]
	}
	if uv < 10 {
		i--
		tmp[i] = '0' + byte(uv)
	} else {
		idx := uv * 2
		i -= 2
		tmp[i], tmp[i+1] = digitPairs[idx], digitPairs[idx+1]
	}
	if neg {
		i--
		tmp[i] = '-'
	}
	return append(buf, tmp[i:]...)
}

// appendZeroPadded writes v in decimal, left-padded with zeros to width.
// It is only ever called with small, non-negative values (date fields).
func appendZeroPadded(buf []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}

// appendDouble writes the ECMAScript Number::toString form of v, which is
// what JSON.stringify produces and what this package's JSON output must
// match byte-for-byte for round-trip fidelity. NaN and +/-Inf, which BSON
// permits but JSON cannot express, are written as null.
func appendDouble(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(buf, "null"...)
	}
	if v == 0 {
		return append(buf, '0')
	}

	neg := v < 0
	abs := v
	if neg {
		abs = -v
	}

	// strconv's shortest round-trip digits, in normalized scientific form,
	// give us exactly the (digits, exponent) pair the ECMAScript algorithm
	// is defined in terms of.
	e := strconv.AppendFloat(nil, abs, 'e', -1, 64)
	digits, exp := splitSciNotation(e)

	k := len(digits)
	n := exp + 1

	if neg {
		buf = append(buf, '-')
	}

	switch {
	case k <= n && n <= 21:
		buf = append(buf, digits...)
		for i := 0; i < n-k; i++ {
			buf = append(buf, '0')
		}
	case 0 < n && n <= 21:
		buf = append(buf, digits[:n]...)
		buf = append(buf, '.')
		buf = append(buf, digits[n:]...)
	case -6 < n && n <= 0:
		buf = append(buf, '0', '.')
		for i := 0; i < -n; i++ {
			buf = append(buf, '0')
		}
		buf = append(buf, digits...)
	default:
		buf = append(buf, digits[0])
		if k > 1 {
			buf = append(buf, '.')
			buf = append(buf, digits[1:]...)
		}
		buf = append(buf, 'e')
		e := n - 1
		if e >= 0 {
			buf = append(buf, '+')
		} else {
			buf = append(buf, '-')
			e = -e
		}
		buf = appendInt(buf, int64(e))
	}
	return buf
}

// splitSciNotation pulls the significant digits and base-10 exponent out
// of a strconv.AppendFloat 'e'-format result such as "1.2345e+10" or
// "5e+00", discarding the decimal point.
func splitSciNotation(e []byte) (digits []byte, exp int) {
	ePos := 0
	for ePos < len(e) && e[ePos] != 'e' {
		ePos++
	}
	mantissa := e[:ePos]
	digits = make([]byte, 0, len(mantissa))
	for _, c := range mantissa {
		if c != '.' {
			digits = append(digits, c)
		}
	}
	exp, _ = strconv.Atoi(string(e[ePos+1:]))
	return digits, exp
}

// appendDate writes the UTC ISO-8601 form of a BSON UTC datetime, given as
// milliseconds since the Unix epoch. The year is written at its natural
// decimal width (not padded to four digits, no extended ±YYYYYY form);
// every other field is zero-padded to its fixed width.
func appendDate(buf []byte, millis int64) []byte {
	t := time.UnixMilli(millis).UTC()
	buf = appendInt(buf, int64(t.Year()))
	buf = append(buf, '-')
	buf = appendZeroPadded(buf, int(t.Month()), 2)
	buf = append(buf, '-')
	buf = appendZeroPadded(buf, t.Day(), 2)
	buf = append(buf, 'T')
	buf = appendZeroPadded(buf, t.Hour(), 2)
	buf = append(buf, ':')
	buf = appendZeroPadded(buf, t.Minute(), 2)
	buf = append(buf, ':')
	buf = appendZeroPadded(buf, t.Second(), 2)
	buf = append(buf, '.')
	buf = appendZeroPadded(buf, t.Nanosecond()/1e6, 3)
	buf = append(buf, 'Z')
	return buf
}

// arrayKeyWidth reports how many bytes a BSON array's i'th element key
// occupies on the wire, including its terminating NUL, so the decoder can
// skip it without scanning for the NUL byte by byte.
func arrayKeyWidth(i int32) int {
	switch {
	case i < 10:
		return 2
	case i < 100:
		return 3
	case i < 1000:
		return 4
	case i < 10000:
		return 5
	case i < 100000:
		return 6
	case i < 1000000:
		return 7
	case i < 10000000:
		return 8
	case i < 100000000:
		return 9
	case i < 1000000000:
		return 10
	default:
		return 11
	}
}
