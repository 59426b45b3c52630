package bsonjson

import (
	"math"
	"strconv"
	"testing"
)

func TestAppendInt(t *testing.T) {
	cases := []int64{
		0, 1, -1, 9, -9, 10, -10, 99, -99, 100, -100,
		12345, -12345, math.MaxInt32, math.MinInt32,
		math.MaxInt64, math.MinInt64,
	}
	for _, v := range cases {
		got := string(appendInt(nil, v))
		want := strconv.FormatInt(v, 10)
		if got != want {
			t.Errorf("appendInt(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestAppendDoubleMatchesECMAScriptShape(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1.5, "1.5"},
		{100, "100"},
		{0.1, "0.1"},
		{123456, "123456"},
		{1e21, "1e+21"},
		{1e20, "100000000000000000000"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{-1.5e-7, "-1.5e-7"},
		{123.456, "123.456"},
		{1e100, "1e+100"},
	}
	for _, c := range cases {
		got := string(appendDouble(nil, c.v))
		if got != c.want {
			t.Errorf("appendDouble(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestAppendDoubleNonFinite(t *testing.T) {
	cases := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range cases {
		if got := string(appendDouble(nil, v)); got != "null" {
			t.Errorf("appendDouble(%v) = %q, want null", v, got)
		}
	}
}

func TestAppendDoubleRoundTrip(t *testing.T) {
	values := []float64{
		0.1, 0.2, 0.3, 1.0 / 3.0, math.Pi, math.E,
		1234567890.123456, 5e-324, math.MaxFloat64,
		-math.MaxFloat64, math.SmallestNonzeroFloat64,
	}
	for _, v := range values {
		s := string(appendDouble(nil, v))
		got, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("appendDouble(%v) produced unparsable %q: %v", v, s, err)
		}
		if got != v {
			t.Errorf("appendDouble(%v) = %q, parses back to %v", v, s, got)
		}
	}
}

func TestAppendDate(t *testing.T) {
	cases := []struct {
		millis int64
		want   string
	}{
		{0, "1970-01-01T00:00:00.000Z"},
		{1000, "1970-01-01T00:00:01.000Z"},
		{1709391845123, "2024-03-02T15:04:05.123Z"},
		{-1000, "1969-12-31T23:59:59.000Z"},
	}
	for _, c := range cases {
		got := string(appendDate(nil, c.millis))
		if got != c.want {
			t.Errorf("appendDate(%d) = %q, want %q", c.millis, got, c.want)
		}
	}
}

func TestArrayKeyWidth(t *testing.T) {
	cases := []struct {
		i    int32
		want int
	}{
		{0, 2}, {9, 2}, {10, 3}, {99, 3}, {100, 4}, {999, 4},
		{1000, 5}, {9999, 5}, {10000, 6},
	}
	for _, c := range cases {
		if got := arrayKeyWidth(c.i); got != c.want {
			t.Errorf("arrayKeyWidth(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}
