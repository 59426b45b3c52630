package bsonjson

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func transcodeString(t *testing.T, s string) string {
	t.Helper()
	input := mustMarshal(t, bson.D{{Key: "s", Value: s}})
	out, err := Transcode(input, false)
	if err != nil {
		t.Fatalf("Transcode(%q): %v", s, err)
	}
	var got map[string]string
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output not valid JSON for %q: %v\noutput: %s", s, err, out)
	}
	return got["s"]
}

func TestEscapingRoundTrip(t *testing.T) {
	cases := []struct {
		label string
		value string
	}{
		{"empty", ""},
		{"plain_ascii", "plain ascii"},
		{"named_escapes", "tab\tnewline\nreturn\rformfeed\fbackspace\b"},
		{"quote_and_backslash", `quote " backslash \`},
		{"slash_not_escaped", "slash / is not escaped"},
		{"low_control_bytes", "control \x01\x02\x1f"},
		{"multibyte_utf8", "unicode snowman ☃"},
		{"astral_plane", "emoji \U0001F600"},
		{"del_not_a_control_char", "del \x7f is not a control char per JSON rules"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			got := transcodeString(t, c.value)
			if got != c.value {
				t.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, c.value)
			}
		})
	}
}

func TestControlCharEscapes(t *testing.T) {
	for b := 0; b < 0x20; b++ {
		s := string([]byte{byte(b)})
		got := transcodeString(t, s)
		if got != s {
			t.Errorf("byte 0x%02x round trip mismatch: got %q", b, got)
		}
	}
}

func TestWriteEscapedLiteralForm(t *testing.T) {
	// The named single-character escapes must use the short form, not
	// \u00XY, per ECMA-262 §24.5.2.2.
	cases := map[byte]string{
		0x08: `\b`,
		0x09: `\t`,
		0x0A: `\n`,
		0x0C: `\f`,
		0x0D: `\r`,
		'"':  `\"`,
		'\\': `\\`,
	}
	for b, want := range cases {
		tc := New(Options{})
		gs := &growSink{}
		tc.sink = gs
		if err := tc.writeEscaped([]byte{b}); err != nil {
			t.Fatalf("writeEscaped(0x%02x): %v", b, err)
		}
		if string(gs.buf) != want {
			t.Errorf("byte 0x%02x: got %q, want %q", b, gs.buf, want)
		}
	}
}

func FuzzWriteEscaped(f *testing.F) {
	f.Add([]byte("plain"))
	f.Add([]byte("quote\"and\\backslash"))
	f.Add([]byte("\x00\x01\x1f"))
	f.Add([]byte("\xff\xfe"))
	f.Fuzz(func(t *testing.T, data []byte) {
		tc := New(Options{})
		gs := &growSink{}
		tc.sink = gs
		if err := tc.writeEscaped(data); err != nil {
			t.Fatalf("writeEscaped: %v", err)
		}
		quoted := append([]byte{'"'}, gs.buf...)
		quoted = append(quoted, '"')
		var s string
		if err := json.Unmarshal(quoted, &s); err != nil {
			t.Fatalf("escaped output is not valid JSON: %v\noutput: %s", err, quoted)
		}
		// writeEscaped copies non-escaped bytes verbatim, but encoding/json
		// decodes each invalid UTF-8 byte as U+FFFD; converting through
		// []rune applies the same per-byte replacement to the expected value.
		want := string([]rune(string(data)))
		if s != want {
			t.Fatalf("round trip mismatch: got %q, want %q", s, want)
		}
	})
}
