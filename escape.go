package bsonjson

// jsonEscape maps a byte to its single-character JSON escape, or 0 if the
// byte has none (and, if it needs escaping at all, must go out as \u00XY).
var jsonEscape = [256]byte{
	0x08: 'b',
	0x09: 't',
	0x0A: 'n',
	0x0C: 'f',
	0x0D: 'r',
	'"':  '"',
	'\\': '\\',
}

const hexDigits = "0123456789abcdef"

// needsEscape reports whether c must be escaped in a JSON string body.
func needsEscape(c byte) bool {
	return c < 0x20 || c == '"' || c == '\\'
}

// writeEscaped copies p to the output, backslash-escaping any byte that
// JSON forbids appearing literally inside a string. p must not include the
// surrounding quotes.
func (t *Transcoder) writeEscaped(p []byte) error {
	start := 0
	for i, c := range p {
		if !needsEscape(c) {
			continue
		}
		if i > start {
			if _, err := t.sink.Write(p[start:i]); err != nil {
				return err
			}
		}
		if esc := jsonEscape[c]; esc != 0 {
			if _, err := t.sink.Write([]byte{'\\', esc}); err != nil {
				return err
			}
		} else if err := t.writeControlChar(c); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(p) {
		if _, err := t.sink.Write(p[start:]); err != nil {
			return err
		}
	}
	return nil
}

// writeControlChar emits the \u00XY escape for a control byte with no
// shorter single-character form.
func (t *Transcoder) writeControlChar(c byte) error {
	var buf [6]byte
	buf[0], buf[1], buf[2], buf[3] = '\\', 'u', '0', '0'
	buf[4] = hexDigits[c>>4]
	buf[5] = hexDigits[c&0x0f]
	_, err := t.sink.Write(buf[:])
	return err
}

// readEscapedCString reads a NUL-terminated key starting at t.pos, writes
// its escaped form (without surrounding quotes) to the output, and returns
// the raw, unescaped key text. t.pos is left just past the terminating NUL.
func (t *Transcoder) readEscapedCString() (string, error) {
	start := t.pos
	i := start
	for i < len(t.in) && t.in[i] != 0 {
		i++
	}
	if i >= len(t.in) {
		return "", newError(ErrTruncatedKey, "unterminated key starting at offset %d", start)
	}
	key := t.in[start:i]
	if err := t.writeEscaped(key); err != nil {
		return "", err
	}
	t.pos = i + 1
	return string(key), nil
}

// writeEscapedLen escapes and writes the n bytes of a length-prefixed BSON
// string value starting at t.pos, excluding its own terminating NUL. t.pos
// is left just past that NUL.
func (t *Transcoder) writeEscapedLen(n int) error {
	if n < 0 || t.pos+n+1 > len(t.in) {
		return newError(ErrBadStringLength, "string length %d exceeds remaining input", n)
	}
	if t.in[t.pos+n] != 0 {
		return newError(ErrBadStringLength, "string value at offset %d not NUL-terminated", t.pos)
	}
	if err := t.writeEscaped(t.in[t.pos : t.pos+n]); err != nil {
		return err
	}
	t.pos += n + 1
	return nil
}
