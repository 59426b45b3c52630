package bsonjson

import (
	"bytes"
	"encoding/binary"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// transcodeDocument renders the BSON document or array header at t.pos as
// a JSON object or array, recursing into nested documents and arrays.
// Recursion is bounded by t.maxDepth rather than flattened into an
// explicit stack: Go's goroutine stacks grow on demand, so the only thing
// worth guarding against is a hostile or corrupt document nesting too
// deep, which a simple counter already catches.
func (t *Transcoder) transcodeDocument(isArray bool) error {
	t.depth++
	defer func() { t.depth-- }()
	if t.depth > t.maxDepth {
		return newError(ErrMaxDepthExceeded, "nesting exceeds max depth %d at %q", t.maxDepth, t.path.String())
	}

	if t.pos+4 > len(t.in) {
		return newError(ErrBadDocumentSize, "truncated document header at offset %d", t.pos)
	}
	size := int32(binary.LittleEndian.Uint32(t.in[t.pos:]))
	if size < 5 {
		return newError(ErrBadDocumentSize, "document size %d at offset %d", size, t.pos)
	}
	if int(size) > len(t.in)-t.pos {
		return newError(ErrBadDocumentSize, "document size %d exceeds remaining input", size)
	}
	t.pos += 4

	basePathLen := t.path.len()

	openByte, closeByte := byte('{'), byte('}')
	if isArray {
		openByte, closeByte = '[', ']'
	}
	if err := t.sink.WriteByte(openByte); err != nil {
		return err
	}

	var index int32
	var emitted int

	for {
		if t.pos >= len(t.in) {
			return newError(ErrTruncatedKey, "missing terminator at %q", t.path.String())
		}
		elemType := t.in[t.pos]
		t.pos++
		if elemType == bsonEOO {
			break
		}

		// Undefined elements are omitted entirely: their key is skipped
		// without being written, and no comma is emitted for them.
		if elemType == bsonUndefined {
			w := arrayKeyWidth(index)
			if !isArray {
				w = bytes.IndexByte(t.in[t.pos:], 0) + 1
			}
			if w <= 0 || t.pos+w > len(t.in) {
				return newError(ErrTruncatedKey, "truncated key at %q", t.path.String())
			}
			t.pos += w
			index++
			continue
		}

		if emitted > 0 {
			if err := t.sink.WriteByte(','); err != nil {
				return err
			}
		}

		var key string
		if isArray {
			w := arrayKeyWidth(index)
			if t.pos+w > len(t.in) {
				return newError(ErrTruncatedKey, "truncated array index at %q", t.path.String())
			}
			t.pos += w
			t.path.truncate(basePathLen)
		} else {
			if err := t.sink.WriteByte('"'); err != nil {
				return err
			}
			var err error
			key, err = t.readEscapedCString()
			if err != nil {
				return err
			}
			if err := t.sink.WriteByte('"'); err != nil {
				return err
			}
			if err := t.sink.WriteByte(':'); err != nil {
				return err
			}
			t.path.truncate(basePathLen)
			t.path.push(key)
		}

		wrote := true
		switch elemType {
		case bsonString:
			if err := t.transcodeString(); err != nil {
				return err
			}
		case bsonObjectID:
			if err := t.transcodeObjectID(key); err != nil {
				return err
			}
		case bsonInt32:
			if t.pos+4 > len(t.in) {
				return newError(ErrTruncatedValue, "int32 at %q", t.path.String())
			}
			v := int32(binary.LittleEndian.Uint32(t.in[t.pos:]))
			t.pos += 4
			if _, err := t.sink.Write(appendInt(nil, int64(v))); err != nil {
				return err
			}
		case bsonInt64:
			if t.pos+8 > len(t.in) {
				return newError(ErrTruncatedValue, "int64 at %q", t.path.String())
			}
			v := int64(binary.LittleEndian.Uint64(t.in[t.pos:]))
			t.pos += 8
			if _, err := t.sink.Write(appendInt(nil, v)); err != nil {
				return err
			}
		case bsonDouble:
			if t.pos+8 > len(t.in) {
				return newError(ErrTruncatedValue, "double at %q", t.path.String())
			}
			bits := binary.LittleEndian.Uint64(t.in[t.pos:])
			t.pos += 8
			if _, err := t.sink.Write(appendDouble(nil, math.Float64frombits(bits))); err != nil {
				return err
			}
		case bsonDate:
			if t.pos+8 > len(t.in) {
				return newError(ErrTruncatedValue, "date at %q", t.path.String())
			}
			millis := int64(binary.LittleEndian.Uint64(t.in[t.pos:]))
			t.pos += 8
			if err := t.sink.WriteByte('"'); err != nil {
				return err
			}
			if _, err := t.sink.Write(appendDate(nil, millis)); err != nil {
				return err
			}
			if err := t.sink.WriteByte('"'); err != nil {
				return err
			}
		case bsonBoolean:
			if t.pos+1 > len(t.in) {
				return newError(ErrTruncatedValue, "boolean at %q", t.path.String())
			}
			b := t.in[t.pos]
			t.pos++
			lit := "false"
			if b == 1 {
				lit = "true"
			}
			if _, err := t.sink.Write([]byte(lit)); err != nil {
				return err
			}
		case bsonNull:
			if _, err := t.sink.Write([]byte("null")); err != nil {
				return err
			}
		case bsonUndefined:
			wrote = false
		case bsonDocument:
			if err := t.transcodeDocument(false); err != nil {
				return err
			}
		case bsonArray:
			if err := t.transcodeDocument(true); err != nil {
				return err
			}
		default:
			if isUnsupported(elemType) {
				return newError(ErrUnsupportedType, "type 0x%02x at %q", elemType, t.path.String())
			}
			return newError(ErrUnknownType, "type 0x%02x at %q", elemType, t.path.String())
		}

		index++
		if wrote {
			emitted++
		}
	}

	if err := t.sink.WriteByte(closeByte); err != nil {
		return err
	}
	t.path.truncate(basePathLen)
	return nil
}

// transcodeString renders a length-prefixed BSON UTF-8 string value.
func (t *Transcoder) transcodeString() error {
	if t.pos+4 > len(t.in) {
		return newError(ErrTruncatedValue, "string length at %q", t.path.String())
	}
	n := int32(binary.LittleEndian.Uint32(t.in[t.pos:]))
	t.pos += 4
	if n < 1 {
		return newError(ErrBadStringLength, "string length %d at %q", n, t.path.String())
	}
	if err := t.sink.WriteByte('"'); err != nil {
		return err
	}
	if err := t.writeEscapedLen(int(n) - 1); err != nil {
		return err
	}
	return t.sink.WriteByte('"')
}

// transcodeObjectID renders a 12-byte BSON ObjectID, recording it as the
// document's own identifier at depth 1 and consulting the populate index
// when the current path is joined.
func (t *Transcoder) transcodeObjectID(key string) error {
	if t.pos+12 > len(t.in) {
		return newError(ErrTruncatedValue, "objectID at %q", t.path.String())
	}
	var oid primitive.ObjectID
	copy(oid[:], t.in[t.pos:t.pos+12])
	t.pos += 12

	if t.depth == 1 && key == "_id" {
		t.haveDocID = true
		t.docID = oid
	}

	if t.opts.PopulateInfo != nil {
		path := t.path.String()
		frag, joined, found := t.opts.PopulateInfo.lookup(path, oid)
		if joined {
			if found {
				_, err := t.sink.Write(frag)
				return err
			}
			t.opts.PopulateInfo.recordMissing(path, oid)
		}
	}
	return t.writeObjectID(oid)
}
