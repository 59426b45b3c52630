package bsonjson

// BSON element type bytes, per the BSON specification.
const (
	bsonDouble       = 0x01
	bsonString       = 0x02
	bsonDocument     = 0x03
	bsonArray        = 0x04
	bsonBinary       = 0x05
	bsonUndefined    = 0x06
	bsonObjectID     = 0x07
	bsonBoolean      = 0x08
	bsonDate         = 0x09
	bsonNull         = 0x0A
	bsonRegexp       = 0x0B
	bsonDBPointer    = 0x0C
	bsonCode         = 0x0D
	bsonSymbol       = 0x0E
	bsonCodeWScope   = 0x0F
	bsonInt32        = 0x10
	bsonTimestamp    = 0x11
	bsonInt64        = 0x12
	bsonDecimal128   = 0x13
	bsonMinKey       = 0xFF
	bsonMaxKey       = 0x7F
	bsonEOO          = 0x00 // document/array terminator
)

// isUnsupported reports whether t is a BSON type that has no JSON
// representation but is otherwise a recognized element type.
func isUnsupported(t byte) bool {
	switch t {
	case bsonBinary, bsonRegexp, bsonDBPointer, bsonCode, bsonSymbol,
		bsonCodeWScope, bsonTimestamp, bsonDecimal128, bsonMinKey, bsonMaxKey:
		return true
	default:
		return false
	}
}

// isKnown reports whether t is anywhere in the full BSON type enumeration,
// whether or not this package can render it as JSON.
func isKnown(t byte) bool {
	switch t {
	case bsonDouble, bsonString, bsonDocument, bsonArray, bsonBinary,
		bsonUndefined, bsonObjectID, bsonBoolean, bsonDate, bsonNull,
		bsonRegexp, bsonDBPointer, bsonCode, bsonSymbol, bsonCodeWScope,
		bsonInt32, bsonTimestamp, bsonInt64, bsonDecimal128, bsonMinKey,
		bsonMaxKey:
		return true
	default:
		return false
	}
}
