package bsonjson

import (
	"encoding/hex"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// writeObjectID emits oid as a quoted, lowercase, 24-character hex string.
func (t *Transcoder) writeObjectID(oid primitive.ObjectID) error {
	var buf [26]byte
	buf[0] = '"'
	hex.Encode(buf[1:25], oid[:])
	buf[25] = '"'
	_, err := t.sink.Write(buf[:])
	return err
}
