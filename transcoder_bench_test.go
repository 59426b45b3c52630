package bsonjson

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func benchDocument(b *testing.B, n int) []byte {
	b.Helper()
	items := make(bson.A, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "index", Value: int32(i)},
			{Key: "label", Value: "a representative string field with some length"},
			{Key: "score", Value: float64(i) * 1.5},
		})
	}
	out, err := bson.Marshal(bson.D{{Key: "items", Value: items}})
	if err != nil {
		b.Fatalf("bson.Marshal: %v", err)
	}
	return out
}

func BenchmarkTranscode(b *testing.B) {
	input := benchDocument(b, 500)
	tc := New(Options{})
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tc.Transcode(input, false); err != nil {
			b.Fatalf("Transcode: %v", err)
		}
	}
}

func BenchmarkWriteEscaped(b *testing.B) {
	data := []byte(`a fairly long string with a "quote" and a \backslash\ plus some unicode ☃`)
	tc := New(Options{})
	gs := &growSink{buf: make([]byte, 0, len(data)*2)}
	tc.sink = gs
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gs.buf = gs.buf[:0]
		if err := tc.writeEscaped(data); err != nil {
			b.Fatalf("writeEscaped: %v", err)
		}
	}
}

func BenchmarkAppendInt(b *testing.B) {
	var buf []byte
	for i := 0; i < b.N; i++ {
		buf = appendInt(buf[:0], 1234567890123)
	}
}

func BenchmarkAppendDouble(b *testing.B) {
	var buf []byte
	for i := 0; i < b.N; i++ {
		buf = appendDouble(buf[:0], 123456.789)
	}
}
