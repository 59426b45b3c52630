package bsonjson_test

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xdg-go/bsonjson"
)

func ExampleTranscode() {
	input, err := bson.Marshal(bson.D{
		{Key: "name", Value: "Ada Lovelace"},
		{Key: "born", Value: int32(1815)},
	})
	if err != nil {
		panic(err)
	}

	out, err := bsonjson.Transcode(input, false)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
	// Output: {"name":"Ada Lovelace","born":1815}
}

func ExampleTranscodeWithPopulate() {
	authorID, err := primitive.ObjectIDFromHex("000000000000000000000001")
	if err != nil {
		panic(err)
	}

	pi := bsonjson.NewPopulateIndex()
	author, _ := bson.Marshal(bson.D{
		{Key: "_id", Value: authorID},
		{Key: "name", Value: "Ada Lovelace"},
	})
	if err := pi.AddItems("author", [][]byte{author}); err != nil {
		panic(err)
	}

	post, _ := bson.Marshal(bson.D{
		{Key: "title", Value: "On the Analytical Engine"},
		{Key: "author", Value: authorID},
	})

	out, err := bsonjson.TranscodeWithPopulate(post, false, pi)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
	// Output: {"title":"On the Analytical Engine","author":{"_id":"000000000000000000000001","name":"Ada Lovelace"}}
}
