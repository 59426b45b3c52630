// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonjson is a high-performance, streaming BSON-to-JSON transcoder.
// It writes a JSON byte sequence directly from a BSON document or array
// without building an intermediate tree of typed values along the way.
//
// Two output disciplines are supported: Transcode grows its output buffer
// on demand and returns the full result, while a StreamController pauses
// the transcoder whenever a caller-supplied buffer fills and hands the
// chunk to a consumer, repeating until the input is exhausted.
//
// A PopulateIndex lets callers register, for specific dotted field paths,
// a mapping from a BSON ObjectID to a pre-rendered JSON fragment. When
// Transcode walks a joined path it substitutes the fragment verbatim in
// place of the identifier; GetMissingIDs performs the same walk without
// producing output, collecting the identifiers at joined paths that have
// no registered fragment yet, so a caller can fetch them before the real
// transcode.
//
// BSON types with no JSON equivalent (Binary, Decimal128, Regexp, Symbol,
// Timestamp, MinKey, MaxKey, Code, CodeWithScope, DBPointer) are rejected
// with ErrUnsupportedType. UTF-8 validity of string payloads is not
// checked.
package bsonjson
