package bsonjson

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PopulateIndex maps dotted field paths to pre-rendered JSON fragments
// keyed by the BSON ObjectID found at that path, letting Transcode inline
// a joined document (e.g. the result of a separate lookup query) in place
// of a bare identifier. A PopulateIndex must be fully built with AddItems
// and RepeatPath before any concurrent Transcode reads it; the type adds
// no internal locking of its own. Transcode and GetMissingIDs also record
// unregistered identifiers at joined paths into the index, so concurrent
// calls that can meet such identifiers need external synchronization too.
type PopulateIndex struct {
	paths      map[string]*map[primitive.ObjectID][]byte
	missingIDs map[string]map[primitive.ObjectID]struct{}
}

// NewPopulateIndex returns an empty PopulateIndex.
func NewPopulateIndex() *PopulateIndex {
	return &PopulateIndex{
		paths:      make(map[string]*map[primitive.ObjectID][]byte),
		missingIDs: make(map[string]map[primitive.ObjectID]struct{}),
	}
}

func (p *PopulateIndex) fragmentsFor(path string) *map[primitive.ObjectID][]byte {
	frags := p.paths[path]
	if frags == nil {
		m := make(map[primitive.ObjectID][]byte)
		frags = &m
		p.paths[path] = frags
	}
	return frags
}

// AddItems registers docs, each a complete BSON document whose own _id
// becomes the lookup key, as the fragments to substitute at path. Each doc
// is transcoded once, up front, so the cost is paid here rather than once
// per occurrence in later calls to Transcode.
func (p *PopulateIndex) AddItems(path string, docs [][]byte) error {
	frags := p.fragmentsFor(path)
	missing := p.missingIDs[path]

	t := New(Options{})
	for _, doc := range docs {
		out, err := t.Transcode(doc, false)
		if err != nil {
			return fmt.Errorf("populate: add items at %q: %w", path, err)
		}
		if !t.haveDocID {
			return newError(ErrTruncatedKey, "populate item at %q has no _id", path)
		}
		(*frags)[t.docID] = out
		if missing != nil {
			delete(missing, t.docID)
		}
	}
	return nil
}

// RepeatPath makes dst share src's fragment map, so a later AddItems(src,
// ...) call also satisfies lookups at dst. This is used when the same
// joined collection is reachable at more than one dotted path, e.g. an
// "author" field that appears both at the top level and inside nested
// "comments" array elements.
func (p *PopulateIndex) RepeatPath(src, dst string) {
	p.paths[dst] = p.fragmentsFor(src)
}

// GetMissingIDs returns the identifiers seen at path (via Transcoder's
// GetMissingIDs scan, or during a real Transcode) that have no registered
// fragment. The returned order is unspecified.
func (p *PopulateIndex) GetMissingIDs(path string) []primitive.ObjectID {
	missing := p.missingIDs[path]
	if len(missing) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	return ids
}

// lookup reports whether path has been registered as a joined path at all
// (joined), and if so whether oid has a fragment (found, with frag valid
// only when found is true).
func (p *PopulateIndex) lookup(path string, oid primitive.ObjectID) (frag []byte, joined, found bool) {
	frags := p.paths[path]
	if frags == nil {
		return nil, false, false
	}
	frag, found = (*frags)[oid]
	return frag, true, found
}

// recordMissing notes that oid was seen at path with no registered
// fragment.
func (p *PopulateIndex) recordMissing(path string, oid primitive.ObjectID) {
	missing := p.missingIDs[path]
	if missing == nil {
		missing = make(map[primitive.ObjectID]struct{})
		p.missingIDs[path] = missing
	}
	missing[oid] = struct{}{}
}
