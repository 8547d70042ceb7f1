package domain

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// ResultSet collects the documents of one pipeline run keyed by output key.
// Enumeration order is the order the documents were supplied in, which the
// orchestrator sets to task declaration order. A ResultSet is read-only once
// built.
type ResultSet struct {
	runID uuid.UUID
	keys  []string
	docs  map[string]GeneratedDocument
}

// NewResultSet builds a ResultSet from documents in enumeration order.
// Every document must have a distinct, non-empty key.
func NewResultSet(runID uuid.UUID, docs []GeneratedDocument) (*ResultSet, error) {
	rs := &ResultSet{
		runID: runID,
		keys:  make([]string, 0, len(docs)),
		docs:  make(map[string]GeneratedDocument, len(docs)),
	}

	for _, d := range docs {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrUnknownOutputKey)
		}
		if _, exists := rs.docs[d.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOutputKey, d.Key)
		}
		rs.keys = append(rs.keys, d.Key)
		rs.docs[d.Key] = d
	}

	return rs, nil
}

// RunID returns the identifier of the run that produced the set.
func (rs *ResultSet) RunID() uuid.UUID { return rs.runID }

// Len returns the number of entries.
func (rs *ResultSet) Len() int { return len(rs.keys) }

// Keys returns the output keys in enumeration order.
func (rs *ResultSet) Keys() []string {
	out := make([]string, len(rs.keys))
	copy(out, rs.keys)
	return out
}

// Get returns the document stored under key.
func (rs *ResultSet) Get(key string) (GeneratedDocument, bool) {
	d, ok := rs.docs[key]
	return d, ok
}

// Lookup returns the document under key, or ErrUnknownOutputKey when the
// set has no such key.
func (rs *ResultSet) Lookup(key string) (GeneratedDocument, error) {
	d, ok := rs.docs[key]
	if !ok {
		return GeneratedDocument{}, fmt.Errorf("%w: %s", ErrUnknownOutputKey, key)
	}
	return d, nil
}

// All iterates over key/document pairs in enumeration order.
func (rs *ResultSet) All() iter.Seq2[string, GeneratedDocument] {
	return func(yield func(string, GeneratedDocument) bool) {
		for _, k := range rs.keys {
			if !yield(k, rs.docs[k]) {
				return
			}
		}
	}
}

// Documents returns every document in enumeration order.
func (rs *ResultSet) Documents() []GeneratedDocument {
	out := make([]GeneratedDocument, 0, len(rs.keys))
	for _, d := range rs.All() {
		out = append(out, d)
	}
	return out
}

// Successful returns the succeeded documents in enumeration order.
func (rs *ResultSet) Successful() []GeneratedDocument {
	var out []GeneratedDocument
	for _, d := range rs.All() {
		if d.Succeeded() {
			out = append(out, d)
		}
	}
	return out
}

// Failed returns the failed documents in enumeration order.
func (rs *ResultSet) Failed() []GeneratedDocument {
	var out []GeneratedDocument
	for _, d := range rs.All() {
		if !d.Succeeded() {
			out = append(out, d)
		}
	}
	return out
}

// Succeeded reports whether at least one task produced content, which is
// the success criterion for a run as a whole.
func (rs *ResultSet) Succeeded() bool {
	for _, d := range rs.All() {
		if d.Succeeded() {
			return true
		}
	}
	return false
}

// Complete reports whether every task produced content.
func (rs *ResultSet) Complete() bool {
	return len(rs.Failed()) == 0
}

type resultSetJSON struct {
	RunID     string              `json:"run_id"`
	Documents []GeneratedDocument `json:"documents"`
}

// MarshalJSON encodes the set as an ordered document list so the enumeration
// order survives serialization.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultSetJSON{
		RunID:     rs.runID.String(),
		Documents: rs.Documents(),
	})
}
