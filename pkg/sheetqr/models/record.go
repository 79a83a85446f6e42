// Package models defines data structures for sheet extraction.
package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record maps header name to cell text for one data row. Keys keep the
// order in which headers first appear; setting an existing key replaces its
// value without moving it.
type Record struct {
	fields *orderedmap.OrderedMap[string, string]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, string]()}
}

// Set stores value under key, overwriting any earlier value.
func (r *Record) Set(key, value string) {
	r.fields.Set(key, value)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	return r.fields.Get(key)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the keys in output order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}
