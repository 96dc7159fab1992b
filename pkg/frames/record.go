// Package frames implements the frame record wire format and its pure
// projections. A frame record is a JSON array of exactly two elements,
// a non-negative integer index and an image ref string. The package does
// no I/O; resolving refs to images is the image store's job.
package frames

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Record is one indexed frame reference.
type Record struct {
	Index int64
	Ref   string
}

// ParseError reports a blob that is not a valid frame record.
type ParseError struct {
	Raw []byte
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse frame record %s: %v", summarizeRaw(e.Raw), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecord decodes a frame record blob. Anything that is not a JSON
// array of exactly [non-negative integer, string] is a ParseError: wrong
// arity, a quoted or float or exponent index, a negative index, a
// non-string ref.
func ParseRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var elems []interface{}
	if err := dec.Decode(&elems); err != nil {
		return Record{}, &ParseError{Raw: data, Err: fmt.Errorf("not a JSON array: %w", err)}
	}
	if dec.More() {
		return Record{}, &ParseError{Raw: data, Err: errors.New("trailing data after record")}
	}
	if len(elems) != 2 {
		return Record{}, &ParseError{Raw: data, Err: fmt.Errorf("expected 2 elements, got %d", len(elems))}
	}

	num, ok := elems[0].(json.Number)
	if !ok {
		return Record{}, &ParseError{Raw: data, Err: fmt.Errorf("index is not a number (%T)", elems[0])}
	}
	index, err := num.Int64()
	if err != nil {
		return Record{}, &ParseError{Raw: data, Err: fmt.Errorf("index %s is not an integer: %w", num, err)}
	}
	if index < 0 {
		return Record{}, &ParseError{Raw: data, Err: fmt.Errorf("index %d is negative", index)}
	}

	ref, ok := elems[1].(string)
	if !ok {
		return Record{}, &ParseError{Raw: data, Err: fmt.Errorf("ref is not a string (%T)", elems[1])}
	}

	return Record{Index: index, Ref: ref}, nil
}

// EncodeRecord produces the wire form of a record. It is the exact
// inverse of ParseRecord for every valid record.
func EncodeRecord(index int64, ref string) ([]byte, error) {
	if index < 0 {
		return nil, fmt.Errorf("encode frame record: index %d is negative", index)
	}
	return json.Marshal([]interface{}{index, ref})
}

// SortRecords orders records ascending by index, in place. The sort is
// stable: records with equal indices keep their input order, and none
// are dropped or merged.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Index < records[j].Index
	})
}

// ImageName projects an image ref to a bare image name: the final path
// element with its extension removed. It never touches the filesystem.
func ImageName(ref string) string {
	base := path.Base(ref)
	return strings.TrimSuffix(base, path.Ext(base))
}

// summarizeRaw keeps record parse errors readable when the blob is long
// or not printable.
func summarizeRaw(raw []byte) string {
	const limit = 64
	s := string(raw)
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return fmt.Sprintf("%q", s)
}
