//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
)

// RawResponse is the unparsed result of a command.
type RawResponse struct {
	Status int
	Stdout []byte
	// Stderr is kept for diagnostics only.
	Stderr []byte
}

// Response is the structured payload of a command. The zero value is
// the empty response, returned for commands which printed nothing.
type Response struct {
	fields map[string]interface{}
}

// EmptyResponse is returned when a command produced no output.
var EmptyResponse = Response{}

// NewResponse creates a non-empty response from the given fields.
func NewResponse(fields map[string]interface{}) Response {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	return Response{fields: fields}
}

// Empty indicates whether the response carries no payload.
func (r Response) Empty() bool {
	return r.fields == nil
}

// Field looks up a top-level field of the response. Numbers are
// returned as json.Number.
func (r Response) Field(name string) (interface{}, bool) {
	if r.fields == nil {
		return nil, false
	}
	val, found := r.fields[name]
	return val, found
}

// Keys returns the sorted top-level field names.
func (r Response) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON implements json.Marshaler. The empty response
// marshals as null.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.fields)
}

func (r Response) String() string {
	if r.Empty() {
		return "<empty>"
	}
	data, err := r.MarshalJSON()
	if err != nil {
		return "<unprintable>"
	}
	return string(data)
}

// Decode converts raw command output into a Response. Output that is
// blank after trimming whitespace yields the empty response; anything
// else must be a single JSON object.
func Decode(raw *RawResponse) (Response, error) {
	if raw == nil {
		return EmptyResponse, FaultDecode(nil, "nil response")
	}

	trimmed := bytes.TrimSpace(raw.Stdout)
	if len(trimmed) == 0 {
		return EmptyResponse, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return EmptyResponse, FaultDecode(trimmed, err.Error())
	}
	if fields == nil {
		return EmptyResponse, FaultDecode(trimmed, "payload is not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return EmptyResponse, FaultDecode(trimmed, "trailing data after JSON object")
	}

	return Response{fields: fields}, nil
}
