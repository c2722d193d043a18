// Package manifest parses the package.json document embedded in a package
// archive.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Manifest is a parsed package.json. Only the fields the registry copies
// into metadata are decoded; a field that is missing or not a JSON string
// is nil. Fields keeps every top-level member undecoded.
type Manifest struct {
	Name   *string
	ID     *string
	Readme *string

	Fields map[string]json.RawMessage
}

// ParseError reports text that is not a single JSON object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse manifest: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes text as a JSON object.
func Parse(text string) (*Manifest, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("empty document")}
	}
	if data[0] != '{' {
		return nil, &ParseError{Err: fmt.Errorf("top level is not an object")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &Manifest{
		Name:   stringField(fields, "name"),
		ID:     stringField(fields, "_id"),
		Readme: stringField(fields, "readme"),
		Fields: fields,
	}, nil
}

func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
