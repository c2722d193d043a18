// Package meta builds the registry metadata document created for a package
// on its first publish.
package meta

import (
	"fmt"

	"github.com/tqbf/tgzmeta/pkg/clock"
	"github.com/tqbf/tgzmeta/pkg/manifest"
)

// Document is the metadata skeleton. Field order is the JSON output
// order. Users and Versions are empty until later publishes fill them in.
type Document struct {
	Name     string         `json:"name" yaml:"name"`
	Time     Time           `json:"time" yaml:"time"`
	Users    map[string]any `json:"users" yaml:"users"`
	Versions map[string]any `json:"versions" yaml:"versions"`
	ID       *string        `json:"_id,omitempty" yaml:"_id,omitempty"`
	Readme   *string        `json:"readme,omitempty" yaml:"readme,omitempty"`
}

type Time struct {
	Created  string `json:"created" yaml:"created"`
	Modified string `json:"modified" yaml:"modified"`
}

// MissingFieldError reports a required manifest field that is absent or
// not a string.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("manifest field %q is missing or not a string", e.Field)
}

// Build stamps the skeleton with a single sample from c.
func Build(m *manifest.Manifest, c clock.Clock) (*Document, error) {
	if m == nil || m.Name == nil {
		return nil, &MissingFieldError{Field: "name"}
	}
	return BuildAt(m, c.Now())
}

// BuildAt builds the skeleton with created and modified both set to now.
func BuildAt(m *manifest.Manifest, now string) (*Document, error) {
	if m == nil || m.Name == nil {
		return nil, &MissingFieldError{Field: "name"}
	}

	doc := &Document{
		Name: *m.Name,
		Time: Time{
			Created:  now,
			Modified: now,
		},
		Users:    map[string]any{},
		Versions: map[string]any{},
	}
	if m.ID != nil {
		id := *m.ID
		doc.ID = &id
	}
	if m.Readme != nil {
		readme := *m.Readme
		doc.Readme = &readme
	}
	return doc, nil
}
