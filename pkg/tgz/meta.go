package tgz

import (
	"log/slog"

	"github.com/tqbf/tgzmeta/pkg/clock"
	"github.com/tqbf/tgzmeta/pkg/manifest"
	"github.com/tqbf/tgzmeta/pkg/meta"
)

// ManifestName is the archive member holding the package manifest.
const ManifestName = "package.json"

// Manifest extracts and parses the archive's package.json.
func (a *Archive) Manifest() (*manifest.Manifest, error) {
	text, err := a.File(ManifestName)
	if err != nil {
		return nil, err
	}
	return manifest.Parse(text)
}

// Meta runs the whole ingestion: decode, extract package.json, parse it and
// build the metadata skeleton stamped by c. Errors are returned as the
// typed error of the failing stage.
func (a *Archive) Meta(c clock.Clock) (*meta.Document, error) {
	m, err := a.Manifest()
	if err != nil {
		slog.Debug("read manifest", "err", err)
		return nil, err
	}
	doc, err := meta.Build(m, c)
	if err != nil {
		return nil, err
	}
	slog.Debug("built metadata skeleton",
		"name", doc.Name,
		"created", doc.Time.Created,
	)
	return doc, nil
}
