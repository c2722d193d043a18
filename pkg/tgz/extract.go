package tgz

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tqbf/tgzmeta/pkg/pack"
)

// ArchiveFormatError reports bytes that are not a valid gzip tarball.
type ArchiveFormatError struct {
	Err error
}

func (e *ArchiveFormatError) Error() string {
	return fmt.Sprintf("malformed archive: %s", e.Err)
}

func (e *ArchiveFormatError) Unwrap() error {
	return e.Err
}

// EntryNotFoundError reports that no member path ends with Name.
type EntryNotFoundError struct {
	Name string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("'%s' file wasn't found", e.Name)
}

// Extract returns the text of the first member, in stream order, whose
// path ends with name. Matching on the suffix accepts whatever root folder
// the publishing client chose ("package/", "pkg/", none).
func Extract(data []byte, name string) (string, error) {
	var (
		text  string
		found bool
	)
	err := pack.Walk(bytes.NewReader(data), func(hdr *tar.Header, body io.Reader) error {
		if !strings.HasSuffix(hdr.Name, name) {
			return nil
		}
		content, err := pack.ReadBody(body)
		if err != nil {
			return err
		}
		slog.Debug("found archive member",
			"member", hdr.Name,
			"size", len(content),
		)
		text = joinLines(content)
		found = true
		return pack.ErrStop
	})
	if err != nil {
		var fe *pack.FormatError
		if errors.As(err, &fe) {
			return "", &ArchiveFormatError{Err: err}
		}
		return "", err
	}
	if !found {
		return "", &EntryNotFoundError{Name: name}
	}
	return text, nil
}

// File decodes the archive and extracts the member ending with name.
func (a *Archive) File(name string) (string, error) {
	data, err := a.Bytes()
	if err != nil {
		return "", err
	}
	return Extract(data, name)
}

// joinLines splits content on "\n", "\r\n" and "\r" and rejoins the lines
// with "\n". A terminator at the very end does not start a new line.
func joinLines(content []byte) string {
	s := strings.ToValidUTF8(string(content), "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSuffix(s, "\n")
}
