// Package tgz turns a package tarball received by the publish endpoint into
// the registry's initial metadata document.
package tgz

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoding is the transport representation of an Archive's content.
type Encoding int

const (
	// Base64 is standard, padded base64 text (npm publish attachments).
	Base64 Encoding = iota
	// RawBytes carries one byte per character, ISO-8859-1 style.
	RawBytes
)

func (e Encoding) String() string {
	switch e {
	case Base64:
		return "base64"
	case RawBytes:
		return "raw"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding maps a CLI or environment name to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base64", "":
		return Base64, nil
	case "raw", "rawbytes", "latin1", "iso-8859-1":
		return RawBytes, nil
	}
	return 0, fmt.Errorf("unknown encoding %q (want base64 or raw)", s)
}

// ErrNoInput is wrapped by the DecodeError returned for a nil Archive.
var ErrNoInput = errors.New("no archive content")

// DecodeError reports content that is not valid for its Encoding.
type DecodeError struct {
	Encoding Encoding
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s archive: %s", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Archive is a package tarball as received from a publish request.
type Archive struct {
	Content  string
	Encoding Encoding
}

// NewBase64 wraps base64 text from a publish request.
func NewBase64(content string) *Archive {
	return &Archive{Content: content, Encoding: Base64}
}

// NewRaw wraps text carrying one archive byte per character.
func NewRaw(content string) *Archive {
	return &Archive{Content: content, Encoding: RawBytes}
}

// FromBytes wraps already decoded tarball bytes, mapping each byte to one
// character so Bytes returns them unchanged.
func FromBytes(data []byte) *Archive {
	// Every byte value is a valid ISO-8859-1 character, so decoding
	// cannot fail.
	content, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return NewRaw(string(content))
}

// Bytes decodes the content into the gzip tarball it represents.
func (a *Archive) Bytes() ([]byte, error) {
	if a == nil {
		return nil, &DecodeError{Err: ErrNoInput}
	}

	switch a.Encoding {
	case Base64:
		// StdEncoding skips line breaks; only the bare alphabet is valid.
		if i := strings.IndexAny(a.Content, "\r\n"); i >= 0 {
			return nil, &DecodeError{
				Encoding: Base64,
				Err:      base64.CorruptInputError(i),
			}
		}
		data, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, &DecodeError{Encoding: Base64, Err: err}
		}
		return data, nil
	case RawBytes:
		// Characters above U+00FF have no single-byte form and are
		// substituted instead of failing the decode.
		enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
		data, err := enc.Bytes([]byte(a.Content))
		if err != nil {
			return nil, &DecodeError{Encoding: RawBytes, Err: err}
		}
		return data, nil
	}
	return nil, &DecodeError{
		Encoding: a.Encoding,
		Err:      fmt.Errorf("unsupported encoding"),
	}
}
