package pack

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// ErrStop may be returned by a WalkFunc to end a walk early. Walk then
// returns nil.
var ErrStop = errors.New("stop walk")

// FormatError reports a stream that is not a valid gzip-compressed tar.
type FormatError struct {
	Layer string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s stream: %s", e.Layer, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// WalkFunc is called for every member in stream order. body yields the
// member's content and is only valid until WalkFunc returns.
type WalkFunc func(hdr *tar.Header, body io.Reader) error

// Walk decompresses r as gzip and calls fn for each tar member.
func Walk(r io.Reader, fn WalkFunc) error {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return &FormatError{Layer: "gzip", Err: err}
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &FormatError{Layer: "tar", Err: err}
		}
		if err := fn(hdr, tr); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// ReadBody reads a member body fully. Read failures mean the underlying
// stream is truncated or corrupt and are reported as a FormatError.
func ReadBody(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FormatError{Layer: "tar", Err: err}
	}
	return data, nil
}
