package tgz

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
)

// SaveToFile writes the decoded tarball to path. The file is written under
// a temporary name and renamed into place, so on error nothing is left at
// path and any previous file there is untouched.
func (a *Archive) SaveToFile(path string) error {
	data, err := a.Bytes()
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
