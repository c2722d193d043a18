package pack

import (
	"archive/tar"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tqbf/tgzmeta/pkg/paths"
)

// UnpackTar extracts the gzip tar read from r into dir. With strip set,
// the leading path segment of every member ("package/") is dropped.
// Only directories and regular files are written; other member types are
// skipped.
func UnpackTar(r io.Reader, dir string, strip bool) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create dir: %w", err)
	}

	count := 0
	err := Walk(r, func(hdr *tar.Header, body io.Reader) error {
		if err := paths.ValidateMember(hdr.Name); err != nil {
			return err
		}
		name := paths.CleanMember(hdr.Name)
		if strip {
			if hdr.Typeflag == tar.TypeDir && !strings.Contains(name, "/") {
				return nil
			}
			name = paths.StripRoot(name)
		}

		target := filepath.Join(dir, filepath.FromSlash(name))
		if !paths.IsWithinDir(dir, target) {
			return fmt.Errorf("path escapes dir: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("mkdir %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := extractFile(body, target, hdr); err != nil {
				return err
			}
			count++
		default:
			slog.Debug("skip member",
				"name", hdr.Name,
				"type", string(hdr.Typeflag),
			)
		}
		return nil
	})
	return count, err
}

func extractFile(
	body io.Reader, target string, hdr *tar.Header,
) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("mkdir parent: %w", err)
	}

	mode := os.FileMode(hdr.Mode & 0777)
	if mode == 0 {
		mode = 0644
	}
	f, err := os.OpenFile(
		target,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		mode,
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", hdr.Name, err)
	}

	_, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	if copyErr != nil {
		return &FormatError{Layer: "tar", Err: fmt.Errorf("read %s: %w", hdr.Name, copyErr)}
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", hdr.Name, closeErr)
	}
	return nil
}
