package pack

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/tqbf/tgzmeta/pkg/paths"
)

// DefaultPrefix is the root folder npm puts every member under.
const DefaultPrefix = "package"

// PackTar writes files (relative to dir) to w as a gzip-compressed tar,
// each member stored under prefix. Modification times are zeroed so equal
// trees produce equal archives.
func PackTar(
	dir, prefix string,
	files []string,
	w io.Writer,
) (count int, err error) {
	tw := newTgzWriter(w)
	defer func() {
		if cerr := tw.Close(); err == nil && cerr != nil {
			count, err = 0, cerr
		}
	}()

	names := make([]string, len(files))
	for i, rel := range files {
		if err := paths.ValidateMember(rel); err != nil {
			return 0, fmt.Errorf("invalid path %s: %w", rel, err)
		}
		names[i] = memberName(prefix, rel)
	}

	for _, d := range parentDirs(names) {
		if err := tw.writeDir(d); err != nil {
			return 0, err
		}
	}

	for i, rel := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if !paths.IsWithinDir(dir, abs) {
			return 0, fmt.Errorf("path escapes dir: %s", rel)
		}
		if err := addFile(tw.tw, abs, names[i]); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func memberName(prefix, rel string) string {
	rel = paths.CleanMember(rel)
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

func addFile(tw *tar.Writer, absPath, name string) error {
	f, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  time.Time{},
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header %s: %w", name, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("write body %s: %w", name, err)
	}
	return nil
}
