package pack

import (
	"archive/tar"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Entry is one in-memory archive member.
type Entry struct {
	Name string
	Mode int64
	Body []byte
}

// WriteEntries writes entries, in order, as a gzip-compressed tar.
// No directory members are added.
func WriteEntries(w io.Writer, entries ...Entry) (err error) {
	tw := newTgzWriter(w)
	defer func() {
		if cerr := tw.Close(); err == nil {
			err = cerr
		}
	}()

	for _, e := range entries {
		mode := e.Mode
		if mode == 0 {
			mode = 0644
		}
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     e.Name,
			Mode:     mode,
			Size:     int64(len(e.Body)),
			ModTime:  time.Time{},
		}
		if err := tw.tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write header %s: %w", e.Name, err)
		}
		if _, err := tw.tw.Write(e.Body); err != nil {
			return fmt.Errorf("write body %s: %w", e.Name, err)
		}
	}
	return nil
}

type tgzWriter struct {
	gw *gzip.Writer
	tw *tar.Writer
}

func newTgzWriter(w io.Writer) *tgzWriter {
	gw := gzip.NewWriter(w)
	return &tgzWriter{gw: gw, tw: tar.NewWriter(gw)}
}

func (w *tgzWriter) writeDir(name string) error {
	err := w.tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     name + "/",
		Mode:     0755,
		ModTime:  time.Time{},
	})
	if err != nil {
		return fmt.Errorf("write dir header: %w", err)
	}
	return nil
}

func (w *tgzWriter) Close() error {
	if err := w.tw.Close(); err != nil {
		w.gw.Close()
		return fmt.Errorf("close tar: %w", err)
	}
	if err := w.gw.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

// parentDirs returns every ancestor directory of names, parents before
// children.
func parentDirs(names []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, n := range names {
		dir := path.Dir(n)
		if dir == "." {
			continue
		}
		var b strings.Builder
		for i, part := range strings.Split(dir, "/") {
			if i > 0 {
				b.WriteString("/")
			}
			b.WriteString(part)
			d := b.String()
			if !seen[d] {
				seen[d] = true
				result = append(result, d)
			}
		}
	}
	return result
}
