package pack

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/tqbf/tgzmeta/pkg/paths"
)

// File is a regular file found under a package directory.
type File struct {
	Path string
	Mode fs.FileMode
	Size int64
}

// ListFiles walks dir and returns the regular files not matched by ig,
// sorted by path. Ignored directories are not descended into.
func ListFiles(dir string, ig *paths.Ignore) ([]File, error) {
	if ig == nil {
		ig = paths.NewIgnore()
	}

	var files []File
	err := filepath.WalkDir(
		dir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." {
				return nil
			}
			if ig.Match(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			files = append(files, File{
				Path: rel,
				Mode: info.Mode().Perm(),
				Size: info.Size(),
			})
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// FilePaths returns the Path of every file.
func FilePaths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

// TotalSize sums the sizes of files.
func TotalSize(files []File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
