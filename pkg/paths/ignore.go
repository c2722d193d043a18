package paths

import (
	"path/filepath"
	"strings"
)

// DefaultIgnores lists files npm never puts in a package tarball.
var DefaultIgnores = []string{
	".git",
	".svn",
	".hg",
	"CVS",
	".DS_Store",
	"._*",
	".*.swp",
	".npmrc",
	"npm-debug.log",
	"node_modules",
	"package-lock.json",
	"*.orig",
}

// Ignore matches relative paths against gitignore-like patterns. A bare
// pattern matches any single path segment; a pattern containing "/" is
// anchored at the root; "**" spans any number of segments.
type Ignore struct {
	patterns []string
}

// NewIgnore returns an Ignore matching any of patterns.
func NewIgnore(patterns ...string) *Ignore {
	return &Ignore{patterns: patterns}
}

// WithDefaults returns an Ignore holding DefaultIgnores followed by extra.
func WithDefaults(extra ...string) *Ignore {
	all := make([]string, 0, len(DefaultIgnores)+len(extra))
	all = append(all, DefaultIgnores...)
	all = append(all, extra...)
	return NewIgnore(all...)
}

// Match reports whether relPath, slash separated, is ignored.
func (ig *Ignore) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pat := range ig.patterns {
		if matchPattern(pat, relPath) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, relPath string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		return false
	}
	if strings.Contains(pattern, "**") {
		return matchDoublestar(pattern, relPath)
	}
	if strings.Contains(pattern, "/") {
		return matchAnchored(pattern, relPath)
	}
	for _, seg := range strings.Split(relPath, "/") {
		if ok, _ := filepath.Match(pattern, seg); ok {
			return true
		}
	}
	return false
}

// matchAnchored matches pattern against relPath or any of its parent
// directories, so "build/out" also ignores "build/out/x.js".
func matchAnchored(pattern, relPath string) bool {
	segs := strings.Split(relPath, "/")
	for i := len(segs); i > 0; i-- {
		if ok, _ := filepath.Match(pattern, strings.Join(segs[:i], "/")); ok {
			return true
		}
	}
	return false
}

func matchDoublestar(pattern, relPath string) bool {
	head, tail, _ := strings.Cut(pattern, "**")
	if strings.Contains(tail, "**") {
		return false
	}
	head = strings.TrimSuffix(head, "/")
	tail = strings.TrimPrefix(tail, "/")

	switch {
	case head == "" && tail == "":
		return true
	case head == "":
		return matchAnyTail(tail, relPath)
	case tail == "":
		return relPath == head || strings.HasPrefix(relPath, head+"/")
	}
	rest, ok := strings.CutPrefix(relPath, head+"/")
	if !ok {
		return false
	}
	return matchAnyTail(tail, rest)
}

func matchAnyTail(pattern, relPath string) bool {
	segs := strings.Split(relPath, "/")
	for i := range segs {
		if ok, _ := filepath.Match(pattern, strings.Join(segs[i:], "/")); ok {
			return true
		}
	}
	return false
}
