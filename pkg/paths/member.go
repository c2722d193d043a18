package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ValidateMember checks that name can be used as the path of an archive
// member: non-empty, relative, and never climbing above the archive root.
func ValidateMember(name string) error {
	if name == "" {
		return fmt.Errorf("empty member path")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("member path contains null byte")
	}
	if path.IsAbs(name) || filepath.IsAbs(name) {
		return fmt.Errorf("absolute member path: %s", name)
	}
	cleaned := path.Clean(filepath.ToSlash(name))
	if cleaned == "." {
		return fmt.Errorf("member path resolves to archive root")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("member path escapes archive root: %s", name)
	}
	return nil
}

// CleanMember normalizes a member path to forward slashes with no leading
// "./".
func CleanMember(name string) string {
	name = path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(name, "./")
}

// StripRoot drops the leading path segment ("package/" in npm archives).
// A name with a single segment is returned unchanged.
func StripRoot(name string) string {
	name = CleanMember(name)
	if _, rest, ok := strings.Cut(name, "/"); ok && rest != "" {
		return rest
	}
	return name
}

func IsWithinDir(dir, full string) bool {
	rel, err := filepath.Rel(dir, full)
	if err != nil {
		return false
	}
	return rel != ".." &&
		!strings.HasPrefix(rel, ".."+string(filepath.Separator)) &&
		!filepath.IsAbs(rel)
}
