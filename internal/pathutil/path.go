package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize converts either separator to the host separator and cleans the path
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	p = strings.ReplaceAll(p, `\`, "/")
	return filepath.Clean(filepath.FromSlash(p))
}

// IsAbs reports whether p is absolute on the host or carries a drive letter
func IsAbs(p string) bool {
	if filepath.IsAbs(p) {
		return true
	}

	return len(p) >= 3 && isLetter(p[0]) && p[1] == ':' && (p[2] == '/' || p[2] == '\\')
}

// Resolve joins p onto baseDir unless it is already absolute, then normalizes it
func Resolve(baseDir, p string) string {
	if IsAbs(p) || baseDir == "" {
		return Normalize(p)
	}

	return Normalize(filepath.Join(Normalize(baseDir), Normalize(p)))
}

// Dir returns the directory of path, accepting either separator
func Dir(path string) string {
	return filepath.Dir(Normalize(path))
}

// BaseName returns the last element of path, accepting either separator
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}

	return path
}

// Abs returns the absolute normalized form of path, or its normalized form
// when the working directory cannot be determined
func Abs(path string) string {
	if IsAbs(path) {
		return Normalize(path)
	}

	abs, err := filepath.Abs(Normalize(path))
	if err != nil {
		return Normalize(path)
	}

	return abs
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
