package util

import (
	"errors"
	"strings"
)

// ErrBadFileName is returned for empty names and traversal attempts.
var ErrBadFileName = errors.New("invalid file name")

// SanitizeFileName reduces an uploaded file name to a bare base name.
// Directory components are stripped rather than escaped; some browsers
// still submit a full client-side path.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	if s == "" || s == "." || strings.Contains(s, "..") {
		return "", ErrBadFileName
	}
	return s, nil
}
