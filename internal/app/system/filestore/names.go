package filestore

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	maxBaseLen = 100
	maxExtLen  = 10
)

// StorageName builds the on-disk name for an upload:
//
//	<groupID>_<unix millis>-<random>_<sanitized base><ext>
//
// Directory components of originalName are dropped and every character of
// the base name outside [A-Za-z0-9] becomes '_', so a crafted name cannot
// escape the content root.
func StorageName(groupID, originalName string, now time.Time, random string) string {
	base, ext := splitName(originalName)
	return fmt.Sprintf("%s_%d-%s_%s%s", sanitize(groupID), now.UnixMilli(), sanitize(random), base, ext)
}

// splitName returns the sanitized base name and extension (with its dot).
func splitName(originalName string) (string, string) {
	// Browsers on Windows have been known to send full paths.
	name := originalName
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	ext = sanitizeExt(ext)

	base = sanitize(base)
	if base == "" {
		base = "file"
	}
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	return base, ext
}

func sanitize(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) {
			b = append(b, c)
		} else {
			b = append(b, '_')
		}
	}
	return string(b)
}

func sanitizeExt(ext string) string {
	if ext == "" || ext == "." {
		return ""
	}
	b := []byte{'.'}
	for i := 1; i < len(ext); i++ {
		if isAlnum(ext[i]) {
			b = append(b, ext[i])
		}
	}
	if len(b) == 1 {
		return ""
	}
	if len(b) > maxExtLen {
		b = b[:maxExtLen]
	}
	return string(b)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// validName reports whether name is safe to use as a single path element.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "\x00")
}
