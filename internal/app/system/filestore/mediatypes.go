package filestore

import (
	"mime"
	"strings"
)

// allowedMediaTypes lists the declared media types accepted for upload:
// PDF, PowerPoint, Word, Excel, common images and common videos. The
// non-standard video/avi, video/mov and video/wmv spellings are sent by some
// browsers and are accepted alongside the registered names.
var allowedMediaTypes = map[string]struct{}{
	"application/pdf":               {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},

	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/webp": {},

	"video/mp4":       {},
	"video/avi":       {},
	"video/x-msvideo": {},
	"video/mov":       {},
	"video/quicktime": {},
	"video/wmv":       {},
	"video/x-ms-wmv":  {},
	"video/webm":      {},
}

// AllowedMediaType reports whether a declared media type may be uploaded.
// Parameters (e.g. "; charset=binary") and case are ignored.
func AllowedMediaType(mediaType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}
	_, ok := allowedMediaTypes[mt]
	return ok
}
