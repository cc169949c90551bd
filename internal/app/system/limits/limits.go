// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size of a JSON request body.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MultipartOverhead is added to the attachment ceiling when capping an
	// upload request, to leave room for part headers and form fields.
	MultipartOverhead = 1 << 20 // 1 MB

	// MultipartMemory is how much of a multipart upload is buffered in
	// memory before spilling to a temporary file.
	MultipartMemory = 8 << 20 // 8 MB
)
