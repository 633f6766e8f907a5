package static

import "path"

// DefaultContentType is used for any extension outside the table.
const DefaultContentType = "application/octet-stream"

// ContentType maps a file name to its content type by its final extension.
// The match is case-sensitive.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".html":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return DefaultContentType
	}
}
