package http11

// Method is an HTTP request method token as it appeared on the wire.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
)

// RequestHeader is the parsed request line plus header block. It is
// immutable once built by ReadHeader.
type RequestHeader struct {
	Method   Method
	Path     string
	RawQuery string

	// Query holds the decoded query-string mapping. Keys are unique;
	// a duplicate key keeps the last value seen.
	Query map[string]string

	// Headers maps header names to values, case-sensitive, split on the
	// first colon. Insertion order is not tracked.
	Headers map[string]string

	// FilePath is the static-asset path derived from Path: "/" maps to
	// "/index.html" and an extension-less path gets ".html" appended.
	FilePath string

	// Ext is the file extension of FilePath, including the leading dot.
	Ext string

	// ContentType is the MIME type looked up for Ext, without parameters.
	ContentType string
}

// RequestBody holds the decoded form fields of a URL-encoded request body,
// or no fields for bodies that are absent.
type RequestBody struct {
	Raw    string
	Fields map[string]string
}

// Field returns the decoded form field for key, or "" when absent.
func (b *RequestBody) Field(key string) string {
	if b == nil || b.Fields == nil {
		return ""
	}
	return b.Fields[key]
}

// Request pairs one header with one body. A Request is owned by the
// processing of a single connection and is never shared across goroutines.
type Request struct {
	Header *RequestHeader
	Body   *RequestBody
}
