package http11

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const protocol = "HTTP/1.1"

// HeaderField is one response header line. Responses keep their headers as
// an ordered list so serialization is deterministic for a given value.
type HeaderField struct {
	Name  string
	Value string
}

// Response is a handler's result: status line metadata, insertion-ordered
// headers and a raw body. It is built by exactly one handler and consumed
// exactly once by WriteTo.
type Response struct {
	Status  int
	Text    string
	Headers []HeaderField
	Body    []byte
}

// NewResponse builds a response with the given status line.
func NewResponse(status int, text string) *Response {
	return &Response{Status: status, Text: text}
}

// SetHeader sets a header, replacing an existing field of the same name in
// place so insertion order stays stable.
func (r *Response) SetHeader(name, value string) {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			r.Headers[i].Value = value
			return
		}
	}
	r.Headers = append(r.Headers, HeaderField{Name: name, Value: value})
}

// Header returns the value of the named header, or "".
func (r *Response) Header(name string) string {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// WriteTo serializes the response as status line, header lines, blank line
// and body. Content-Length always reflects the byte length of the body and
// Content-Type is given a charset parameter when it lacks one.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	r.SetHeader("Content-Length", strconv.Itoa(len(r.Body)))
	if ct := r.Header("Content-Type"); ct != "" && !strings.Contains(ct, "charset") {
		r.SetHeader("Content-Type", ct+";charset=utf-8")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d %s\r\n", protocol, r.Status, r.Text)
	for _, h := range r.Headers {
		fmt.Fprintf(&sb, "%s: %s\r\n", h.Name, h.Value)
	}
	sb.WriteString("\r\n")

	n, err := io.WriteString(w, sb.String())
	total := int64(n)
	if err != nil {
		return total, err
	}
	m, err := w.Write(r.Body)
	return total + int64(m), err
}

// StatusText returns the reason phrase for the status codes this server
// produces.
func StatusText(status int) string {
	switch status {
	case 200:
		return "OK"
	case 302:
		return "Found"
	default:
		return "OK"
	}
}
