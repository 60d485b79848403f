package http11

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
)

// ReadHeader reads the request line and header block from br, stopping at
// the blank separator line or end-of-stream. A stream that yields no lines
// at all fails with ErrMalformedRequest rather than producing an empty
// header.
func ReadHeader(br *bufio.Reader) (*RequestHeader, error) {
	line, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading request line: %v", ErrMalformedRequest, err)
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: short request line %q", ErrMalformedRequest, line)
	}

	hdr := &RequestHeader{
		Method:  Method(fields[0]),
		Headers: map[string]string{},
	}
	hdr.Path, hdr.RawQuery = splitTarget(fields[1])
	hdr.Query = ParseQuery(hdr.RawQuery)

	for {
		line, err := readLine(br)
		if err != nil || line == "" {
			// End-of-stream before the blank line terminates the header
			// block the same way the blank line does.
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		hdr.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	hdr.FilePath = deriveFilePath(hdr.Path)
	hdr.Ext = path.Ext(hdr.FilePath)
	hdr.ContentType = contentTypeForExt(hdr.Ext)
	return hdr, nil
}

// readLine returns the next CRLF- or LF-terminated line without its
// terminator. A trailing unterminated fragment at end-of-stream counts as a
// line.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// splitTarget separates a request-target into path and optional query
// string on the first '?'.
func splitTarget(target string) (string, string) {
	p, q, _ := strings.Cut(target, "?")
	return p, q
}

// ParseQuery decodes a query string into key/value pairs split on '&' then
// '='. A key with no '=' yields an empty value; on duplicate keys the last
// value wins.
func ParseQuery(raw string) map[string]string {
	out := map[string]string{}
	if raw == "" {
		return out
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		out[k] = v
	}
	return out
}

// deriveFilePath maps a request path onto the static-asset namespace: the
// root serves the index page and extension-less paths get ".html" appended.
func deriveFilePath(p string) string {
	if p == "" || p == "/" {
		return "/index.html"
	}
	if path.Ext(p) == "" {
		return p + ".html"
	}
	return p
}

// contentTypeForExt consults the platform MIME table for ext and strips any
// parameters; unknown extensions fall back to text/html.
func contentTypeForExt(ext string) string {
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		return "text/html"
	}
	if base, _, ok := strings.Cut(ct, ";"); ok {
		return strings.TrimSpace(base)
	}
	return ct
}
