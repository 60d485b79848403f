package http11

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// ReadBody reads the fixed-length request body declared by Content-Length.
// GET requests never carry a body here: reading is skipped entirely even
// when a Content-Length header is present. A missing Content-Length is
// treated as zero-length; an unparsable or negative one, or a stream that
// ends before the declared count, is a malformed request.
func ReadBody(br *bufio.Reader, hdr *RequestHeader) (*RequestBody, error) {
	if hdr.Method == MethodGet {
		return &RequestBody{Fields: map[string]string{}}, nil
	}

	cl, ok := hdr.Headers["Content-Length"]
	if !ok {
		return &RequestBody{Fields: map[string]string{}}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(cl))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid Content-Length %q", ErrMalformedRequest, cl)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, fmt.Errorf("%w: short body read: %v", ErrMalformedRequest, err)
	}

	raw := string(buf)
	return &RequestBody{Raw: raw, Fields: parseForm(raw)}, nil
}

// parseForm decodes a URL-encoded form body with the same split rules as
// the query string, percent-unescaping values where possible.
func parseForm(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if uk, err := url.QueryUnescape(k); err == nil {
			k = uk
		}
		if uv, err := url.QueryUnescape(v); err == nil {
			v = uv
		}
		out[k] = v
	}
	return out
}
