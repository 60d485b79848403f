package http11

import "errors"

// ErrMalformedRequest marks requests the parser could not make sense of:
// an unparsable request line, a bad Content-Length, or a stream that ended
// before the declared body was read. The connection layer logs these and
// closes the connection without writing a response.
var ErrMalformedRequest = errors.New("malformed request")
