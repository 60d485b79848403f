package http11

import (
	"bufio"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadHeaderRequestLine(t *testing.T) {
	hdr, err := ReadHeader(reader("GET /index.html HTTP/1.1\r\nHost: localhost\r\n\r\n"))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Method != MethodGet {
		t.Fatalf("method = %q, want GET", hdr.Method)
	}
	if hdr.Path != "/index.html" {
		t.Fatalf("path = %q, want /index.html", hdr.Path)
	}
	if hdr.Headers["Host"] != "localhost" {
		t.Fatalf("Host header = %q, want localhost", hdr.Headers["Host"])
	}
	if hdr.Ext != ".html" {
		t.Fatalf("ext = %q, want .html", hdr.Ext)
	}
	if hdr.ContentType != "text/html" {
		t.Fatalf("content type = %q, want text/html", hdr.ContentType)
	}
}

func TestReadHeaderQueryMapping(t *testing.T) {
	hdr, err := ReadHeader(reader("GET /login?account=admin&password=pw&flag HTTP/1.1\r\n\r\n"))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	want := map[string]string{"account": "admin", "password": "pw", "flag": ""}
	if !reflect.DeepEqual(hdr.Query, want) {
		t.Fatalf("query = %v, want %v", hdr.Query, want)
	}
	if hdr.Path != "/login" {
		t.Fatalf("path = %q, want /login", hdr.Path)
	}
	if hdr.RawQuery != "account=admin&password=pw&flag" {
		t.Fatalf("raw query = %q", hdr.RawQuery)
	}
}

func TestParseQueryMatchesIndependentSplit(t *testing.T) {
	raw := "a=1&b=2&c&a=3"
	got := ParseQuery(raw)

	// reference: split on '&' then '=' independently, last value wins
	want := map[string]string{}
	for _, pair := range strings.Split(raw, "&") {
		k, v, _ := strings.Cut(pair, "=")
		want[k] = v
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseQuery(%q) = %v, want %v", raw, got, want)
	}
	if got["a"] != "3" {
		t.Fatalf("duplicate key: got %q, want last value 3", got["a"])
	}
}

func TestReadHeaderShortRequestLine(t *testing.T) {
	_, err := ReadHeader(reader("GET\r\n\r\n"))
	if !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("err = %v, want ErrMalformedRequest", err)
	}
}

func TestReadHeaderEmptyStream(t *testing.T) {
	_, err := ReadHeader(reader(""))
	if !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("err = %v, want ErrMalformedRequest", err)
	}
}

func TestReadHeaderBareLFLines(t *testing.T) {
	hdr, err := ReadHeader(reader("GET / HTTP/1.1\nHost: x\n\n"))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Headers["Host"] != "x" {
		t.Fatalf("Host = %q, want x", hdr.Headers["Host"])
	}
}

func TestReadHeaderEOFBeforeBlankLine(t *testing.T) {
	// header block terminated by end-of-stream instead of a blank line
	hdr, err := ReadHeader(reader("GET / HTTP/1.1\r\nHost: x"))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Headers["Host"] != "x" {
		t.Fatalf("Host = %q, want x", hdr.Headers["Host"])
	}
}

func TestReadHeaderValueWithColon(t *testing.T) {
	hdr, err := ReadHeader(reader("GET / HTTP/1.1\r\nReferer: http://a/b\r\n\r\n"))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Headers["Referer"] != "http://a/b" {
		t.Fatalf("Referer = %q, want http://a/b", hdr.Headers["Referer"])
	}
}

func TestDeriveFilePath(t *testing.T) {
	cases := []struct{ path, want string }{
		{"/", "/index.html"},
		{"/login", "/login.html"},
		{"/css/site.css", "/css/site.css"},
		{"/register", "/register.html"},
	}
	for _, c := range cases {
		if got := deriveFilePath(c.path); got != c.want {
			t.Fatalf("deriveFilePath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
