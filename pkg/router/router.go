// Package router maps (method, path) pairs onto handlers. The table is
// built once at startup and read-only at request time.
package router

import (
	"minihttpd/pkg/http11"
)

// Handler produces a response from a request. Handlers are pure with
// respect to the dispatcher: no retries, timeouts or backpressure happen
// here.
type Handler func(*http11.Request) *http11.Response

// Table is the route table. Register before serving; Dispatch never
// mutates it, so concurrent dispatch from many connection workers is safe.
type Table struct {
	routes   map[http11.Method]map[string]Handler
	fallback Handler
}

// New builds an empty table whose unmatched requests land on fallback,
// typically the static-file handler.
func New(fallback Handler) *Table {
	return &Table{
		routes:   map[http11.Method]map[string]Handler{},
		fallback: fallback,
	}
}

// Register binds a handler to an exact (method, path) pair. At most one
// handler exists per pair; a later registration replaces an earlier one.
func (t *Table) Register(method http11.Method, path string, h Handler) {
	m, ok := t.routes[method]
	if !ok {
		m = map[string]Handler{}
		t.routes[method] = m
	}
	m[path] = h
}

// Dispatch runs exactly one handler for the request. Selection order: the
// exact (method, path) registration; then the GET table regardless of the
// request method; then the fallback handler. The cross-method consultation
// of the GET table is a deliberate compatibility behavior, kept on purpose.
func (t *Table) Dispatch(req *http11.Request) *http11.Response {
	if m, ok := t.routes[req.Header.Method]; ok {
		if h, ok := m[req.Header.Path]; ok {
			return h(req)
		}
	}
	if req.Header.Method != http11.MethodGet {
		if m, ok := t.routes[http11.MethodGet]; ok {
			if h, ok := m[req.Header.Path]; ok {
				return h(req)
			}
		}
	}
	return t.fallback(req)
}
