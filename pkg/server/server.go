// Package server owns the listening socket and the per-connection workers.
// Each accepted connection is handed to exactly one worker goroutine, which
// runs the parse/dispatch/serialize pipeline exactly once and closes the
// connection. There is no keep-alive and no pipelining.
package server

import (
	"bufio"
	"errors"
	"net"
	"sync"
	"time"

	"minihttpd/pkg/http11"
	"minihttpd/pkg/logger"
	"minihttpd/pkg/router"
	"minihttpd/pkg/telemetry"
)

// Limits configures the per-IP accept rate limiter. Zero values disable it.
type Limits struct {
	RPS   float64
	Burst int
}

// Server accepts connections and feeds them to the request pipeline.
type Server struct {
	table   *router.Table
	limiter *limiterPool

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// New builds a server around a read-only route table.
func New(table *router.Table, limits Limits) *Server {
	s := &Server{table: table}
	if limits.RPS > 0 {
		s.limiter = &limiterPool{rps: limits.RPS, burst: limits.Burst}
	}
	return s
}

// Serve accepts on ln until the listener is closed. Accept errors after
// Close are reported as nil.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Warn("accept_failed", "error", err)
			continue
		}
		if s.limiter != nil && !s.limiter.Allow(remoteIP(conn)) {
			telemetry.ObserveRejected("ratelimited")
			logger.Warn("connection_ratelimited", "remote", conn.RemoteAddr().String())
			_ = conn.Close()
			continue
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

// Close stops accepting and waits for in-flight workers to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	return err
}

// handle owns conn for its whole life: one read, one dispatch, one write.
func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	telemetry.ConnOpened()
	defer telemetry.ConnClosed()

	remote := conn.RemoteAddr().String()
	logger.Debug("connection_accepted", "remote", remote)
	start := time.Now()

	br := bufio.NewReader(conn)
	hdr, err := http11.ReadHeader(br)
	if err != nil {
		// No response bytes for unparsable requests: log and close.
		telemetry.ObserveRejected("malformed")
		logger.Error("request_rejected", "remote", remote, "error", err)
		return
	}
	body, err := http11.ReadBody(br, hdr)
	if err != nil {
		telemetry.ObserveRejected("malformed")
		logger.Error("request_rejected", "remote", remote, "method", string(hdr.Method), "path", hdr.Path, "error", err)
		return
	}

	resp := s.table.Dispatch(&http11.Request{Header: hdr, Body: body})

	n, err := resp.WriteTo(conn)
	if err != nil {
		telemetry.ObserveRejected("write_failed")
		logger.Error("response_write_failed", "remote", remote, "path", hdr.Path, "error", err)
		return
	}

	dur := time.Since(start)
	telemetry.ObserveRequest(string(hdr.Method), resp.Status, dur)
	logger.LogAccess(string(hdr.Method), hdr.Path, resp.Status, n, dur, remote)
	logger.Info("request_served", "method", string(hdr.Method), "path", hdr.Path, "status", resp.Status, "bytes", n)
}

func remoteIP(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}
