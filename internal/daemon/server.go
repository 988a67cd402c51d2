// Package daemon serves the command registry, probe runner, and doctor over
// a newline-delimited JSON protocol on a Unix domain socket.
//
// The server deliberately handles one client at a time: the accept loop
// serves each accepted connection to completion before accepting the next.
// Within a connection, requests are processed strictly sequentially. A
// second client blocks until the first disconnects.
package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/Miyamura80/appctl/internal/engine"
)

// placeholderID is echoed when the request id cannot be extracted from a
// malformed line.
const placeholderID = "unknown"

// maxLineBytes bounds a single request line.
const maxLineBytes = 1 << 20

// Request is one line received from a client.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one line written back. Exactly one of Result or Error is set.
type Response struct {
	ID     string                  `json:"id"`
	Result *engine.ExecutionResult `json:"result,omitempty"`
	Error  *engine.ErrorInfo       `json:"error,omitempty"`
}

// Server dispatches daemon requests against a shared, read-only context.
type Server struct {
	app      *engine.AppContext
	registry *engine.Registry
	listener net.Listener
}

// New returns a server bound to the given execution context and registry.
func New(app *engine.AppContext, registry *engine.Registry) *Server {
	return &Server{app: app, registry: registry}
}

// ListenAndServe removes any stale socket file at path, binds a Unix
// listener there, and serves until the listener is closed.
func (s *Server) ListenAndServe(path string) error {
	_ = os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("cannot bind socket %s: %w", path, err)
	}
	s.listener = ln
	s.app.Logger.Info("daemon listening", "socket", path)
	return s.Serve(ln)
}

// Serve accepts connections one at a time, serving each to completion.
func (s *Server) Serve(ln net.Listener) error {
	s.listener = ln
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.app.Logger.Error("accept failed", "error", err)
			continue
		}
		s.serveConn(conn)
	}
}

// Close shuts the listener down; Serve then returns nil.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// serveConn reads request lines until the client closes the stream or a
// write fails. A write failure ends this connection only, never the daemon.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		resp := s.handle(context.Background(), scanner.Bytes())
		data, err := json.Marshal(resp)
		if err != nil {
			data = []byte("{}")
		}
		data = append(data, '\n')
		if _, err := conn.Write(data); err != nil {
			s.app.Logger.Warn("write failed, dropping connection", "error", err)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Response{
			ID: placeholderID,
			Error: &engine.ErrorInfo{
				Code:    engine.CodeInvalidInput,
				Message: fmt.Sprintf("invalid JSON request: %v", err),
			},
		}
	}

	var result engine.ExecutionResult
	switch req.Method {
	case "call":
		var params struct {
			Cmd  string         `json:"cmd"`
			Args map[string]any `json:"args"`
		}
		_ = json.Unmarshal(req.Params, &params)
		if params.Args == nil {
			params.Args = map[string]any{}
		}
		result = s.registry.Execute(params.Cmd, params.Args, s.app)
	case "probe":
		var params struct {
			Target string `json:"target"`
		}
		_ = json.Unmarshal(req.Params, &params)
		result = engine.RunProbe(ctx, params.Target, s.app)
	case "doctor":
		result = engine.RunDoctor()
	default:
		return Response{
			ID: req.ID,
			Error: &engine.ErrorInfo{
				Code:    engine.CodeInvalidInput,
				Message: fmt.Sprintf("unknown method: %s", req.Method),
			},
		}
	}

	return Response{ID: req.ID, Result: &result}
}
