package daemon

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miyamura80/appctl/internal/engine"
)

// startServer binds a real Unix socket under the test temp dir and tears it
// down with the test.
func startServer(t *testing.T) string {
	t.Helper()

	app := engine.NewHeadlessContext("", nil)
	srv := New(app, engine.NewRegistry())

	socket := filepath.Join(t.TempDir(), "appctl.sock")
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(socket)
	}()
	t.Cleanup(func() {
		srv.Close()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not shut down")
		}
	})

	// Wait for the socket to come up.
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			conn.Close()
			return socket
		}
		if time.Now().After(deadline) {
			t.Fatalf("daemon socket never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func roundTrip(t *testing.T, conn net.Conn, scanner *bufio.Scanner, line string) Response {
	t.Helper()

	_, err := conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
	require.True(t, scanner.Scan(), "expected a response line")

	var resp Response
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
	return resp
}

func TestDaemonCallPing(t *testing.T) {
	socket := startServer(t)
	conn, err := net.Dial("unix", socket)
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	resp := roundTrip(t, conn, scanner, `{"id":"1","method":"call","params":{"cmd":"ping"}}`)

	assert.Equal(t, "1", resp.ID)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
	assert.Equal(t, engine.StatusPass, resp.Result.Status)

	data, ok := resp.Result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["pong"])
}

func TestDaemonDoctor(t *testing.T) {
	socket := startServer(t)
	conn, err := net.Dial("unix", socket)
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	resp := roundTrip(t, conn, scanner, `{"id":"doc-1","method":"doctor"}`)

	assert.Equal(t, "doc-1", resp.ID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "doctor", resp.Result.Command)
	assert.Equal(t, engine.StatusPass, resp.Result.Status)

	report, ok := resp.Result.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, report, "headless")
}

func TestDaemonProbeClipboardHeadless(t *testing.T) {
	socket := startServer(t)
	conn, err := net.Dial("unix", socket)
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	resp := roundTrip(t, conn, scanner, `{"id":"p1","method":"probe","params":{"target":"clipboard"}}`)

	require.NotNil(t, resp.Result)
	assert.Equal(t, engine.StatusSkip, resp.Result.Status)
}

func TestDaemonMalformedLine(t *testing.T) {
	socket := startServer(t)
	conn, err := net.Dial("unix", socket)
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	resp := roundTrip(t, conn, scanner, `{"id": not json`)

	assert.Equal(t, "unknown", resp.ID)
	assert.Nil(t, resp.Result)
	require.NotNil(t, resp.Error)
	assert.Equal(t, engine.CodeInvalidInput, resp.Error.Code)
}

func TestDaemonUnknownMethod(t *testing.T) {
	socket := startServer(t)
	conn, err := net.Dial("unix", socket)
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	resp := roundTrip(t, conn, scanner, `{"id":"m1","method":"restart"}`)

	assert.Equal(t, "m1", resp.ID)
	assert.Nil(t, resp.Result)
	require.NotNil(t, resp.Error)
	assert.Equal(t, engine.CodeInvalidInput, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "unknown method: restart")
}

func TestDaemonSurvivesMalformedThenServes(t *testing.T) {
	socket := startServer(t)
	conn, err := net.Dial("unix", socket)
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	bad := roundTrip(t, conn, scanner, `garbage`)
	require.NotNil(t, bad.Error)

	good := roundTrip(t, conn, scanner, `{"id":"2","method":"call","params":{"cmd":"ping"}}`)
	assert.Equal(t, "2", good.ID)
	require.NotNil(t, good.Result)
	assert.Equal(t, engine.StatusPass, good.Result.Status)
}

func TestDaemonReplacesStaleSocket(t *testing.T) {
	app := engine.NewHeadlessContext("", nil)

	dir := t.TempDir()
	socket := filepath.Join(dir, "stale.sock")

	// Leave a dead file behind at the socket path, as a crashed daemon
	// would. Go unlinks the socket on listener close, so plant a plain file.
	require.NoError(t, os.WriteFile(socket, nil, 0o600))

	srv := New(app, engine.NewRegistry())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(socket) }()
	defer srv.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			conn.Close()
			break
		}
		require.False(t, time.Now().After(deadline), "daemon failed to rebind stale socket")
		time.Sleep(10 * time.Millisecond)
	}
}
