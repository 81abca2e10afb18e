package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared between the server goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T, handler http.Handler) (*Server, *syncBuffer) {
	t.Helper()

	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	return New(handler, 0, time.Second, time.Second, 5*time.Second, logger), logs
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
}

func TestServer_ListenLogsURL(t *testing.T) {
	t.Parallel()

	srv, logs := newTestServer(t, okHandler())
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.listener.Close()

	_, port, err := net.SplitHostPort(srv.Addr())
	if err != nil {
		t.Fatalf("Addr %q: %v", srv.Addr(), err)
	}
	if port == "0" {
		t.Fatal("expected ephemeral port to be resolved")
	}

	wantURL := "http://localhost:" + port
	if srv.URL() != wantURL {
		t.Errorf("URL() = %s, want %s", srv.URL(), wantURL)
	}

	out := logs.String()
	if !strings.Contains(out, `msg="server listening"`) || !strings.Contains(out, "url="+wantURL) {
		t.Errorf("expected startup log with url, got: %s", out)
	}
}

func TestServer_ListenTwice(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, okHandler())
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.listener.Close()

	if err := srv.Listen(); err == nil {
		t.Fatal("expected error on second Listen")
	}
}

func TestServer_BindFailure(t *testing.T) {
	t.Parallel()

	occupied, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer occupied.Close()

	port := occupied.Addr().(*net.TCPAddr).Port
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(okHandler(), port, time.Second, time.Second, time.Second, logger)

	err = srv.Listen()
	if err == nil {
		t.Fatal("expected bind failure on occupied port")
	}
	if !strings.Contains(err.Error(), strconv.Itoa(port)) {
		t.Errorf("error should name the port, got %v", err)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	srv, logs := newTestServer(t, okHandler())
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	addr := srv.Addr()

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) ShutdownFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	srv.OnShutdown("first", record("first"))
	srv.OnShutdown("second", record("second"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Errorf("body = %q, want pong", body)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("shutdown order = %v, want [second first]", order)
	}

	if !strings.Contains(logs.String(), "server stopped gracefully") {
		t.Errorf("expected graceful shutdown log, got: %s", logs.String())
	}

	if conn, err := net.DialTimeout("tcp", addr, time.Second); err == nil {
		conn.Close()
		t.Error("expected connection refused after shutdown")
	}
}

func TestServer_ServeListensLazily(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, okHandler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Serve(ctx); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if srv.listener == nil {
		t.Error("expected Serve to bind when Listen was not called")
	}
}

func TestServer_ShutdownComponentError(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, okHandler())
	boom := errors.New("boom")
	srv.OnShutdown("broken", func(ctx context.Context) error { return boom })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Serve(ctx)
	if !errors.Is(err, boom) {
		t.Errorf("Serve error = %v, want %v", err, boom)
	}
}

func TestServer_AddrBeforeListen(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(okHandler(), 3000, time.Second, time.Second, time.Second, logger)

	if srv.Addr() != ":3000" {
		t.Errorf("Addr() = %s, want :3000", srv.Addr())
	}
	if srv.URL() != "http://localhost:3000" {
		t.Errorf("URL() = %s, want http://localhost:3000", srv.URL())
	}
}
