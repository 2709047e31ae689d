package httpds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestRemote builds a Remote against url with instant, counted sleeps.
func newTestRemote(url string, retries int, slept *atomic.Int32) *Remote {
	r := NewRemote(url, Config{
		MaxRetries:     retries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	})
	r.sleep = func(time.Duration) {
		if slept != nil {
			slept.Add(1)
		}
	}
	return r
}

func TestOpenStreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "a,b\n1,2\n")
	}))
	defer srv.Close()

	rc, err := newTestRemote(srv.URL, 0, nil).Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != "a,b\n1,2\n" {
		t.Fatalf("body = %q", got)
	}
}

/*
TestOpenRetriesServerErrors verifies that 5xx responses are retried with
backoff and a later success wins.
*/
func TestOpenRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "ok\n")
	}))
	defer srv.Close()

	var slept atomic.Int32
	rc, err := newTestRemote(srv.URL, 3, &slept).Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	if calls.Load() != 3 {
		t.Fatalf("server saw %d calls, want 3", calls.Load())
	}
	if slept.Load() != 2 {
		t.Fatalf("slept %d times, want 2", slept.Load())
	}
}

func TestOpenClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL, 3, nil).Open(context.Background())
	if err == nil {
		t.Fatal("Open of 404 succeeded")
	}
	if calls.Load() != 1 {
		t.Fatalf("server saw %d calls, want 1 (no retries on 4xx)", calls.Load())
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("error %q does not name the status", err)
	}
}

func TestOpenExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL, 2, nil).Open(context.Background())
	if err == nil {
		t.Fatal("Open succeeded against a permanently failing server")
	}
	if calls.Load() != 3 {
		t.Fatalf("server saw %d calls, want 3 (initial + 2 retries)", calls.Load())
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Fatalf("error %q does not report exhaustion", err)
	}
}

func TestOpenCanceledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRemote(srv.URL, Config{MaxRetries: 5, InitialBackoff: time.Hour})
	r.sleep = func(time.Duration) { <-ctx.Done() }
	go cancel()

	if _, err := r.Open(ctx); err == nil {
		t.Fatal("Open survived context cancellation")
	}
}
