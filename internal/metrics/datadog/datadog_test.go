package datadog

import (
	"reflect"
	"testing"

	"github.com/oskaritimperi/csvre/internal/metrics"

	"github.com/DataDog/datadog-go/v5/statsd"
)

func TestNewBackendRequiresAddr(t *testing.T) {
	if _, err := NewBackend(Config{}); err == nil {
		t.Fatal("NewBackend with empty address succeeded, want error")
	}
}

// DogStatsD is UDP, so dialing localhost needs no running agent.
func TestNewBackendDialsUDP(t *testing.T) {
	b, err := NewBackend(Config{
		Addr:       "127.0.0.1:8125",
		Namespace:  "csvre.",
		GlobalTags: []string{"env:test"},
	})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter("csvre_records_total", 3, metrics.Labels{"kind": "processed"})
	b.ObserveDuration("csvre_run_duration_seconds", 0.5, metrics.Labels{"status": "success"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestBackendForwardsWithNoOpClient(t *testing.T) {
	// The no-op client exercises the Backend paths without any socket.
	b := &Backend{client: &statsd.NoOpClient{}}

	b.IncCounter("a", 1, nil)
	b.ObserveDuration("b", 2, metrics.Labels{"status": "failure"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestTagsFor(t *testing.T) {
	got := tagsFor(metrics.Labels{"job": "j", "kind": "processed", "status": "success"})
	want := []string{"job:j", "kind:processed", "status:success"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagsFor = %v, want %v (sorted)", got, want)
	}

	if tags := tagsFor(nil); tags != nil {
		t.Fatalf("tagsFor(nil) = %v, want nil", tags)
	}
}
