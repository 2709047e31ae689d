// Package datadog implements a Datadog backend for the metrics package.
//
// It adapts the generic metrics.Backend interface to Datadog's DogStatsD
// protocol using the official statsd client: labels become tags, counters
// and duration observations are forwarded to a local or remote agent. All
// Datadog-specific dependencies stay in this package so the rest of the
// program can swap backends without changes.
package datadog

import (
	"fmt"
	"sort"
	"time"

	"github.com/oskaritimperi/csvre/internal/metrics"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Config holds Datadog backend configuration.
type Config struct {
	// Addr is the DogStatsD address, e.g. "127.0.0.1:8125" or
	// "unix:///path/to/socket".
	Addr string

	// Namespace is an optional prefix added to all metric names, e.g. "csvre.".
	Namespace string

	// GlobalTags are tags applied to all metrics emitted by this backend,
	// e.g. []string{"env:prod", "service:csvre"}.
	GlobalTags []string
}

// Backend is a Datadog implementation of metrics.Backend. It wraps a
// statsd.Client; the same instance is intended to be installed globally via
// metrics.SetBackend.
type Backend struct {
	client statsd.ClientInterface
}

// NewBackend dials the DogStatsD endpoint and returns a ready Backend.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("datadog: statsd address is required")
	}

	opts := []statsd.Option{}
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}

	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: dial statsd: %w", err)
	}
	return &Backend{client: c}, nil
}

// IncCounter forwards a counter increment with labels translated to tags.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	_ = b.client.Count(name, int64(delta), tagsFor(labels), 1)
}

// ObserveDuration forwards a duration observation as a timing metric.
func (b *Backend) ObserveDuration(name string, seconds float64, labels metrics.Labels) {
	_ = b.client.Timing(name, time.Duration(seconds*float64(time.Second)), tagsFor(labels), 1)
}

// Flush drains the client's buffer to the agent.
func (b *Backend) Flush() error {
	return b.client.Flush()
}

// tagsFor converts labels into "key:value" tags in deterministic order.
func tagsFor(labels metrics.Labels) []string {
	if len(labels) == 0 {
		return nil
	}
	tags := make([]string, 0, len(labels))
	for k, v := range labels {
		tags = append(tags, k+":"+v)
	}
	sort.Strings(tags)
	return tags
}
