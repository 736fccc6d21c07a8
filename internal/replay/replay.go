// Package replay serves and records captured upstream responses so a phase can be
// re-run offline against exactly the bytes a live run saw.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rickgao/kalshi-oracle/internal/api"
	"gopkg.in/yaml.v3"
)

// Capture is one recorded HTTP exchange.
type Capture struct {
	URL    string `yaml:"url,omitempty"`
	Status int    `yaml:"status"`
	Body   string `yaml:"body"`
}

// Load reads a capture file.
func Load(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture file: %w", err)
	}

	var c Capture
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse capture yaml: %w", err)
	}
	if c.Status == 0 {
		return nil, errors.New("capture status is required")
	}
	return &c, nil
}

// Save writes c to path.
func (c *Capture) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal capture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write capture file: %w", err)
	}
	return nil
}

// Response returns a fresh api.Response holding the captured bytes.
func (c *Capture) Response() *api.Response {
	return &api.Response{
		StatusCode: c.Status,
		Body:       []byte(c.Body),
	}
}

// Fetcher answers every request with the same captured response.
type Fetcher struct {
	capture *Capture

	mu   sync.Mutex
	urls []string
}

// NewFetcher creates a Fetcher serving c.
func NewFetcher(c *Capture) *Fetcher {
	return &Fetcher{capture: c}
}

// Fetch implements phase.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*api.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	return f.capture.Response(), nil
}

// URLs returns the requested URLs in order.
func (f *Fetcher) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// Upstream is the live fetch capability a Recorder wraps.
type Upstream interface {
	Fetch(ctx context.Context, url string) (*api.Response, error)
}

// Recorder passes requests through to an upstream fetcher and keeps the last
// completed exchange.
type Recorder struct {
	next Upstream

	mu   sync.Mutex
	last *Capture
}

// NewRecorder wraps next.
func NewRecorder(next Upstream) *Recorder {
	return &Recorder{next: next}
}

// Fetch implements phase.Fetcher.
func (r *Recorder) Fetch(ctx context.Context, url string) (*api.Response, error) {
	resp, err := r.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		r.mu.Lock()
		r.last = &Capture{URL: url, Status: resp.StatusCode, Body: string(resp.Body)}
		r.mu.Unlock()
	}
	return resp, nil
}

// Last returns the most recent exchange, or nil if none completed.
func (r *Recorder) Last() *Capture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
