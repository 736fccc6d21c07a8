package host

import (
	"sync"

	"github.com/rickgao/kalshi-oracle/internal/phase"
)

// Report is one recorded channel call.
type Report struct {
	Kind    phase.Kind
	Payload []byte
}

// Capture records every channel call in memory.
type Capture struct {
	mu      sync.Mutex
	reports []Report
}

// Success implements phase.Reporter.
func (c *Capture) Success(payload []byte) {
	c.add(phase.KindSuccess, payload)
}

// Error implements phase.Reporter.
func (c *Capture) Error(payload []byte) {
	c.add(phase.KindLogicalError, payload)
}

func (c *Capture) add(kind phase.Kind, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, Report{Kind: kind, Payload: append([]byte(nil), payload...)})
}

// Reports returns a copy of all recorded calls in order.
func (c *Capture) Reports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Report(nil), c.reports...)
}
