// Package simulate runs one phase as several independent nodes and checks whether
// their outcomes agree, the way an oracle network would compare them.
//
// Nodes share nothing: each gets its own Host from the factory. Agreement is a local
// diagnostic only; consensus itself belongs to the network.
package simulate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rickgao/kalshi-oracle/internal/host"
	"github.com/rickgao/kalshi-oracle/internal/phase"
	"golang.org/x/sync/errgroup"
)

// HostFactory builds the capabilities for node i. The Reporter field is ignored;
// each node reports into its own host.Capture.
type HostFactory func(node int) phase.Host

// Result is the outcome of one node.
type Result struct {
	Node    int
	Outcome phase.Outcome
	Reports []host.Report
}

// Signature identifies what the node made externally observable.
func (r Result) Signature() string {
	if r.Outcome.Kind == phase.KindHardFailure {
		return fmt.Sprintf("%v:%v", r.Outcome.Kind, r.Outcome.Err)
	}
	return fmt.Sprintf("%v:%s", r.Outcome.Kind, r.Outcome.Payload)
}

// Run executes n nodes concurrently, at most limit at a time (limit <= 0 means n).
// Results are ordered by node index.
func Run(ctx context.Context, n, limit int, newHost HostFactory, opts phase.Options) ([]Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("node count must be >= 1, got %d", n)
	}
	if limit <= 0 {
		limit = n
	}

	results := make([]Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i // per-iteration copy (go1.21 loop semantics)
		g.Go(func() error {
			capture := &host.Capture{}
			h := newHost(i)
			h.Reporter = capture

			o, _ := phase.Execute(gctx, h, opts)
			results[i] = Result{Node: i, Outcome: o, Reports: capture.Reports()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Agree reports whether every node produced a byte-identical outcome.
func Agree(results []Result) bool {
	if len(results) == 0 {
		return true
	}
	first := results[0]
	for _, r := range results[1:] {
		if r.Outcome.Kind != first.Outcome.Kind {
			return false
		}
		if !bytes.Equal(r.Outcome.Payload, first.Outcome.Payload) {
			return false
		}
		if r.Signature() != first.Signature() {
			return false
		}
	}
	return true
}

// Tally counts nodes per outcome signature.
func Tally(results []Result) map[string]int {
	counts := make(map[string]int, len(results))
	for _, r := range results {
		counts[r.Signature()]++
	}
	return counts
}
