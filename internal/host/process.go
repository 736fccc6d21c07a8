package host

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rickgao/kalshi-oracle/internal/phase"
)

// Exit codes returned by the command-line host.
const (
	ExitSuccess      = 0
	ExitLogicalError = 1
	ExitHardFailure  = 2
	ExitStartup      = 3
)

// ErrAlreadyReported is returned by Process.Err once a second report was attempted.
var ErrAlreadyReported = errors.New("outcome already reported")

// Process is a report sink for one invocation. Only the first report is kept;
// later calls are dropped and recorded as a violation.
type Process struct {
	out    io.Writer
	logger *slog.Logger

	mu       sync.Mutex
	kind     phase.Kind
	payload  []byte
	reported bool
	err      error
}

// NewProcess creates a Process that writes the reported payload to out.
func NewProcess(out io.Writer, logger *slog.Logger) *Process {
	if logger == nil {
		logger = slog.Default()
	}
	return &Process{out: out, logger: logger}
}

// Success implements phase.Reporter.
func (p *Process) Success(payload []byte) {
	p.report(phase.KindSuccess, payload)
}

// Error implements phase.Reporter.
func (p *Process) Error(payload []byte) {
	p.report(phase.KindLogicalError, payload)
}

func (p *Process) report(kind phase.Kind, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reported {
		p.err = fmt.Errorf("%w: first %v, then %v", ErrAlreadyReported, p.kind, kind)
		p.logger.Error("duplicate report dropped", "first", p.kind, "second", kind)
		return
	}

	p.reported = true
	p.kind = kind
	p.payload = append([]byte(nil), payload...)

	if _, err := fmt.Fprintf(p.out, "%s\n", payload); err != nil {
		p.err = fmt.Errorf("write payload: %w", err)
	}
}

// Result returns the reported kind and payload. ok is false if nothing was reported.
func (p *Process) Result() (kind phase.Kind, payload []byte, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kind, p.payload, p.reported
}

// Err returns a delivery error or a duplicate-report violation, if any.
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// ExitCode maps the invocation result to a process exit status.
// runErr is the error returned by phase.Execute.
func (p *Process) ExitCode(runErr error) int {
	if runErr != nil || p.Err() != nil {
		return ExitHardFailure
	}
	kind, _, ok := p.Result()
	if !ok {
		return ExitHardFailure
	}
	return ExitCodeFor(kind)
}

// ExitCodeFor maps an outcome kind to a process exit status.
func ExitCodeFor(kind phase.Kind) int {
	switch kind {
	case phase.KindSuccess:
		return ExitSuccess
	case phase.KindLogicalError:
		return ExitLogicalError
	default:
		return ExitHardFailure
	}
}
