package phase

import (
	"context"
	"log/slog"

	"github.com/rickgao/kalshi-oracle/internal/api"
)

// Fetcher performs one GET and returns the raw response.
// A non-nil error means a transport fault; HTTP statuses are never errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*api.Response, error)
}

// Reporter is the host's pair of output channels.
type Reporter interface {
	Success(payload []byte)
	Error(payload []byte)
}

// Host bundles the capabilities the runtime lends to one invocation.
type Host struct {
	Input    []byte
	Fetcher  Fetcher
	Reporter Reporter
	Logger   *slog.Logger
}

func (h Host) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Verbosity selects how much of a decoded response is logged.
type Verbosity string

const (
	// VerbosityBid logs only the decoded bid.
	VerbosityBid Verbosity = "bid"
	// VerbosityFull also logs the pretty-printed response body.
	VerbosityFull Verbosity = "full"
)

// ParseVerbosity maps a config string to a Verbosity. Empty means VerbosityBid.
func ParseVerbosity(s string) (Verbosity, bool) {
	switch Verbosity(s) {
	case "", VerbosityBid:
		return VerbosityBid, true
	case VerbosityFull:
		return VerbosityFull, true
	default:
		return "", false
	}
}

// Options configures a phase.
type Options struct {
	// BaseURL is the REST base; defaults to api.ProductionURL.
	BaseURL string

	// PinnedTicker, when set, is used instead of the host input.
	PinnedTicker string

	Verbosity Verbosity
}

func (o Options) baseURL() string {
	if o.BaseURL == "" {
		return api.ProductionURL
	}
	return o.BaseURL
}
