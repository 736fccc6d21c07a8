package phase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Run executes the pipeline once and returns its terminal Outcome.
// It never calls the Reporter.
func Run(ctx context.Context, h Host, opts Options) Outcome {
	logger := h.logger()

	ticker, err := resolveTicker(logger, h.Input, opts)
	if err != nil {
		return hardFailure("", FailureInputDecode, err)
	}

	logger.Info("fetching kalshi market data", "ticker", ticker)

	resp, err := fetchMarket(ctx, h.Fetcher, opts.baseURL(), ticker)
	if err != nil {
		return hardFailure(ticker, FailureFetch, err)
	}

	body, ok := validateResponse(logger, ticker, resp)
	if !ok {
		return logicalError(ticker)
	}

	quote, err := DecodeQuote(body)
	if err != nil {
		logger.Error("market response did not match expected shape",
			"ticker", ticker,
			"error", err,
		)
		return hardFailure(ticker, FailureDecode, err)
	}

	logQuote(logger, opts.Verbosity, ticker, quote, body)
	return success(ticker, quote)
}

func resolveTicker(logger *slog.Logger, input []byte, opts Options) (string, error) {
	if pinned := strings.TrimSpace(opts.PinnedTicker); pinned != "" {
		logger.Debug("using pinned ticker, host input ignored", "ticker", pinned)
		return pinned, nil
	}
	return DecodeInput(input)
}

func logQuote(logger *slog.Logger, v Verbosity, ticker string, q Quote, body []byte) {
	logger.Info("fetched price (yes bid)",
		"ticker", ticker,
		"cents", q.YesBid(),
		"dollars", decimal.New(q.YesBid(), -2).StringFixed(2),
	)
	if v == VerbosityFull {
		logger.Info("market response",
			"ticker", ticker,
			"body", gjson.GetBytes(body, "@pretty").Raw,
		)
	}
}
