package phase

import (
	"context"
	"errors"

	"github.com/rickgao/kalshi-oracle/internal/api"
)

var errNilResponse = errors.New("fetch capability returned no response")

// fetchMarket issues the single request for ticker. No retry is attempted.
func fetchMarket(ctx context.Context, f Fetcher, baseURL, ticker string) (*api.Response, error) {
	resp, err := f.Fetch(ctx, api.MarketURL(baseURL, ticker))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errNilResponse
	}
	return resp, nil
}
