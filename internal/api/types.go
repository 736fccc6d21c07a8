package api

import (
	"net/url"
	"strings"
)

// ProductionURL is the production REST base for the trade API.
const ProductionURL = "https://api.elections.kalshi.com/trade-api/v2"

// MarketURL returns {baseURL}/markets/{ticker}.
//
// The ticker is path-escaped with url.PathEscape, so characters that would change
// the route ("/", "?", "#", spaces) are percent-encoded: "A/B" becomes "A%2FB".
// Kalshi tickers ([A-Z0-9.-]) are left unchanged.
func MarketURL(baseURL, ticker string) string {
	return strings.TrimRight(baseURL, "/") + "/markets/" + url.PathEscape(ticker)
}
