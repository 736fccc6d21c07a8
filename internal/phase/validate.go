package phase

import (
	"log/slog"
	"strings"

	"github.com/rickgao/kalshi-oracle/internal/api"
	"github.com/tidwall/gjson"
)

// validateResponse accepts any 2xx response and returns its body untouched.
// A rejected response is logged with its status and body text.
func validateResponse(logger *slog.Logger, ticker string, resp *api.Response) ([]byte, bool) {
	if resp.IsOK() {
		return resp.Body, true
	}

	attrs := []any{
		"ticker", ticker,
		"status", resp.StatusCode,
		"body", strings.ToValidUTF8(string(resp.Body), "\uFFFD"),
	}
	if gjson.ValidBytes(resp.Body) {
		if code := gjson.GetBytes(resp.Body, "error.code"); code.Exists() {
			attrs = append(attrs, "api_error_code", code.String())
		}
		if msg := gjson.GetBytes(resp.Body, "error.message"); msg.Exists() {
			attrs = append(attrs, "api_error_message", msg.String())
		}
	}
	logger.Error("market http response was rejected", attrs...)

	return nil, false
}
