package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response is the raw result of a completed HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// IsOK reports whether the status is a 2xx success.
func (r *Response) IsOK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetch performs a single GET on rawURL with no extra headers.
// Any status code is returned as a Response; only transport faults yield an error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("http response received",
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
