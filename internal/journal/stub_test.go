package journal

import (
	"context"

	"github.com/rickgao/kalshi-oracle/internal/api"
)

type stubFetcher struct {
	status int
	body   string
}

func (s stubFetcher) Fetch(context.Context, string) (*api.Response, error) {
	return &api.Response{StatusCode: s.status, Body: []byte(s.body)}, nil
}
