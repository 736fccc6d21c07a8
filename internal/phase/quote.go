package phase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const marketSchemaURL = "market_response.json"

// marketSchema is the minimum contract a 2xx body must meet.
const marketSchema = `{
  "type": "object",
  "required": ["market"],
  "properties": {
    "market": {
      "type": "object",
      "required": ["yes_bid"],
      "properties": {
        "yes_bid": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var compiledMarketSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(marketSchemaURL, strings.NewReader(marketSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(marketSchemaURL)
})

// Quote is a decoded market quote. The zero value is not a valid quote; use NewQuote.
type Quote struct {
	yesBid int64
}

// NewQuote builds a Quote, rejecting negative bids.
func NewQuote(yesBid int64) (Quote, error) {
	if yesBid < 0 {
		return Quote{}, fmt.Errorf("yes_bid %d is negative", yesBid)
	}
	return Quote{yesBid: yesBid}, nil
}

// YesBid returns the best YES bid in cents.
func (q Quote) YesBid() int64 {
	return q.yesBid
}

// Payload returns the ASCII decimal form reported on the success channel.
func (q Quote) Payload() []byte {
	return strconv.AppendInt(nil, q.yesBid, 10)
}

// DecodeQuote parses an accepted response body into a Quote.
func DecodeQuote(body []byte) (Quote, error) {
	schema, err := compiledMarketSchema()
	if err != nil {
		return Quote{}, fmt.Errorf("compile market schema: %w", err)
	}

	doc, err := parseDocument(body)
	if err != nil {
		return Quote{}, fmt.Errorf("parse body: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Quote{}, fmt.Errorf("validate body: %w", err)
	}

	return quoteFromDocument(doc)
}

// quoteFromDocument reads market.yes_bid from the validated document. Keys are
// matched exactly, so case variants such as "MARKET" or "YES_BID" are ignored.
func quoteFromDocument(doc any) (Quote, error) {
	root, _ := doc.(map[string]any)
	market, _ := root["market"].(map[string]any)
	raw, ok := market["yes_bid"].(json.Number)
	if !ok {
		return Quote{}, errors.New("market.yes_bid is missing")
	}

	yesBid, err := raw.Int64()
	if err != nil {
		return Quote{}, fmt.Errorf("market.yes_bid %s is not an int64: %w", raw, err)
	}

	return NewQuote(yesBid)
}

// parseDocument decodes exactly one JSON value, keeping numbers exact.
func parseDocument(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after json value")
	}
	return doc, nil
}
