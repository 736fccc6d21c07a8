// Package api provides the HTTP fetch capability used to reach the Kalshi trade API.
//
// REST endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// The client issues exactly one plain GET per call. It never retries and never
// interprets the status code; classification belongs to the caller.
package api
