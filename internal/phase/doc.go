// Package phase implements the oracle execution phase that reports the current
// YES bid of a Kalshi market.
//
// The pipeline is strictly linear:
//
//	input bytes -> ticker -> one GET /markets/{ticker} -> 2xx check -> decode -> report
//
// Run is pure with respect to its Host: it performs the single fetch, logs, and
// returns exactly one Outcome without touching the report channels. Execute is the
// host boundary adapter. It reports Success and LogicalError through the Reporter
// and turns a HardFailure into a returned error so the invocation aborts.
//
// Error taxonomy:
//   - input not UTF-8: HardFailure(InputDecode)
//   - transport fault: HardFailure(Fetch), wrapping the capability's error
//   - non-2xx status: LogicalError with a fixed diagnostic, normal completion
//   - body not matching {"market":{"yes_bid":int>=0}}: HardFailure(Decode)
package phase
