package phase

import (
	"context"
	"fmt"
)

// Report delivers o to the host channels. A HardFailure is not reported; its
// error is returned so the caller can abort the invocation.
func Report(r Reporter, o Outcome) error {
	switch o.Kind {
	case KindSuccess:
		r.Success(o.Payload)
		return nil
	case KindLogicalError:
		r.Error(o.Payload)
		return nil
	case KindHardFailure:
		return o.Err
	default:
		return fmt.Errorf("unknown outcome kind %v", o.Kind)
	}
}

// Execute runs the phase and reports its outcome through h.Reporter.
// The returned error is non-nil only for a HardFailure.
func Execute(ctx context.Context, h Host, opts Options) (Outcome, error) {
	o := Run(ctx, h, opts)
	return o, Report(h.Reporter, o)
}
