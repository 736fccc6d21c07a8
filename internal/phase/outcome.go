package phase

import (
	"errors"
	"fmt"
)

// FetchErrorMessage is the fixed diagnostic reported when the upstream rejects a request.
const FetchErrorMessage = "Error while fetching series information"

// Kind tags the terminal state of one invocation.
type Kind int

const (
	KindSuccess Kind = iota + 1
	KindLogicalError
	KindHardFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindLogicalError:
		return "logical_error"
	case KindHardFailure:
		return "hard_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FailureKind classifies a HardFailure.
type FailureKind int

const (
	FailureInputDecode FailureKind = iota + 1
	FailureFetch
	FailureDecode
)

// Sentinel errors matched by errors.Is against a *HardFailureError.
var (
	ErrInputDecode = errors.New("decode input")
	ErrFetch       = errors.New("fetch market")
	ErrDecode      = errors.New("decode market response")
)

func (f FailureKind) String() string {
	switch f {
	case FailureInputDecode:
		return "input_decode"
	case FailureFetch:
		return "fetch"
	case FailureDecode:
		return "decode"
	default:
		return fmt.Sprintf("failure(%d)", int(f))
	}
}

func (f FailureKind) sentinel() error {
	switch f {
	case FailureInputDecode:
		return ErrInputDecode
	case FailureFetch:
		return ErrFetch
	case FailureDecode:
		return ErrDecode
	default:
		return errors.New(f.String())
	}
}

// HardFailureError aborts an invocation. It unwraps to both the sentinel for its
// Kind and the underlying cause.
type HardFailureError struct {
	Kind FailureKind
	Err  error
}

func (e *HardFailureError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind.sentinel(), e.Err)
}

func (e *HardFailureError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

// Outcome is the single terminal result of an invocation.
type Outcome struct {
	Kind   Kind
	Ticker string

	// Payload is the success payload or the error-channel diagnostic.
	// Empty for HardFailure.
	Payload []byte

	// Err is a *HardFailureError when Kind is KindHardFailure.
	Err error
}

func success(ticker string, q Quote) Outcome {
	return Outcome{
		Kind:    KindSuccess,
		Ticker:  ticker,
		Payload: q.Payload(),
	}
}

func logicalError(ticker string) Outcome {
	return Outcome{
		Kind:    KindLogicalError,
		Ticker:  ticker,
		Payload: []byte(FetchErrorMessage),
	}
}

func hardFailure(ticker string, kind FailureKind, err error) Outcome {
	return Outcome{
		Kind:   KindHardFailure,
		Ticker: ticker,
		Err:    &HardFailureError{Kind: kind, Err: err},
	}
}

// Failure returns the failure classification of a HardFailure outcome.
func (o Outcome) Failure() (FailureKind, bool) {
	var hf *HardFailureError
	if o.Kind != KindHardFailure || !errors.As(o.Err, &hf) {
		return 0, false
	}
	return hf.Kind, true
}
