// Package payments wraps the external payment flow behind a provider
// interface with an explicit three-state outcome, so the checkout
// sequence owns its control flow instead of juggling success, cancel
// and error callbacks.
package payments

import "context"

type State int

const (
	StateApproved State = iota
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateApproved:
		return "approved"
	case StateCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Result is the outcome of a capture attempt. CaptureID is set only
// when State is StateApproved; Reason only when StateFailed.
// CapturedAmount is the settled value as reported by the provider
// ("4200.00"), empty when the provider does not report one.
type Result struct {
	State          State
	CaptureID      string
	CapturedAmount string
	Reason         string
}

func Approved(captureID string) Result {
	return Result{State: StateApproved, CaptureID: captureID}
}

// ApprovedAmount is Approved plus the provider-reported settled value.
func ApprovedAmount(captureID, amount string) Result {
	return Result{State: StateApproved, CaptureID: captureID, CapturedAmount: amount}
}

func Cancelled() Result {
	return Result{State: StateCancelled}
}

func Failed(reason string) Result {
	return Result{State: StateFailed, Reason: reason}
}

// Provider creates a payment order and captures it. Both calls block
// until the external service answers; cancellation goes through ctx.
type Provider interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (string, error)
	CaptureOrder(ctx context.Context, orderToken string) Result
}
