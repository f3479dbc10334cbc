package payment

import "github.com/hanseo-dev/jasoseo-ai/internal/payment/toss"

// OutcomeKind tags the tri-state result of a confirmation attempt.
type OutcomeKind int

const (
	// OutcomePending means the attempt has not reached a terminal state.
	OutcomePending OutcomeKind = iota
	// OutcomeConfirmed carries the provider's payment record.
	OutcomeConfirmed
	// OutcomeFailed carries a machine-readable code and a user-facing message.
	OutcomeFailed
)

// Outcome is the tagged result of a confirmation flow. Exactly one variant
// is populated: Payment for confirmed outcomes, Code/Message for failures.
type Outcome struct {
	Kind    OutcomeKind
	Payment *toss.Payment
	Code    string
	Message string
}

func Pending() Outcome {
	return Outcome{Kind: OutcomePending}
}

func Confirmed(payment *toss.Payment) Outcome {
	return Outcome{Kind: OutcomeConfirmed, Payment: payment}
}

func Failed(code, message string) Outcome {
	return Outcome{Kind: OutcomeFailed, Code: code, Message: message}
}
