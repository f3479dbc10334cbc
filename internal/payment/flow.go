package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/hanseo-dev/jasoseo-ai/internal/payment/toss"
	"go.uber.org/zap"
)

// FlowState enumerates the states a confirmation flow moves through.
type FlowState int

const (
	StateIdle FlowState = iota
	StateAwaitingRedirectParams
	StateConfirming
	StateConfirmed
	StateFailed
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingRedirectParams:
		return "awaiting_redirect_params"
	case StateConfirming:
		return "confirming"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// User-facing messages for the confirmation flow.
const (
	MsgMalformedCallback = "결제 정보가 올바르지 않습니다."
	MsgConfirmRejected   = "결제 승인에 실패했습니다."
	MsgConfirmError      = "결제 처리 중 오류가 발생했습니다."
	MsgCancelled         = "결제가 취소되었습니다."
)

// Confirmer issues the provider-side confirmation call.
type Confirmer interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*toss.Payment, error)
}

// CallbackParams are the query parameters the provider appends when it
// redirects the customer back after checkout.
type CallbackParams struct {
	PaymentKey string
	OrderID    string
	Amount     string
}

// Flow drives one payment attempt from the provider redirect to a terminal
// outcome. Confirmed and Failed are terminal: a flow instance never retries,
// and re-entry requires a new order. The one confirmation call happens in
// the Confirming state; malformed callbacks fail before it is ever issued.
type Flow struct {
	confirmer Confirmer
	logger    *zap.Logger
	state     FlowState
	outcome   Outcome
}

func NewFlow(confirmer Confirmer, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		confirmer: confirmer,
		logger:    logger,
		state:     StateIdle,
		outcome:   Pending(),
	}
}

func (f *Flow) State() FlowState {
	return f.state
}

func (f *Flow) Outcome() Outcome {
	return f.outcome
}

// Run processes the provider's success redirect and returns the terminal
// outcome. Calling Run on a finished flow returns the recorded outcome
// without side effects.
func (f *Flow) Run(ctx context.Context, params CallbackParams) Outcome {
	if f.state != StateIdle {
		return f.outcome
	}

	f.state = StateAwaitingRedirectParams

	paymentKey := strings.TrimSpace(params.PaymentKey)
	orderID := strings.TrimSpace(params.OrderID)
	amount, amountErr := strconv.ParseInt(strings.TrimSpace(params.Amount), 10, 64)

	if paymentKey == "" || orderID == "" || amountErr != nil || amount <= 0 {
		f.logger.Info("payment callback is missing required parameters",
			zap.String("order_id", orderID),
		)
		return f.fail("", MsgMalformedCallback)
	}

	f.state = StateConfirming

	payment, err := f.confirmer.Confirm(ctx, paymentKey, orderID, amount)
	if err != nil {
		var apiErr *toss.APIError
		if errors.As(err, &apiErr) {
			message := strings.TrimSpace(apiErr.Message)
			if message == "" {
				message = MsgConfirmRejected
			}
			f.logger.Info("payment confirmation rejected by provider",
				zap.String("order_id", orderID),
				zap.String("code", apiErr.Code),
			)
			return f.fail(apiErr.Code, message)
		}

		f.logger.Error("payment confirmation call failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return f.fail("", MsgConfirmError)
	}

	f.state = StateConfirmed
	f.outcome = Confirmed(payment)

	f.logger.Info("payment confirmed",
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
	)

	return f.outcome
}

// Cancel records the provider's cancellation callback. The confirmation
// endpoint is never reached on this path.
func (f *Flow) Cancel(code, message string) Outcome {
	if f.state != StateIdle {
		return f.outcome
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = MsgCancelled
	}

	f.logger.Info("payment cancelled at provider checkout",
		zap.String("code", code),
	)

	return f.fail(code, message)
}

func (f *Flow) fail(code, message string) Outcome {
	f.state = StateFailed
	f.outcome = Failed(code, message)
	return f.outcome
}
