package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultCustomerName = "고객"

// Order describes a single payment attempt sent to the provider.
type Order struct {
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	OrderName     string `json:"orderName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

// NewOrder builds a fresh order for the given plan. Every call produces a
// distinct order id: the provider treats the id as the unit of idempotency,
// so a reused id would make a retry indistinguishable from a duplicate
// charge.
func NewOrder(plan Plan) (*Order, error) {
	tier, ok := tiers[plan]
	if !ok {
		return nil, fmt.Errorf("unknown plan %q", plan)
	}

	return &Order{
		OrderID:      newOrderID(),
		Amount:       tier.amount,
		OrderName:    tier.orderName,
		CustomerName: defaultCustomerName,
	}, nil
}

func newOrderID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), suffix)
}
