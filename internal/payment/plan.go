package payment

import (
	"fmt"
	"strings"
)

// Plan identifies one of the two fixed purchase tiers.
type Plan string

const (
	// PlanOnce is a single-use pass.
	PlanOnce Plan = "once"
	// PlanPro is the monthly subscription.
	PlanPro Plan = "pro"
)

// Prices are fixed per tier, in KRW.
var tiers = map[Plan]struct {
	amount    int64
	orderName string
}{
	PlanOnce: {amount: 1900, orderName: "자소서AI 1회 이용권"},
	PlanPro:  {amount: 4900, orderName: "자소서AI Pro 월 구독"},
}

// ParsePlan resolves a plan selector from client input.
func ParsePlan(s string) (Plan, error) {
	plan := Plan(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tiers[plan]; !ok {
		return "", fmt.Errorf("unknown plan %q", s)
	}
	return plan, nil
}

// Amount returns the tier price in KRW minor units.
func (p Plan) Amount() int64 {
	return tiers[p].amount
}

// OrderName returns the human-readable name shown at checkout.
func (p Plan) OrderName() string {
	return tiers[p].orderName
}
