package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan(t *testing.T) {
	cases := []struct {
		in      string
		want    Plan
		wantErr bool
	}{
		{in: "once", want: PlanOnce},
		{in: "pro", want: PlanPro},
		{in: " Pro ", want: PlanPro},
		{in: "enterprise", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			plan, err := ParsePlan(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, plan)
		})
	}
}

func TestPlanTiers(t *testing.T) {
	assert.Equal(t, int64(1900), PlanOnce.Amount())
	assert.Equal(t, "자소서AI 1회 이용권", PlanOnce.OrderName())

	assert.Equal(t, int64(4900), PlanPro.Amount())
	assert.Equal(t, "자소서AI Pro 월 구독", PlanPro.OrderName())
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder(PlanOnce)
	require.NoError(t, err)

	assert.Equal(t, int64(1900), order.Amount)
	assert.Equal(t, "자소서AI 1회 이용권", order.OrderName)
	assert.Equal(t, "고객", order.CustomerName)
	assert.True(t, strings.HasPrefix(order.OrderID, "order_"))
}

func TestNewOrderUnknownPlan(t *testing.T) {
	_, err := NewOrder(Plan("free"))
	assert.Error(t, err)
}

func TestNewOrderIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		order, err := NewOrder(PlanPro)
		require.NoError(t, err)

		_, dup := seen[order.OrderID]
		require.False(t, dup, "duplicate order id: %s", order.OrderID)
		seen[order.OrderID] = struct{}{}
	}
}
