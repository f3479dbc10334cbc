package toss

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(zap.NewNop(), "test_sk_abc")
	client.APIURL = srv.URL
	return client
}

func TestConfirmSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(Payment{
			PaymentKey:  "pay_123",
			OrderID:     "order_1",
			Status:      "DONE",
			TotalAmount: 1900,
		})
	})

	payment, err := client.Confirm(context.Background(), "pay_123", "order_1", 1900)
	require.NoError(t, err)

	assert.Equal(t, "DONE", payment.Status)
	assert.Equal(t, int64(1900), payment.TotalAmount)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test_sk_abc:"))
	assert.Equal(t, wantAuth, gotAuth)

	assert.Equal(t, "pay_123", gotBody["paymentKey"])
	assert.Equal(t, "order_1", gotBody["orderId"])
	assert.Equal(t, float64(1900), gotBody["amount"])
}

func TestNewDefaultsNilLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Payment{OrderID: "order_1", Status: "DONE"})
	}))
	t.Cleanup(srv.Close)

	client := New(nil, "test_sk_abc")
	client.APIURL = srv.URL

	payment, err := client.Confirm(context.Background(), "pay_123", "order_1", 1900)
	require.NoError(t, err)
	assert.Equal(t, "DONE", payment.Status)
}

func TestConfirmToleratesUnknownFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"paymentKey": "pay_123",
			"orderId": "order_1",
			"status": "DONE",
			"totalAmount": 4900,
			"card": {"issuerCode": "61"},
			"country": "KR"
		}`))
	})

	payment, err := client.Confirm(context.Background(), "pay_123", "order_1", 4900)
	require.NoError(t, err)

	assert.Equal(t, "order_1", payment.OrderID)
	assert.Equal(t, int64(4900), payment.TotalAmount)
}

func TestConfirmProviderRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "EXCEED_MAX_CARD_INSTALLMENT_PLAN",
			"message": "카드 한도 초과",
		})
	})

	_, err := client.Confirm(context.Background(), "pay_123", "order_1", 1900)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "카드 한도 초과", apiErr.Message)
	assert.Equal(t, "EXCEED_MAX_CARD_INSTALLMENT_PLAN", apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestConfirmUnparseableRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.Confirm(context.Background(), "pay_123", "order_1", 1900)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fallbackFailureMessage, apiErr.Message)
}

func TestConfirmTransportError(t *testing.T) {
	client := New(zap.NewNop(), "test_sk_abc")
	client.APIURL = "http://127.0.0.1:0"

	_, err := client.Confirm(context.Background(), "pay_123", "order_1", 1900)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not provider rejections")
}
