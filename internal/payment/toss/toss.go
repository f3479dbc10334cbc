package toss

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	apiURL      = "https://api.tosspayments.com"
	confirmPath = "/v1/payments/confirm"
	contentType = "application/json"

	fallbackFailureMessage = "결제 승인 실패"
)

// Payment is the provider's record of an approved payment. The API returns
// many more fields; only the ones the product shows are kept.
type Payment struct {
	PaymentKey  string   `json:"paymentKey" mapstructure:"paymentKey"`
	OrderID     string   `json:"orderId" mapstructure:"orderId"`
	OrderName   string   `json:"orderName" mapstructure:"orderName"`
	Status      string   `json:"status" mapstructure:"status"`
	Method      string   `json:"method" mapstructure:"method"`
	TotalAmount int64    `json:"totalAmount" mapstructure:"totalAmount"`
	Currency    string   `json:"currency" mapstructure:"currency"`
	RequestedAt string   `json:"requestedAt" mapstructure:"requestedAt"`
	ApprovedAt  string   `json:"approvedAt" mapstructure:"approvedAt"`
	Receipt     *Receipt `json:"receipt,omitempty" mapstructure:"receipt"`
}

type Receipt struct {
	URL string `json:"url" mapstructure:"url"`
}

// APIError is a rejection returned by the payments API. Message is the
// provider's user-facing text and is surfaced verbatim.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("toss api: %s (%s)", e.Message, e.Code)
}

// Client talks to the Toss Payments API. Confirmation calls are
// authenticated server-to-server with the secret key; the key never leaves
// this process.
type Client struct {
	secretKey  string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(logger *zap.Logger, secretKey string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		secretKey: secretKey,
		APIURL:    apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Confirm finalizes an approved payment with the provider. The provider
// re-validates that amount matches what the user authorized at checkout, so
// a tampered redirect fails here.
func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*Payment, error) {
	payload, err := json.Marshal(map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal confirm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+confirmPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Basic "+c.basicCredential())
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("confirm payment with toss",
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confirm payment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read confirm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fallbackFailureMessage
		}

		c.logger.Debug("toss rejected the confirmation",
			zap.String("order_id", orderID),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code),
		)

		return nil, apiErr
	}

	// The provider's record is decoded generically first so renamed or
	// additional fields never fail the confirmation.
	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}

	payment, err := decodePayment(record)
	if err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}

	return payment, nil
}

func decodePayment(record map[string]any) (*Payment, error) {
	var payment Payment

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &payment,
		// The API reports amounts as JSON numbers.
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(record); err != nil {
		return nil, err
	}

	return &payment, nil
}

// basicCredential encodes the secret key as the HTTP Basic user with an
// empty password, per the provider's authentication scheme.
func (c *Client) basicCredential() string {
	return base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
}
