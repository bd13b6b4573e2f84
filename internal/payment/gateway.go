// Package payment wraps the third-party payment gateway: minting checkout
// orders and verifying settlement signatures.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"toolshare-backend/internal/logger"
)

// Order is the gateway-side order a client pays against.
type Order struct {
	ID          string `json:"id"`
	AmountCents int32  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

// Gateway mints orders at the payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amountCents int32, receipt string) (*Order, error)
}

type gatewayClient struct {
	http     *resty.Client
	currency string
}

// NewGateway builds a client for the provider's REST API, authenticated
// with the merchant key pair.
func NewGateway(baseURL, keyID, keySecret, currency string) Gateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetBasicAuth(keyID, keySecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &gatewayClient{http: client, currency: currency}
}

func (g *gatewayClient) CreateOrder(ctx context.Context, amountCents int32, receipt string) (*Order, error) {
	logger.ExternalServiceCall("payment-gateway", "CreateOrder", "amount_cents", amountCents, "receipt", receipt)

	body := map[string]any{
		"amount":   amountCents,
		"currency": g.currency,
		"receipt":  receipt,
	}

	var order Order
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&order).
		Post("/v1/orders")

	logger.ExternalServiceResult("payment-gateway", "CreateOrder", err, "status", resp.StatusCode())
	if err != nil {
		return nil, fmt.Errorf("gateway order request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway order response missing order id")
	}
	return &order, nil
}
