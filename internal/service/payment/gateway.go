package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jwalitptl/salon-api/internal/config"
)

// Gateway is the external payment provider, consumed as a black box:
// create a remote order, verify a callback signature.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type httpGateway struct {
	keyID    string
	secret   string
	endpoint string
	client   *http.Client
}

func NewGateway(cfg config.GatewayConfig) Gateway {
	return &httpGateway{
		keyID:    cfg.KeyID,
		secret:   cfg.Secret,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *httpGateway) CreateOrder(ctx context.Context, amount int64, receipt string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("gateway order request returned %d", resp.StatusCode)
	}

	var order struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", fmt.Errorf("failed to decode order response: %w", err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("gateway returned empty order id")
	}
	return order.ID, nil
}

// VerifySignature checks the HMAC-SHA256 of "orderID|paymentID" against the
// signature the gateway sent with its callback.
func (g *httpGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
