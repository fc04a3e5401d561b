package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/config"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	gateway := NewGateway(config.GatewayConfig{Secret: "test-secret"})

	valid := sign("test-secret", "order_123", "pay_456")
	assert.True(t, gateway.VerifySignature("order_123", "pay_456", valid))

	assert.False(t, gateway.VerifySignature("order_123", "pay_456", "deadbeef"))
	assert.False(t, gateway.VerifySignature("order_999", "pay_456", valid),
		"signature is bound to the order")
	assert.False(t, gateway.VerifySignature("order_123", "pay_999", valid),
		"signature is bound to the payment")

	otherKey := NewGateway(config.GatewayConfig{Secret: "other-secret"})
	assert.False(t, otherKey.VerifySignature("order_123", "pay_456", valid))
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "test-secret", pass)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"order_abc"}`))
	}))
	defer server.Close()

	gateway := NewGateway(config.GatewayConfig{
		KeyID:    "key_test",
		Secret:   "test-secret",
		Endpoint: server.URL,
	})

	orderID, err := gateway.CreateOrder(context.Background(), 1000, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", orderID)
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := NewGateway(config.GatewayConfig{Endpoint: server.URL})

	_, err := gateway.CreateOrder(context.Background(), 1000, "booking-1")
	assert.Error(t, err)
}

func TestCreateOrderEmptyID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gateway := NewGateway(config.GatewayConfig{Endpoint: server.URL})

	_, err := gateway.CreateOrder(context.Background(), 1000, "booking-1")
	assert.Error(t, err)
}
