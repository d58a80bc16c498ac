package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/application/donation/paymentgateway"
	"github.com/labpool/labpool/internal/shared/config"
	"github.com/labpool/labpool/internal/shared/logger"
)

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	var got razorpayOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_key", user)
		assert.Equal(t, "rzp_secret", pass)

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_ABC","amount":250000,"currency":"INR","receipt":"donation_1","status":"created"}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway(config.PaymentConfig{
		KeyID: "rzp_key", KeySecret: "rzp_secret", BaseURL: srv.URL + "/",
	}, logger.NewNopLogger())

	order, err := g.CreateOrder(context.Background(), paymentgateway.CreateOrderRequest{
		Amount: 250000, Currency: "INR", Receipt: "donation_1",
		Notes: map[string]string{"poolId": "pool-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "order_ABC", order.ID)
	assert.Equal(t, int64(250000), order.Amount)
	assert.Equal(t, int64(250000), got.Amount)
	assert.Equal(t, "pool-1", got.Notes["poolId"])
	assert.Equal(t, "rzp_key", g.KeyID())
}

func TestRazorpayGateway_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway(config.PaymentConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}, logger.NewNopLogger())

	_, err := g.CreateOrder(context.Background(), paymentgateway.CreateOrderRequest{Amount: 1, Currency: "INR"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "amount too small"))
}

func TestRazorpayGateway_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	g := NewRazorpayGateway(config.PaymentConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.CreateOrder(ctx, paymentgateway.CreateOrderRequest{Amount: 100, Currency: "INR"})
	assert.Error(t, err)
}

func TestMockGateway(t *testing.T) {
	g := NewMockGateway("")

	order, err := g.CreateOrder(context.Background(), paymentgateway.CreateOrderRequest{Amount: 500, Currency: "INR"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.ID, "order_"))
	assert.Equal(t, int64(500), order.Amount)
	assert.Equal(t, "rzp_test_mock", g.KeyID())
}

func TestNewGateway(t *testing.T) {
	log := logger.NewNopLogger()

	g, err := NewGateway(config.PaymentConfig{Provider: ProviderMock}, log)
	require.NoError(t, err)
	assert.IsType(t, &MockGateway{}, g)

	_, err = NewGateway(config.PaymentConfig{Provider: ProviderRazorpay}, log)
	assert.Error(t, err)

	g, err = NewGateway(config.PaymentConfig{Provider: ProviderRazorpay, KeyID: "k", KeySecret: "s"}, log)
	require.NoError(t, err)
	assert.IsType(t, &RazorpayGateway{}, g)

	_, err = NewGateway(config.PaymentConfig{Provider: "stripe"}, log)
	assert.Error(t, err)
}
