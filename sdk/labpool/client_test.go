package labpool

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginKeepsAccessToken(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"email":"a@example.com","password":"pw"}`, string(body))
			_, _ = w.Write([]byte(`{"success":true,"data":{"access_token":"acc","refresh_token":"ref","token_type":"Bearer","expires_in":3600}}`))
		case "/api/v1/donations/user/my-donations":
			sawAuth = r.Header.Get("Authorization")
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":"d1","amount":150.5,"status":"Success"}],"total":1,"page":2,"page_size":20,"total_pages":1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1/")
	pair, err := c.Login(context.Background(), "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ref", pair.RefreshToken)

	page, err := c.MyDonations(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer acc", sawAuth)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 150.5, page.Items[0].Amount)
}

func TestCreateOrderAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Order created","data":{"donationId":"d1","orderId":"order_1","amount":15050,"currency":"INR","keyId":"rzp_test"}}`))
	}))
	defer srv.Close()

	order, err := NewClient(srv.URL).CreateOrder(context.Background(), OrderRequest{
		PoolID: "p1", Amount: 150.50, AnonymousDonorName: "Asha", AnonymousDonorEmail: "asha@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15050), order.Amount)
	assert.Equal(t, "order_1", order.OrderID)
}

func TestAPIErrorCarriesType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":{"type":"conflict_error","message":"Payment already verified"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).VerifyPayment(context.Background(), PaymentConfirmation{OrderID: "o", PaymentID: "p", Signature: "s"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "conflict_error", apiErr.Type)
	assert.Equal(t, "Payment already verified", apiErr.Message)
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PoolStats(context.Background(), "p1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
}
