package payment

import (
	"context"

	"github.com/labpool/labpool/internal/application/donation/paymentgateway"
	"github.com/labpool/labpool/internal/shared/id"
)

// MockGateway accepts every order without a network call.
type MockGateway struct {
	keyID string
}

func NewMockGateway(keyID string) *MockGateway {
	if keyID == "" {
		keyID = "rzp_test_mock"
	}
	return &MockGateway{keyID: keyID}
}

func (m *MockGateway) KeyID() string {
	return m.keyID
}

func (m *MockGateway) CreateOrder(ctx context.Context, req paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &paymentgateway.Order{
		ID:       id.WithPrefix("order"),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}
