package paymentgateway

import "context"

// PaymentGateway creates orders with the payment provider. Signature
// verification of the provider callback is a pure function of the key
// secret and lives with the donation domain.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	// KeyID is the public key the client checkout needs.
	KeyID() string
}

// CreateOrderRequest carries the amount in minor units (paise for INR).
type CreateOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}
