package payment

import (
	"fmt"

	"github.com/labpool/labpool/internal/application/donation/paymentgateway"
	"github.com/labpool/labpool/internal/shared/config"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	ProviderRazorpay = "razorpay"
	ProviderMock     = "mock"
)

// NewGateway selects the implementation named by cfg.Provider.
func NewGateway(cfg config.PaymentConfig, log logger.Interface) (paymentgateway.PaymentGateway, error) {
	switch cfg.Provider {
	case ProviderRazorpay:
		if cfg.KeyID == "" || cfg.KeySecret == "" {
			return nil, fmt.Errorf("razorpay provider needs payment.key_id and payment.key_secret")
		}
		return NewRazorpayGateway(cfg, log.With("component", "payment.razorpay")), nil
	case "", ProviderMock:
		return NewMockGateway(cfg.KeyID), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
