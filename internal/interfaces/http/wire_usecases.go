package http

import (
	donationUsecases "github.com/labpool/labpool/internal/application/donation/usecases"
)

// donationUseCases holds the checkout and reporting use cases.
type donationUseCases struct {
	createOrder   *donationUsecases.CreateOrderUseCase
	verifyPayment *donationUsecases.VerifyPaymentUseCase
	queries       *donationUsecases.QueryDonationsUseCase
}

func (c *Container) initUseCases() {
	repos := c.repos
	log := c.log.Named("donation")

	c.ucs = &donationUseCases{
		createOrder: donationUsecases.NewCreateOrderUseCase(
			repos.poolRepo, repos.donationRepo, c.gateway, c.cfg.Payment.Currency, c.metrics, log,
		),
		verifyPayment: donationUsecases.NewVerifyPaymentUseCase(
			repos.donationRepo, repos.poolRepo, repos.userRepo, c.txManager,
			c.cfg.Payment.KeySecret, c.receipts, c.metrics, log,
		),
		queries: donationUsecases.NewQueryDonationsUseCase(repos.donationRepo, repos.poolRepo, log),
	}
}
