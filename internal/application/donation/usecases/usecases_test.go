package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/application/donation/dto"
	"github.com/labpool/labpool/internal/application/donation/receipt"
	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/infrastructure/payment"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

const testSecret = "test_key_secret"

type recordingMetrics struct {
	mu sync.Mutex

	orders, mismatches, conflicts, successes, targets int
}

func (m *recordingMetrics) OrderCreated()         { m.inc(&m.orders) }
func (m *recordingMetrics) SignatureMismatch()    { m.inc(&m.mismatches) }
func (m *recordingMetrics) VerificationConflict() { m.inc(&m.conflicts) }
func (m *recordingMetrics) DonationSucceeded(_ int64, targetReached bool) {
	m.inc(&m.successes)
	if targetReached {
		m.inc(&m.targets)
	}
}

func (m *recordingMetrics) inc(n *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*n++
}

// racingDonations wraps a repository so MarkFailed can be made to fail or
// to lose against a concurrent success.
type racingDonations struct {
	donation.Repository
	failErr     error
	settleFirst bool
}

func (r *racingDonations) MarkFailed(ctx context.Context, id string, t donation.Transition) (bool, error) {
	if r.failErr != nil {
		return false, r.failErr
	}
	if r.settleFirst {
		if _, err := r.Repository.MarkSucceeded(ctx, id, donation.Transition{PaymentID: "pay_other"}); err != nil {
			return false, err
		}
	}
	return r.Repository.MarkFailed(ctx, id, t)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []receipt.DonationReceipt
}

func (s *recordingSender) SendDonationReceipt(_ context.Context, r receipt.DonationReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, r)
	return nil
}

type fixture struct {
	db        *gorm.DB
	pools     pool.Repository
	donations donation.Repository
	users     user.Repository
	metrics   *recordingMetrics
	sender    *recordingSender
	create    *CreateOrderUseCase
	verify    *VerifyPaymentUseCase
	query     *QueryDonationsUseCase
}

func newFixture(t *testing.T) *fixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	f := &fixture{
		db:        gdb,
		pools:     repository.NewPoolRepository(gdb, log),
		donations: repository.NewDonationRepository(gdb, log),
		users:     repository.NewUserRepository(gdb, log),
		metrics:   &recordingMetrics{},
		sender:    &recordingSender{},
	}
	f.create = NewCreateOrderUseCase(f.pools, f.donations, payment.NewMockGateway("rzp_test_key"), "INR", f.metrics, log)
	f.verify = NewVerifyPaymentUseCase(f.donations, f.pools, f.users, db.NewTransactionManager(gdb), testSecret, f.sender, f.metrics, log)
	f.query = NewQueryDonationsUseCase(f.donations, f.pools, log)
	return f
}

func (f *fixture) pool(t *testing.T, price int64) *pool.Pool {
	p, err := pool.NewPool(pool.NewPoolParams{
		Name:         "Creatine monohydrate",
		SampleSource: "Online store",
		BatchNumber:  "CR-" + t.Name(),
		CategoryID:   "cat-1",
		UserID:       "owner-1",
	})
	require.NoError(t, err)
	require.NoError(t, p.Apply(pool.PoolUpdate{PoolPrice: &price}))
	p.Approve()
	require.NoError(t, f.pools.Create(context.Background(), p))
	return p
}

func (f *fixture) user(t *testing.T, email string) *user.User {
	u, err := user.NewUser("Asha", email, "hash")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func anonymousDonor() donation.Donor {
	return donation.Donor{Name: "Ravi", Email: "ravi@example.com"}
}

func (f *fixture) order(t *testing.T, poolID string, amount int64, donor donation.Donor) *dto.CreateOrderResponse {
	resp, err := f.create.Execute(context.Background(), CreateOrderCommand{PoolID: poolID, Amount: amount, Donor: donor})
	require.NoError(t, err)
	return resp
}

func signed(orderID, paymentID string) VerifyPaymentCommand {
	return VerifyPaymentCommand{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: donation.ComputeSignature(testSecret, orderID, paymentID),
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 100000)

	t.Run("persists a pending donation without touching the pool", func(t *testing.T) {
		resp := f.order(t, p.ID(), 25000, anonymousDonor())
		assert.Equal(t, int64(25000), resp.Amount)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, "rzp_test_key", resp.KeyID)
		assert.NotEmpty(t, resp.OrderID)

		d, err := f.donations.GetByID(ctx, resp.DonationID)
		require.NoError(t, err)
		assert.Equal(t, donation.StatusPending, d.Status())
		assert.Equal(t, "anonymous", d.Notes()["userId"])

		found, err := f.pools.GetByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(0), found.AmountReceived())
		assert.Equal(t, 1, f.metrics.orders)
	})

	t.Run("signed-in donor drops anonymous fields", func(t *testing.T) {
		donor := donation.Donor{UserID: "user-1", Name: "ignored", Email: "ignored@example.com"}
		resp := f.order(t, p.ID(), 100, donor)

		d, err := f.donations.GetByID(ctx, resp.DonationID)
		require.NoError(t, err)
		assert.Equal(t, "user-1", d.Donor().UserID)
		assert.Empty(t, d.Donor().Email)
	})

	t.Run("amount above remaining quotes the maximum", func(t *testing.T) {
		_, err := f.create.Execute(ctx, CreateOrderCommand{PoolID: p.ID(), Amount: 100001, Donor: anonymousDonor()})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "Maximum allowed: 1,000.00")
	})

	t.Run("anonymous donor without email", func(t *testing.T) {
		_, err := f.create.Execute(ctx, CreateOrderCommand{PoolID: p.ID(), Amount: 100, Donor: donation.Donor{Name: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email is required for anonymous donations")
	})

	t.Run("missing pool", func(t *testing.T) {
		_, err := f.create.Execute(ctx, CreateOrderCommand{PoolID: "missing", Amount: 100, Donor: anonymousDonor()})
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestVerifyPayment_CreditsPoolAndFiresTargetOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	donor := f.user(t, "asha@example.com")

	first := f.order(t, p.ID(), 6000, donation.Donor{UserID: donor.ID()})
	second := f.order(t, p.ID(), 4000, anonymousDonor())

	resp, err := f.verify.Execute(ctx, signed(first.OrderID, "pay_1"))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Payment verified successfully", resp.Message)
	assert.Equal(t, "Success", resp.Donation.Status)

	found, err := f.pools.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, pool.StatusFunding, found.Status())

	_, err = f.verify.Execute(ctx, signed(second.OrderID, "pay_2"))
	require.NoError(t, err)

	found, err = f.pools.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, pool.StatusTargetReached, found.Status())
	assert.Equal(t, int64(10000), found.AmountReceived())
	assert.Equal(t, 2, found.TotalContributors())

	assert.Equal(t, 2, f.metrics.successes)
	assert.Equal(t, 1, f.metrics.targets)

	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "asha@example.com", f.sender.sent[0].To)
	assert.Equal(t, "ravi@example.com", f.sender.sent[1].To)
	assert.True(t, f.sender.sent[1].TargetFired)
	assert.Equal(t, "40.00", f.sender.sent[1].Amount)
}

func TestVerifyPayment_SecondCallbackIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	order := f.order(t, p.ID(), 1000, anonymousDonor())

	_, err := f.verify.Execute(ctx, signed(order.OrderID, "pay_1"))
	require.NoError(t, err)

	_, err = f.verify.Execute(ctx, signed(order.OrderID, "pay_1"))
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Contains(t, err.Error(), "Payment already verified")

	found, err := f.pools.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), found.AmountReceived(), "credited once")
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestVerifyPayment_SignatureMismatchMarksFailed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	order := f.order(t, p.ID(), 1000, anonymousDonor())

	_, err := f.verify.Execute(ctx, VerifyPaymentCommand{OrderID: order.OrderID, PaymentID: "pay_1", Signature: "bogus"})
	require.Error(t, err)
	assert.True(t, errors.IsBadRequestError(err))
	assert.Contains(t, err.Error(), "Invalid payment signature")

	d, err := f.donations.GetByID(ctx, order.DonationID)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusFailed, d.Status())

	_, err = f.verify.Execute(ctx, signed(order.OrderID, "pay_1"))
	assert.True(t, errors.IsConflictError(err), "failed donations stay failed")

	found, err := f.pools.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.AmountReceived())
	assert.Equal(t, 1, f.metrics.mismatches)
	assert.Empty(t, f.sender.sent)
}

func TestVerifyPayment_ConcurrentCallbacksCreditOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	order := f.order(t, p.ID(), 2500, anonymousDonor())

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.verify.Execute(ctx, signed(order.OrderID, "pay_1"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.IsConflictError(err):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)

	found, err := f.pools.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2500), found.AmountReceived())
	assert.Equal(t, 1, found.TotalContributors())

	d, err := f.donations.GetByID(ctx, order.DonationID)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusSuccess, d.Status())

	assert.Equal(t, 1, f.metrics.successes)
	assert.Equal(t, callers-1, f.metrics.conflicts)
	assert.Len(t, f.sender.sent, 1)
}

func TestVerifyPayment_SignatureMismatchPersistenceError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	order := f.order(t, p.ID(), 1000, anonymousDonor())

	donations := &racingDonations{Repository: f.donations, failErr: gorm.ErrInvalidTransaction}
	verify := NewVerifyPaymentUseCase(donations, f.pools, f.users, db.NewTransactionManager(f.db), testSecret, f.sender, f.metrics, logger.NewNopLogger())

	_, err := verify.Execute(ctx, VerifyPaymentCommand{OrderID: order.OrderID, PaymentID: "pay_1", Signature: "bogus"})
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
	assert.Equal(t, 0, f.metrics.mismatches)
}

func TestVerifyPayment_SignatureMismatchLosesToConcurrentSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	order := f.order(t, p.ID(), 1000, anonymousDonor())

	donations := &racingDonations{Repository: f.donations, settleFirst: true}
	verify := NewVerifyPaymentUseCase(donations, f.pools, f.users, db.NewTransactionManager(f.db), testSecret, f.sender, f.metrics, logger.NewNopLogger())

	_, err := verify.Execute(ctx, VerifyPaymentCommand{OrderID: order.OrderID, PaymentID: "pay_1", Signature: "bogus"})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Contains(t, err.Error(), "Payment already verified")

	d, err := f.donations.GetByID(ctx, order.DonationID)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusSuccess, d.Status(), "the earlier success is kept")
	assert.Equal(t, 0, f.metrics.mismatches)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestVerifyPayment_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.verify.Execute(context.Background(), signed("order_missing", "pay_1"))
	assert.True(t, errors.IsNotFoundError(err))
}

func TestQueryDonations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pool(t, 10000)
	donor := f.user(t, "asha@example.com")

	paid := f.order(t, p.ID(), 2500, donation.Donor{UserID: donor.ID()})
	f.order(t, p.ID(), 1000, anonymousDonor())
	_, err := f.verify.Execute(ctx, signed(paid.OrderID, "pay_1"))
	require.NoError(t, err)

	t.Run("by pool returns successful donations only", func(t *testing.T) {
		list, total, err := f.query.ListByPool(ctx, p.ID(), 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, paid.DonationID, list[0].ID)
		assert.Equal(t, 25.0, list[0].Amount)
	})

	t.Run("mine", func(t *testing.T) {
		list, total, err := f.query.ListMine(ctx, donor.ID(), 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, donor.ID(), list[0].UserID)

		_, _, err = f.query.ListMine(ctx, "", 1, 20)
		assert.True(t, errors.IsUnauthorizedError(err))
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		_, _, err := f.query.List(ctx, dto.ListDonationsRequest{Page: 1, PageSize: 20, Status: "Refunded"})
		assert.True(t, errors.IsValidationError(err))

		_, total, err := f.query.List(ctx, dto.ListDonationsRequest{Page: 1, PageSize: 20, Status: "Pending"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pool stats", func(t *testing.T) {
		stats, err := f.query.PoolStats(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, 100.0, *stats.PoolPrice)
		assert.Equal(t, 25.0, stats.AmountReceived)
		assert.Equal(t, 75.0, stats.RemainingAmount)
		assert.Equal(t, 25.0, stats.PercentageReached)
		assert.Equal(t, int64(1), stats.TotalDonations)
		assert.Len(t, stats.Donations, 1)
	})
}
