package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	donationdto "github.com/labpool/labpool/internal/application/donation/dto"
	donationusecases "github.com/labpool/labpool/internal/application/donation/usecases"
	"github.com/labpool/labpool/internal/interfaces/http/handlers/testutil"
	"github.com/labpool/labpool/internal/shared/errors"
)

type mockCreateOrderUC struct {
	got    *donationusecases.CreateOrderCommand
	result *donationdto.CreateOrderResponse
	err    error
}

func (m *mockCreateOrderUC) Execute(_ context.Context, cmd donationusecases.CreateOrderCommand) (*donationdto.CreateOrderResponse, error) {
	m.got = &cmd
	return m.result, m.err
}

type mockVerifyPaymentUC struct {
	result *donationdto.VerifyPaymentResponse
	err    error
}

func (m *mockVerifyPaymentUC) Execute(_ context.Context, _ donationusecases.VerifyPaymentCommand) (*donationdto.VerifyPaymentResponse, error) {
	return m.result, m.err
}

type mockDonationQueries struct {
	donation *donationdto.DonationDTO
	list     []*donationdto.DonationDTO
	stats    *donationdto.PoolStatsDTO
	mineFor  string
	err      error
}

func (m *mockDonationQueries) Get(_ context.Context, _ string) (*donationdto.DonationDTO, error) {
	return m.donation, m.err
}

func (m *mockDonationQueries) List(_ context.Context, _ donationdto.ListDonationsRequest) ([]*donationdto.DonationDTO, int64, error) {
	return m.list, int64(len(m.list)), m.err
}

func (m *mockDonationQueries) ListByPool(_ context.Context, _ string, _, _ int) ([]*donationdto.DonationDTO, int64, error) {
	return m.list, int64(len(m.list)), m.err
}

func (m *mockDonationQueries) ListMine(_ context.Context, userID string, _, _ int) ([]*donationdto.DonationDTO, int64, error) {
	m.mineFor = userID
	return m.list, int64(len(m.list)), m.err
}

func (m *mockDonationQueries) PoolStats(_ context.Context, _ string) (*donationdto.PoolStatsDTO, error) {
	return m.stats, m.err
}

func sampleDonation() *donationdto.DonationDTO {
	return &donationdto.DonationDTO{
		ID:                  "d-1",
		Amount:              150.5,
		Currency:            "INR",
		Status:              "Success",
		PoolID:              testPoolID,
		AnonymousDonorName:  "Asha",
		AnonymousDonorEmail: "asha@example.com",
		ProviderOrderID:     "order_1",
		ProviderSignature:   "sig",
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
}

func newDonationHandler(create *mockCreateOrderUC, verify *mockVerifyPaymentUC, q *mockDonationQueries) *DonationHandler {
	if create == nil {
		create = &mockCreateOrderUC{}
	}
	if verify == nil {
		verify = &mockVerifyPaymentUC{}
	}
	if q == nil {
		q = &mockDonationQueries{}
	}
	return NewDonationHandler(create, verify, q, testShaper, testLogger)
}

func TestCreateOrder_AnonymousDonor(t *testing.T) {
	create := &mockCreateOrderUC{result: &donationdto.CreateOrderResponse{
		DonationID: "d-1", OrderID: "order_1", Amount: 15050, Currency: "INR", KeyID: "rzp_test",
	}}
	h := newDonationHandler(create, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/create-order", map[string]any{
		"poolId":              testPoolID,
		"amount":              150.50,
		"anonymousDonorName":  "Asha",
		"anonymousDonorEmail": "asha@example.com",
	})
	h.CreateOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, create.got)
	assert.Equal(t, int64(15050), create.got.Amount)
	assert.Empty(t, create.got.Donor.UserID)
	assert.Equal(t, "asha@example.com", create.got.Donor.Email)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "order_1", resp.DataMap()["orderId"])
}

func TestCreateOrder_SignedInDonorIsLinked(t *testing.T) {
	create := &mockCreateOrderUC{result: &donationdto.CreateOrderResponse{}}
	h := newDonationHandler(create, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/create-order", map[string]any{
		"poolId": testPoolID,
		"amount": 10,
	})
	testutil.SetAuthContext(c, principal(testUserID))
	h.CreateOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testUserID, create.got.Donor.UserID)
}

func TestCreateOrder_RejectsThirdDecimal(t *testing.T) {
	create := &mockCreateOrderUC{}
	h := newDonationHandler(create, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/create-order", map[string]any{
		"poolId": testPoolID,
		"amount": 10.005,
	})
	h.CreateOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, create.got)
}

func TestCreateOrder_GatewayFailureIsBadGateway(t *testing.T) {
	create := &mockCreateOrderUC{err: errors.NewExternalServiceError("Failed to create payment order")}
	h := newDonationHandler(create, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/create-order", map[string]any{
		"poolId": testPoolID, "amount": 10, "anonymousDonorName": "A", "anonymousDonorEmail": "a@example.com",
	})
	h.CreateOrder(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestVerifyPayment_ShapesDonationForPublicCaller(t *testing.T) {
	verify := &mockVerifyPaymentUC{result: &donationdto.VerifyPaymentResponse{
		Success: true, Message: "Payment verified successfully", Donation: sampleDonation(),
	}}
	h := newDonationHandler(nil, verify, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/verify-payment", map[string]any{
		"razorpayOrderId": "order_1", "razorpayPaymentId": "pay_1", "razorpaySignature": "sig",
	})
	h.VerifyPayment(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	data := resp.DataMap()
	assert.Equal(t, true, data["success"])

	d, ok := data["donation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Success", d["status"])
	assert.NotContains(t, d, "providerSignature")
	assert.NotContains(t, d, "anonymousDonorEmail")
	assert.NotContains(t, d, "anonymousDonorName")
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	h := newDonationHandler(nil, &mockVerifyPaymentUC{}, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/verify-payment", map[string]any{
		"razorpayOrderId": "order_1",
	})
	h.VerifyPayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPayment_ConflictPropagates(t *testing.T) {
	verify := &mockVerifyPaymentUC{err: errors.NewConflictError("Payment already verified")}
	h := newDonationHandler(nil, verify, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/donations/verify-payment", map[string]any{
		"razorpayOrderId": "order_1", "razorpayPaymentId": "pay_1", "razorpaySignature": "sig",
	})
	h.VerifyPayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetDonation_InvalidID(t *testing.T) {
	h := newDonationHandler(nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/donations/nope", nil)
	testutil.SetURLParam(c, "id", "nope")
	h.GetDonation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDonation_AdminGetsUserView(t *testing.T) {
	q := &mockDonationQueries{donation: sampleDonation()}
	h := newDonationHandler(nil, nil, q)

	c, w := testutil.NewTestContext(http.MethodGet, "/donations/"+testOtherID, nil)
	testutil.SetURLParam(c, "id", testOtherID)
	testutil.SetAuthContext(c, adminPrincipal(testUserID))
	h.GetDonation(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	data := resp.DataMap()
	assert.Equal(t, "Asha", data["anonymousDonorName"])
	assert.NotContains(t, data, "providerOrderId")
	assert.NotContains(t, data, "providerSignature")
	assert.NotContains(t, data, "anonymousDonorEmail")
}

func TestListDonations_AdminSeesProviderReferences(t *testing.T) {
	q := &mockDonationQueries{list: []*donationdto.DonationDTO{sampleDonation()}}
	h := newDonationHandler(nil, nil, q)

	c, w := testutil.NewTestContext(http.MethodGet, "/donations", nil)
	testutil.SetAuthContext(c, adminPrincipal(testUserID))
	h.ListDonations(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	items := resp.DataMap()["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "order_1", first["providerOrderId"])
	assert.Equal(t, "sig", first["providerSignature"])
	assert.Equal(t, "asha@example.com", first["anonymousDonorEmail"])
}

func TestPoolStats_KeepsFiguresAndShapesDonations(t *testing.T) {
	price := 1000.0
	q := &mockDonationQueries{stats: &donationdto.PoolStatsDTO{
		PoolID: testPoolID, PoolName: "Olive oil", PoolPrice: &price,
		AmountReceived: 150.5, RemainingAmount: 849.5, PercentageReached: 15.05, TotalDonations: 1,
		Donations: []*donationdto.DonationDTO{sampleDonation()},
	}}
	h := newDonationHandler(nil, nil, q)

	c, w := testutil.NewTestContext(http.MethodGet, "/donations/pool/"+testPoolID+"/stats", nil)
	testutil.SetURLParam(c, "poolId", testPoolID)
	h.PoolStats(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	data := resp.DataMap()
	assert.Equal(t, 849.5, data["remainingAmount"])
	assert.Equal(t, "Olive oil", data["poolName"])

	donations, ok := data["donations"].([]any)
	require.True(t, ok)
	require.Len(t, donations, 1)
	first := donations[0].(map[string]any)
	assert.Equal(t, 150.5, first["amount"])
	assert.NotContains(t, first, "providerOrderId")
}

func TestListMyDonations_UsesCaller(t *testing.T) {
	q := &mockDonationQueries{list: []*donationdto.DonationDTO{sampleDonation()}}
	h := newDonationHandler(nil, nil, q)

	c, w := testutil.NewTestContext(http.MethodGet, "/donations/user/my-donations", nil)
	testutil.SetAuthContext(c, principal(testUserID))
	h.ListMyDonations(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testUserID, q.mineFor)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	data := resp.DataMap()
	assert.EqualValues(t, 1, data["total"])
	items := data["items"].([]any)
	assert.Equal(t, "Asha", items[0].(map[string]any)["anonymousDonorName"])
}
