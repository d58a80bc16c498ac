package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pooldto "github.com/labpool/labpool/internal/application/pool/dto"
	spdto "github.com/labpool/labpool/internal/application/sampleproduct/dto"
	"github.com/labpool/labpool/internal/interfaces/http/handlers/testutil"
	"github.com/labpool/labpool/internal/shared/errors"
)

type mockPoolService struct {
	pool      *pooldto.PoolDTO
	list      []*pooldto.PoolDTO
	listReq   pooldto.ListPoolsRequest
	callerID  string
	createdBy string
	err       error
}

func (m *mockPoolService) Create(_ context.Context, ownerID string, _ pooldto.CreatePoolRequest) (*pooldto.PoolDTO, error) {
	m.createdBy = ownerID
	return m.pool, m.err
}

func (m *mockPoolService) Get(_ context.Context, _ string) (*pooldto.PoolDTO, error) {
	return m.pool, m.err
}

func (m *mockPoolService) List(_ context.Context, req pooldto.ListPoolsRequest) ([]*pooldto.PoolDTO, int64, error) {
	m.listReq = req
	return m.list, int64(len(m.list)), m.err
}

func (m *mockPoolService) ListMine(_ context.Context, ownerID string, _, _ int) ([]*pooldto.PoolDTO, int64, error) {
	m.callerID = ownerID
	return m.list, int64(len(m.list)), m.err
}

func (m *mockPoolService) Update(_ context.Context, callerID, _ string, _ pooldto.UpdatePoolRequest) (*pooldto.PoolDTO, error) {
	m.callerID = callerID
	return m.pool, m.err
}

func (m *mockPoolService) Delete(_ context.Context, callerID, _ string) error {
	m.callerID = callerID
	return m.err
}

func (m *mockPoolService) HardDelete(_ context.Context, _ string) error { return m.err }

func (m *mockPoolService) Restore(_ context.Context, _ string) (*pooldto.PoolDTO, error) {
	return m.pool, m.err
}

func (m *mockPoolService) Approve(_ context.Context, _ string) (*pooldto.PoolDTO, error) {
	return m.pool, m.err
}

func (m *mockPoolService) Reject(_ context.Context, _ string) (*pooldto.PoolDTO, error) {
	return m.pool, m.err
}

func samplePool() *pooldto.PoolDTO {
	price := 1000.0
	return &pooldto.PoolDTO{
		ID: testPoolID, Name: "Olive oil batch 7", SampleSource: "Market", BatchNumber: "B-7",
		PoolPrice: &price, AmountReceived: 250, Status: "Funding", TotalContributors: 3,
		IsActive: true, IsApproved: true, UserID: testUserID,
		Category: &spdto.SampleProductDTO{
			ID: testOtherID, Name: "Olive oil", Description: "Extra virgin", IsActive: true,
		},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func TestListPools_PublicFieldsOnlyForSignedInUser(t *testing.T) {
	svc := &mockPoolService{list: []*pooldto.PoolDTO{samplePool()}}
	h := NewPoolHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodGet, "/pools?include_unapproved=true", nil)
	testutil.SetAuthContext(c, principal(testUserID))
	h.ListPools(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.listReq.IncludeUnapproved)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	items := resp.DataMap()["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Olive oil batch 7", item["name"])
	assert.NotContains(t, item, "isApproved")
	assert.NotContains(t, item, "userId")

	category := item["category"].(map[string]any)
	assert.Equal(t, "Olive oil", category["name"])
	assert.NotContains(t, category, "isActive")
}

func TestGetPool_AdminGetsUserView(t *testing.T) {
	svc := &mockPoolService{pool: samplePool()}
	h := NewPoolHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodGet, "/pools/"+testPoolID, nil)
	testutil.SetURLParam(c, "id", testPoolID)
	testutil.SetAuthContext(c, adminPrincipal(testOtherID))
	h.GetPool(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	data := resp.DataMap()
	assert.Equal(t, "Olive oil batch 7", data["name"])
	assert.NotContains(t, data, "isApproved")
	assert.NotContains(t, data, "userId")
}

func TestCreatePool_OwnerIsCaller(t *testing.T) {
	svc := &mockPoolService{pool: samplePool()}
	h := NewPoolHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPost, "/pools", map[string]any{
		"name": "Olive oil batch 7", "sampleSource": "Market", "batchNumber": "B-7", "categoryId": testOtherID,
	})
	testutil.SetAuthContext(c, principal(testUserID))
	h.CreatePool(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testUserID, svc.createdBy)
}

func TestCreatePool_CategoryMustBeUUID(t *testing.T) {
	h := NewPoolHandler(&mockPoolService{}, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPost, "/pools", map[string]any{
		"name": "Olive oil batch 7", "sampleSource": "Market", "batchNumber": "B-7", "categoryId": "olive",
	})
	testutil.SetAuthContext(c, principal(testUserID))
	h.CreatePool(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePool_NonOwnerIsForbidden(t *testing.T) {
	svc := &mockPoolService{err: errors.NewForbiddenError("You can only modify your own pools")}
	h := NewPoolHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPatch, "/pools/"+testPoolID, map[string]any{"name": "Renamed"})
	testutil.SetURLParam(c, "id", testPoolID)
	testutil.SetAuthContext(c, principal(testOtherID))
	h.UpdatePool(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, testOtherID, svc.callerID)
}

func TestUpdatePool_PriceNeedsTwoDecimals(t *testing.T) {
	h := NewPoolHandler(&mockPoolService{}, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPatch, "/pools/"+testPoolID, map[string]any{"poolPrice": 12.345})
	testutil.SetURLParam(c, "id", testPoolID)
	testutil.SetAuthContext(c, principal(testUserID))
	h.UpdatePool(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApprovePool(t *testing.T) {
	svc := &mockPoolService{pool: samplePool()}
	h := NewPoolHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPut, "/pools/"+testPoolID+"/approve", nil)
	testutil.SetURLParam(c, "id", testPoolID)
	testutil.SetAuthContext(c, adminPrincipal(testOtherID))
	h.ApprovePool(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Pool approved successfully", resp.Message)
}

func TestDeletePool_NotFound(t *testing.T) {
	svc := &mockPoolService{err: errors.NewNotFoundError("Pool not found")}
	h := NewPoolHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodDelete, "/pools/"+testPoolID, nil)
	testutil.SetURLParam(c, "id", testPoolID)
	testutil.SetAuthContext(c, principal(testUserID))
	h.DeletePool(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
