package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roledto "github.com/labpool/labpool/internal/application/role/dto"
	userdto "github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/interfaces/http/handlers/testutil"
	"github.com/labpool/labpool/internal/shared/errors"
)

type mockAuthService struct {
	login   *userdto.LoginResponse
	profile *userdto.UserDTO
	err     error
}

func (m *mockAuthService) Login(_ context.Context, _ userdto.LoginRequest) (*userdto.LoginResponse, error) {
	return m.login, m.err
}

func (m *mockAuthService) Refresh(_ context.Context, _ userdto.RefreshRequest) (*userdto.LoginResponse, error) {
	return m.login, m.err
}

func (m *mockAuthService) Profile(_ context.Context, _ string) (*userdto.UserDTO, error) {
	return m.profile, m.err
}

type mockUserService struct {
	user *userdto.UserDTO
	err  error
}

func (m *mockUserService) Create(_ context.Context, _ userdto.CreateUserRequest) (*userdto.UserDTO, error) {
	return m.user, m.err
}

func (m *mockUserService) Get(_ context.Context, _ string) (*userdto.UserDTO, error) {
	return m.user, m.err
}

func (m *mockUserService) List(_ context.Context, _ userdto.ListUsersRequest) ([]*userdto.UserDTO, int64, error) {
	return []*userdto.UserDTO{m.user}, 1, m.err
}

func (m *mockUserService) Update(_ context.Context, _ string, _ userdto.UpdateUserRequest) (*userdto.UserDTO, error) {
	return m.user, m.err
}

func (m *mockUserService) Delete(_ context.Context, _ string) error { return m.err }

func (m *mockUserService) AssignRoles(_ context.Context, _ string, _ userdto.AssignRolesRequest) (*userdto.UserDTO, error) {
	return m.user, m.err
}

func sampleUser() *userdto.UserDTO {
	return &userdto.UserDTO{
		ID: testUserID, Name: "Test User", Email: "test@example.com", IsActive: true,
		Roles:     []*roledto.RoleDTO{{ID: "r1", Name: "user", IsActive: true}},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func TestLogin(t *testing.T) {
	svc := &mockAuthService{login: &userdto.LoginResponse{
		AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900, User: sampleUser(),
	}}
	h := NewAuthHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{
		"email": "test@example.com", "password": "secret123",
	})
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "a", resp.DataMap()["access_token"])
	assert.Equal(t, "Bearer", resp.DataMap()["token_type"])
}

func TestLogin_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{"email": "not-an-email"})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
}

func TestLogin_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{err: errors.NewUnauthorizedError("Invalid credentials")}, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{
		"email": "test@example.com", "password": "wrong",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_RequiresPrincipal(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{profile: sampleUser()}, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/profile", nil)
	h.Profile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUser_ShapedByTier(t *testing.T) {
	svc := &mockUserService{user: sampleUser()}
	h := NewUserHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodGet, "/users/"+testUserID, nil)
	testutil.SetURLParam(c, "id", testUserID)
	testutil.SetAuthContext(c, principal(testUserID))
	h.GetUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	data := resp.DataMap()
	assert.Equal(t, "test@example.com", data["email"])
	assert.NotContains(t, data, "isActive")
	assert.NotContains(t, data, "createdAt")
	roles := data["roles"].([]any)
	assert.Equal(t, "user", roles[0].(map[string]any)["name"])
	assert.NotContains(t, roles[0], "isActive")

	c, w = testutil.NewTestContext(http.MethodGet, "/users/"+testUserID, nil)
	testutil.SetURLParam(c, "id", testUserID)
	testutil.SetAuthContext(c, adminPrincipal(testOtherID))
	h.GetUser(c)

	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, true, resp.DataMap()["isActive"])
}

func TestCreateUser_EmailConflict(t *testing.T) {
	svc := &mockUserService{err: errors.NewConflictError("User with this email already exists")}
	h := NewUserHandler(svc, testShaper, testLogger)

	c, w := testutil.NewTestContext(http.MethodPost, "/users", map[string]any{
		"name": "Dup", "email": "test@example.com", "password": "password1",
	})
	testutil.SetAuthContext(c, adminPrincipal(testOtherID))
	h.CreateUser(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
