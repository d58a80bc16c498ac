package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	permissionInfra "github.com/labpool/labpool/internal/infrastructure/permission"
	"github.com/labpool/labpool/internal/infrastructure/ratelimit"
	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var abilities = permissionInfra.NewAbilityFactory(logger.NewNopLogger())

type stubResolver struct {
	users map[string]*user.User
}

func (r *stubResolver) Resolve(_ context.Context, userID string) (*access.Principal, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, errors.NewUnauthorizedError("User not found")
	}
	return &access.Principal{User: u, Ability: abilities.For(u.Subject())}, nil
}

func newUser(id string, roles ...*permission.Role) *user.User {
	return user.ReconstructUser(user.UserReconstructParams{
		ID: id, Name: "Test " + id, Email: id + "@example.com", IsActive: true, Roles: roles,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
}

func roleWith(name, resource, action string) *permission.Role {
	p := permission.ReconstructPermission(permission.PermissionReconstructParams{
		ID: "perm-" + name, Name: resource + "." + action, Resource: resource, Action: action, IsActive: true,
	})
	return permission.ReconstructRole(permission.RoleReconstructParams{
		ID: "role-" + name, Name: name, IsActive: true, Permissions: []*permission.Permission{p},
	})
}

type fixture struct {
	jwt    *auth.JWTService
	authMW *AuthMiddleware
	permMW *PermissionMiddleware
}

func newFixture() *fixture {
	jwt := auth.NewJWTService("test-secret", 15, 7)
	resolver := &stubResolver{users: map[string]*user.User{
		"u-plain":  newUser("u-plain"),
		"u-reader": newUser("u-reader", roleWith("reader", "user", "read")),
	}}
	log := logger.NewNopLogger()
	return &fixture{
		jwt:    jwt,
		authMW: NewAuthMiddleware(jwt, resolver, log),
		permMW: NewPermissionMiddleware(log),
	}
}

func (f *fixture) token(t *testing.T, userID string) string {
	pair, err := f.jwt.Generate(userID)
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *fixture) router(op access.Operation) *gin.Engine {
	r := gin.New()
	r.Use(f.authMW.Authenticate())
	r.GET("/users/:id", f.permMW.Require(op), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	r.GET("/me", f.authMW.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, GetPrincipal(c).UserID())
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequire_AnonymousIsUnauthorized(t *testing.T) {
	f := newFixture()
	w := do(f.router(access.OpUsersGet), "/users/u-plain", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequire_ZeroRoleUserReadsOnlyThemself(t *testing.T) {
	f := newFixture()
	r := f.router(access.OpUsersGet)
	token := f.token(t, "u-plain")

	w := do(r, "/users/u-plain", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-plain", w.Body.String())

	w = do(r, "/users/u-reader", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequire_GrantedRoleReadsAnyUser(t *testing.T) {
	f := newFixture()
	w := do(f.router(access.OpUsersGet), "/users/u-plain", f.token(t, "u-reader"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequire_PublicOperationNeedsNoToken(t *testing.T) {
	f := newFixture()
	w := do(f.router(access.OpDonationsPoolStats), "/users/anything", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_InvalidTokenContinuesAnonymously(t *testing.T) {
	f := newFixture()
	r := f.router(access.OpDonationsPoolStats)

	w := do(r, "/users/x", "not-a-jwt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_RefreshTokenIsNotAccepted(t *testing.T) {
	f := newFixture()
	pair, err := f.jwt.Generate("u-plain")
	require.NoError(t, err)

	w := do(f.router(access.OpUsersGet), "/me", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_UnknownSubjectIsAnonymous(t *testing.T) {
	f := newFixture()
	w := do(f.router(access.OpUsersGet), "/me", f.token(t, "ghost"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.Config{RequestsPerMinute: 60, Burst: 2})
	r := gin.New()
	r.Use(RateLimit(limiter, "test", logger.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "/", "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID)) })

	w := do(r, "/", "")
	generated := w.Header().Get(constants.HeaderXRequestID)
	assert.Len(t, generated, 26)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "client-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-id", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := do(r, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), constants.ErrMsgInternalServerError)
}
