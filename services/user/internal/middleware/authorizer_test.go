package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/musicclouds/platform/pkg/tokens"
	"github.com/musicclouds/platform/services/user/internal/domain"
	"github.com/musicclouds/platform/services/user/internal/models"
	"github.com/musicclouds/platform/services/user/internal/repo"
)

type authzEnv struct {
	e     *echo.Echo
	rp    repo.GormRepo
	codec *tokens.Codec
	authz *Authorizer
}

func newAuthzEnv(t *testing.T) *authzEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Token{}))

	rp := repo.GormRepo{DB: db}
	codec := &tokens.Codec{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}

	return &authzEnv{
		e:     echo.New(),
		rp:    rp,
		codec: codec,
		authz: &Authorizer{Repo: rp, Codec: codec},
	}
}

func (env *authzEnv) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Username:     "u_" + email,
		PasswordHash: "irrelevant",
		Role:         role,
	}
	require.NoError(t, env.rp.CreateUser(context.Background(), &user))
	return &user
}

func (env *authzEnv) issueAccess(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := env.codec.MintAccess(user.Email, user.Role)
	require.NoError(t, err)
	require.NoError(t, env.rp.RecordToken(context.Background(), user.ID, token))
	return token
}

// run sends a request through Authenticate into a probe handler and reports
// the established principal, if any.
func (env *authzEnv) run(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *Principal, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	var got *Principal
	handler := env.authz.Authenticate(func(c echo.Context) error {
		if p, ok := PrincipalFrom(c); ok {
			got = &p
		}
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, got, err
}

func TestAuthorizer_NoHeader_PassesThroughUnauthenticated(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	_, principal, err := env.run(t, "")
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestAuthorizer_GarbageTokens_NeverError(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "not bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage bearer", header: "Bearer garbage"},
		{name: "junk segments", header: "Bearer a.b.c"},
		{name: "lowercase scheme", header: "bearer sometoken"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, principal, err := env.run(t, tt.header)
			require.NoError(t, err)
			assert.Nil(t, principal)
		})
	}
}

func TestAuthorizer_ValidToken_EstablishesPrincipal(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	user := env.createUser(t, "a@x.com", "ADMIN")
	token := env.issueAccess(t, user)

	_, principal, err := env.run(t, "Bearer "+token)
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "a@x.com", principal.Email)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
}

func TestAuthorizer_RevokedToken_NoPrincipal(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	user := env.createUser(t, "a@x.com", "USER")
	token := env.issueAccess(t, user)

	require.NoError(t, env.rp.RevokeAllTokens(context.Background(), user.ID))

	_, principal, err := env.run(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestAuthorizer_UnledgeredToken_NoPrincipal(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	user := env.createUser(t, "a@x.com", "USER")

	// Well-formed and well-signed, but the ledger never saw it.
	token, err := env.codec.MintAccess(user.Email, user.Role)
	require.NoError(t, err)

	_, principal, err := env.run(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestAuthorizer_RefreshTokenRejected(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	user := env.createUser(t, "a@x.com", "USER")

	refresh, err := env.codec.MintRefresh(user.Email)
	require.NoError(t, err)

	_, principal, err := env.run(t, "Bearer "+refresh)
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestAuthorizer_ExpiredToken_NoPrincipal(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	user := env.createUser(t, "a@x.com", "USER")

	base := time.Now()
	env.codec.Now = func() time.Time { return base }
	token := env.issueAccess(t, user)
	env.codec.Now = func() time.Time { return base.Add(env.codec.AccessTTL + time.Minute) }

	_, principal, err := env.run(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestAuthorizer_UnknownSubject_AuthenticationFailure(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)

	token, err := env.codec.MintAccess("ghost@x.com", "USER")
	require.NoError(t, err)

	_, principal, err := env.run(t, "Bearer "+token)
	require.Error(t, err)
	assert.Nil(t, principal)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthorizer_ValidationIsReadOnly(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)
	user := env.createUser(t, "a@x.com", "USER")
	token := env.issueAccess(t, user)

	for i := 0; i < 3; i++ {
		_, principal, err := env.run(t, "Bearer "+token)
		require.NoError(t, err)
		require.NotNil(t, principal)
	}

	rec, err := env.rp.FindToken(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, rec.Expired)
	assert.False(t, rec.Revoked)
}

func TestRequireAuthenticated(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	c := env.e.NewContext(req, httptest.NewRecorder())

	handler := RequireAuthenticated(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequirePermission_RoleGate(t *testing.T) {
	t.Parallel()

	env := newAuthzEnv(t)

	tests := []struct {
		name     string
		role     domain.Role
		wantCode int
	}{
		{name: "user lacks delete", role: domain.RoleUser, wantCode: http.StatusForbidden},
		{name: "admin may delete", role: domain.RoleAdmin, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/probe", nil)
			rec := httptest.NewRecorder()
			c := env.e.NewContext(req, rec)
			c.Set(principalKey, Principal{UserID: 1, Email: "a@x.com", Role: tt.role})

			handler := RequirePermission(domain.PermUserDelete)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			err := handler(c)

			if tt.wantCode == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}
