package backend_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sweetsprouts/backend/internal/domain"
	httpapi "github.com/sweetsprouts/backend/internal/http"
	"github.com/sweetsprouts/backend/internal/service"
	"github.com/sweetsprouts/backend/internal/store"
	"github.com/sweetsprouts/backend/internal/store/drivers/sqlite"
	"github.com/sweetsprouts/backend/pkg/api"
	"github.com/sweetsprouts/backend/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

/*
 * Common helpers for backend end-to-end tests. Each test gets its own
 * in-process server over a fresh in-memory database, so rate limit buckets
 * and records never leak between tests.
 */

const (
	accessSecret  = "e2e-access-secret"
	refreshSecret = "e2e-refresh-secret"

	alicePassword = "AlicePassword123!"
	bobPassword   = "BobPassword123!"
)

type testServer struct {
	*api.Client

	URL    string
	Store  store.Store
	Tokens *service.TokenService
}

// setupServer wires the full stack (store, services, router) and exposes it
// over httptest. Cleanup tears down the server and the database.
func setupServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	tokens, err := service.NewTokenService([]byte(accessSecret), []byte(refreshSecret), 0, 0)
	require.NoError(t, err)

	users := &service.UserService{
		Store:  st,
		Hasher: cryptox.NewPasswordHasher(bcrypt.MinCost),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(tokens.AccessVerifier(), "test", st, logger)
	router.UserService = users
	router.TokenService = tokens
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = st.Close()
	})

	return &testServer{
		Client: api.NewClient(srv.URL),
		URL:    srv.URL,
		Store:  st,
		Tokens: tokens,
	}
}

// registerUser creates a user through the public endpoint.
func registerUser(t *testing.T, ts *testServer, email, password, name string) api.UserResponse {
	t.Helper()

	u, err := ts.Register(context.Background(), api.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	require.NoError(t, err)
	return u
}

// loginUser logs in and returns the token pair plus user view.
func loginUser(t *testing.T, ts *testServer, email, password string) api.LoginResponse {
	t.Helper()

	resp, err := ts.Login(context.Background(), api.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return resp
}

// promoteToAdmin flips a user's role directly in the store; there is no HTTP
// surface for role changes.
func promoteToAdmin(t *testing.T, ts *testServer, id string) {
	t.Helper()
	ctx := context.Background()

	u, err := ts.Store.Users().GetUserByID(ctx, id)
	require.NoError(t, err)

	u.Role = domain.RoleAdmin
	_, err = ts.Store.Users().UpdateUser(ctx, u)
	require.NoError(t, err)
}

// rawPost sends a POST with an arbitrary body, bypassing the typed client.
func rawPost(t *testing.T, ts *testServer, path, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// rawGet sends a GET with an optional bearer token, bypassing the typed
// client.
func rawGet(t *testing.T, ts *testServer, path, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// requireAPIError asserts err is an APIError with the given status and exact
// message.
func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, message, apiErr.Message)
}
