package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/testing/mockapi"
	"github.com/deprtest/e2e/internal/version"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)
	return srv
}

func loggedIn(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append(opts, WithLogger(zaptest.NewLogger(t)))
	c := New(srv.URL+"/api", opts...)
	resp, err := c.Login(context.Background(), "admin", "password")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Text())
	return c
}

func sampleUser(username string) models.User {
	u := models.NewUser()
	u.Username = username
	u.Email = username + "@example.com"
	u.FirstName = "Sample"
	u.LastName = "User"
	u.Password = "sample-password"
	return u
}

func TestURL(t *testing.T) {
	c := New("http://localhost:8000/api/")
	assert.Equal(t, "http://localhost:8000/api", c.BaseURL())
	assert.Equal(t, "http://localhost:8000/api/users", c.URL("/users"))
	assert.Equal(t, "http://localhost:8000/api/users", c.URL("users"))
}

func TestDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("abc"))
	_, err := c.Get(context.Background(), "ping", nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, version.UserAgent(), got.Get("User-Agent"))
	assert.Equal(t, "Bearer abc", got.Get("Authorization"))
	assert.Equal(t, "abc", c.Token())

	_, err = c.Anonymous().Get(context.Background(), "ping", nil)
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
	assert.Equal(t, "abc", c.Token(), "anonymous copy leaves the original alone")
}

func TestLogin(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	t.Run("Success stores token", func(t *testing.T) {
		c := loggedIn(t, srv)
		assert.NotEmpty(t, c.Token())

		exp, err := TokenExpiry(c.Token())
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
		assert.False(t, c.TokenExpiresWithin(time.Now(), 5*time.Minute))
		assert.True(t, c.TokenExpiresWithin(time.Now(), 2*time.Hour))
	})

	t.Run("Failure keeps client anonymous", func(t *testing.T) {
		c := New(srv.URL + "/api")
		resp, err := c.Login(ctx, "admin", "wrong")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Empty(t, c.Token())
		assert.True(t, c.TokenExpiresWithin(time.Now(), 0))

		var apiErr models.APIError
		require.NoError(t, resp.JSON(&apiErr))
		assert.Equal(t, mockapi.InvalidCredentials, apiErr.Detail)
	})
}

func TestTokenExpiry(t *testing.T) {
	_, err := TokenExpiry("not-a-token")
	assert.Error(t, err)

	token, err := mockapi.New().IssueToken("someone")
	require.NoError(t, err)
	claims, err := TokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "someone", claims["sub"])
}

func TestUnauthorizedAccess(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	resp, err := c.GetContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = c.CreateContact(ctx, map[string]string{"first_name": "Test"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = c.GetUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserCRUD(t *testing.T) {
	srv := newServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	resp, err := c.CreateUser(ctx, sampleUser("crud_user").WithoutID())
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Text())
	var created models.User
	require.NoError(t, resp.JSON(&created))

	resp, err = c.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.UpdateUser(ctx, created.ID, map[string]any{"email": "changed@example.com"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := resp.Map()
	require.NoError(t, err)
	assert.Equal(t, "changed@example.com", body["email"])

	resp, err = c.GetUsers(ctx)
	require.NoError(t, err)
	var page models.Page[models.User]
	require.NoError(t, resp.JSON(&page))
	assert.GreaterOrEqual(t, page.Total, 1)

	resp, err = c.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = c.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContactFilter(t *testing.T) {
	srv := newServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	for _, owner := range []int64{11, 11, 12} {
		ct := models.Contact{FirstName: "F", LastName: "L", Email: "f@example.com", Phone: "555-0101", UserID: owner}
		resp, err := c.CreateContact(ctx, ct)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := c.GetContactsByUser(ctx, 11)
	require.NoError(t, err)
	var page models.Page[models.Contact]
	require.NoError(t, resp.JSON(&page))
	assert.Len(t, page.Items, 2)

	// A query embedded in the endpoint works as well.
	resp, err = c.Get(ctx, "contacts?user_id=12", nil)
	require.NoError(t, err)
	require.NoError(t, resp.JSON(&page))
	assert.Len(t, page.Items, 1)

	resp, err = c.Get(ctx, "contacts?user_id=12", url.Values{"size": {"1"}})
	require.NoError(t, err)
	require.NoError(t, resp.JSON(&page))
	assert.Equal(t, 1, page.Size)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := New(base, WithMetrics(m))
	_, err := c.Get(context.Background(), "users", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET users")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/users", "error")))
}

func TestMetrics(t *testing.T) {
	srv := newServer(t)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := loggedIn(t, srv, WithMetrics(m))
	ctx := context.Background()

	_, err := c.GetUser(ctx, 999)
	require.NoError(t, err)
	_, err = c.GetUser(ctx, 1000)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "/auth/login", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/users/{id}", "404")))

	n, err := testutil.GatherAndCount(reg, "e2e_api_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"users":                "/users",
		"/users/12":            "/users/{id}",
		"contacts?user_id=3":   "/contacts",
		"users/12/contacts/99": "/users/{id}/contacts/{id}",
		"auth/login":           "/auth/login",
	}
	for in, want := range tests {
		assert.Equal(t, want, routeLabel(in), in)
	}
}
