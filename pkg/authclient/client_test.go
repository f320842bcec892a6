package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsMode(t *testing.T) {
	t.Parallel()

	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)
	assert.IsType(t, &selfHostedClient{}, c)

	c, err = New(Config{ProviderURL: "https://idp.example.com", ProviderAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &managedClient{}, c)

	_, err = New(Config{})
	assert.Error(t, err)

	_, err = New(Config{ProviderAPIKey: "k"})
	assert.Error(t, err)
}

func TestRouteForRole(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/dashboard", RouteForRole("patient"))
	assert.Equal(t, "/doctor/dashboard", RouteForRole("doctor"))
	assert.Equal(t, "/hospital/dashboard", RouteForRole("hospital"))
	assert.Equal(t, "/dashboard", RouteForRole("unknown"))
}

func TestSelfHostedClient(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "email already in use"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  User{UID: "u1", Email: req["email"], DisplayName: req["displayName"], Role: req["role"]},
		})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch {
		case req["email"] == "nobody@example.com":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "account not found"})
		case req["password"] != "secret123":
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-2",
				"user":  User{UID: "u1", Email: req["email"], Role: "patient"},
			})
		}
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer tok-2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": User{UID: "u1", Email: "asha@example.com", Role: "patient"},
			})
		case "Bearer tok-expired":
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("signup", func(t *testing.T) {
		s, err := c.Signup(ctx, "asha@example.com", "secret123", "Asha", "patient")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", s.Token)
		assert.Equal(t, "u1", s.User.UID)
	})

	t.Run("signup conflict", func(t *testing.T) {
		_, err := c.Signup(ctx, "taken@example.com", "secret123", "Asha", "patient")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login", func(t *testing.T) {
		s, err := c.Login(ctx, "asha@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", s.Token)
	})

	t.Run("login wrong password", func(t *testing.T) {
		_, err := c.Login(ctx, "asha@example.com", "bad")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login unknown email", func(t *testing.T) {
		_, err := c.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("current session", func(t *testing.T) {
		s, err := c.CurrentSession(ctx, "tok-2")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", s.Token)
		assert.Equal(t, "u1", s.User.UID)
	})

	t.Run("expired session", func(t *testing.T) {
		_, err := c.CurrentSession(ctx, "tok-expired")
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := c.CurrentSession(ctx, "")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("logout is local", func(t *testing.T) {
		assert.NoError(t, c.Logout(ctx, "tok-2"))
	})
}

func TestManagedClient(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "EMAIL_EXISTS"}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"idToken":     "provider-tok",
			"localId":     "prov-u1",
			"email":       req["email"],
			"displayName": req["displayName"],
		})
	})
	mux.HandleFunc("/v1/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret123" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "INVALID_PASSWORD"}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"idToken":    "provider-tok",
			"localId":    "prov-u1",
			"email":      req["email"],
			"attributes": map[string]string{"role": "doctor"},
		})
	})
	mux.HandleFunc("/v1/accounts:lookup", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"localId": "prov-u1",
			"email":   "asha@example.com",
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(Config{ProviderURL: srv.URL, ProviderAPIKey: "test-key"})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("signup", func(t *testing.T) {
		s, err := c.Signup(ctx, "asha@example.com", "secret123", "Asha", "patient")
		require.NoError(t, err)
		assert.Equal(t, "provider-tok", s.Token)
		assert.Equal(t, "prov-u1", s.User.UID)
		assert.Equal(t, "patient", s.User.Role, "role falls back to the requested one")
	})

	t.Run("signup conflict", func(t *testing.T) {
		_, err := c.Signup(ctx, "taken@example.com", "secret123", "Asha", "patient")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login maps provider role", func(t *testing.T) {
		s, err := c.Login(ctx, "asha@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "doctor", s.User.Role)
	})

	t.Run("login wrong password", func(t *testing.T) {
		_, err := c.Login(ctx, "asha@example.com", "bad")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("current session keeps token", func(t *testing.T) {
		s, err := c.CurrentSession(ctx, "provider-tok")
		require.NoError(t, err)
		assert.Equal(t, "provider-tok", s.Token)
		assert.Equal(t, "prov-u1", s.User.UID)
	})
}
