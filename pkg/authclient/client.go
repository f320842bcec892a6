// Package authclient is the Go client for the MediBook session API. It runs
// in one of two modes, chosen once at construction: self-hosted, which talks
// to a MediBook API deployment, or managed, which delegates credential
// handling to an external identity provider. Call sites never branch on the
// mode; both implementations satisfy Client.
package authclient

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("no active session")
)

// User mirrors the public account projection returned by the API.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

// Session pairs a bearer token with the user it authenticates.
type Session struct {
	Token string
	User  User
}

// Client is the mode-independent auth surface.
type Client interface {
	Signup(ctx context.Context, email, password, displayName, role string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// CurrentSession re-validates the token with the backing service and
	// returns a fresh user projection.
	CurrentSession(ctx context.Context, token string) (*Session, error)
	// Logout discards the session. Tokens are stateless so for the
	// self-hosted mode this is purely client-side; the managed provider is
	// notified when it supports revocation.
	Logout(ctx context.Context, token string) error
}

// Config selects the mode. A non-empty ProviderAPIKey selects managed mode;
// otherwise BaseURL must point at a MediBook API deployment.
type Config struct {
	BaseURL        string
	ProviderURL    string
	ProviderAPIKey string
	HTTPClient     *http.Client
}

// New picks the implementation from the config. The decision happens exactly
// once; the returned Client never re-reads the config.
func New(cfg Config) (Client, error) {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.ProviderAPIKey != "" {
		if cfg.ProviderURL == "" {
			return nil, errors.New("authclient: provider api key set but provider url missing")
		}
		return &managedClient{baseURL: cfg.ProviderURL, apiKey: cfg.ProviderAPIKey, httpc: httpc}, nil
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("authclient: base url required in self-hosted mode")
	}
	return &selfHostedClient{baseURL: cfg.BaseURL, httpc: httpc}, nil
}

// roleRoutes maps a role to its post-login landing path.
var roleRoutes = map[string]string{
	"patient":  "/dashboard",
	"doctor":   "/doctor/dashboard",
	"hospital": "/hospital/dashboard",
}

// RouteForRole returns the landing path for a role, defaulting to the patient
// dashboard for unknown values.
func RouteForRole(role string) string {
	if r, ok := roleRoutes[role]; ok {
		return r
	}
	return roleRoutes["patient"]
}
