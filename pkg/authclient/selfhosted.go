package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// selfHostedClient speaks the MediBook API wire contract directly.
type selfHostedClient struct {
	baseURL string
	httpc   *http.Client
}

type authEnvelope struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

func (c *selfHostedClient) Signup(ctx context.Context, email, password, displayName, role string) (*Session, error) {
	body := map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
		"role":        role,
	}
	env, status, err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, mapStatus(status, env.Message)
	}
	return &Session{Token: env.Token, User: env.User}, nil
}

func (c *selfHostedClient) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	env, status, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, mapStatus(status, env.Message)
	}
	return &Session{Token: env.Token, User: env.User}, nil
}

func (c *selfHostedClient) CurrentSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	env, status, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, mapStatus(status, env.Message)
	}
	return &Session{Token: token, User: env.User}, nil
}

// Logout is client-side only: the server keeps no session state to revoke.
func (c *selfHostedClient) Logout(ctx context.Context, token string) error {
	return nil
}

func (c *selfHostedClient) do(ctx context.Context, method, path, token string, body any) (*authEnvelope, int, error) {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.baseURL, "/")+path, rd)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()

	var env authEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, res.StatusCode, err
	}
	return &env, res.StatusCode, nil
}

func mapStatus(status int, message string) error {
	switch status {
	case http.StatusUnauthorized:
		if strings.Contains(strings.ToLower(message), "expired") {
			return ErrSessionExpired
		}
		return ErrInvalidCredentials
	case http.StatusNotFound:
		return ErrAccountNotFound
	case http.StatusConflict:
		return ErrEmailTaken
	default:
		return &APIError{Status: status, Message: message}
	}
}

// APIError carries a response the client has no sentinel for.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}
