package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// managedClient delegates credential handling to an external identity
// provider. The provider owns password storage and token minting; this client
// only adapts its wire format to the shared Session shape.
type managedClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

type providerEnvelope struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
	DisplayName string         `json:"displayName"`
	Attributes  map[string]any `json:"attributes"`
	CreatedAt   string         `json:"createdAt"`
}

func (c *managedClient) Signup(ctx context.Context, email, password, displayName, role string) (*Session, error) {
	env, status, err := c.do(ctx, "/v1/accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"attributes":        map[string]string{"role": role},
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, mapProviderError(status, env.Error.Message)
	}
	return env.session(role), nil
}

func (c *managedClient) Login(ctx context.Context, email, password string) (*Session, error) {
	env, status, err := c.do(ctx, "/v1/accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, mapProviderError(status, env.Error.Message)
	}
	return env.session(""), nil
}

func (c *managedClient) CurrentSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	env, status, err := c.do(ctx, "/v1/accounts:lookup", map[string]any{"idToken": token})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, mapProviderError(status, env.Error.Message)
	}
	s := env.session("")
	s.Token = token
	return s, nil
}

func (c *managedClient) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, _, err := c.do(ctx, "/v1/accounts:revoke", map[string]any{"idToken": token})
	return err
}

func (e *providerEnvelope) session(fallbackRole string) *Session {
	role := fallbackRole
	if e.Attributes != nil {
		if r, ok := e.Attributes["role"].(string); ok && r != "" {
			role = r
		}
	}
	return &Session{
		Token: e.IDToken,
		User: User{
			UID:         e.LocalID,
			Email:       e.Email,
			DisplayName: e.DisplayName,
			Role:        role,
			CreatedAt:   e.CreatedAt,
		},
	}
}

func (c *managedClient) do(ctx context.Context, path string, body map[string]any) (*providerEnvelope, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	url := strings.TrimRight(c.baseURL, "/") + path + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()

	var env providerEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, res.StatusCode, err
	}
	return &env, res.StatusCode, nil
}

func mapProviderError(status int, code string) error {
	switch {
	case strings.Contains(code, "EMAIL_EXISTS"):
		return ErrEmailTaken
	case strings.Contains(code, "EMAIL_NOT_FOUND"):
		return ErrAccountNotFound
	case strings.Contains(code, "INVALID_PASSWORD"), strings.Contains(code, "INVALID_LOGIN_CREDENTIALS"):
		return ErrInvalidCredentials
	case strings.Contains(code, "TOKEN_EXPIRED"), strings.Contains(code, "INVALID_ID_TOKEN"):
		return ErrSessionExpired
	default:
		return &APIError{Status: status, Message: code}
	}
}
