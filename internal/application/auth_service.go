package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
	"github.com/medibook/medibook-api/pkg/helpers"
	"github.com/medibook/medibook-api/pkg/mailer"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already in use")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService orchestrates signup, login and session lookup. It holds no
// per-request state; the credential store and the token secret are the only
// shared resources.
type AuthService struct {
	Repo        repository.AccountRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewAuthService(repo repository.AccountRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

// AuthResult is what successful signup/login hands to the transport layer.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *entity.Account
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and mints its first session token. The email
// unique index is the final arbiter for duplicates: a concurrent signup that
// loses the insert race still comes back as ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, email, password, displayName string, role entity.Role) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(displayName) == "" || role == "" {
		return nil, ErrMissingField
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	acct := &entity.Account{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         role,
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.JWT.Mint(acct.ID)
	if err != nil {
		return nil, err
	}

	s.publishWelcome(ctx, acct)

	return &AuthResult{Token: token, ExpiresAt: exp, Account: acct}, nil
}

// Login verifies credentials and mints a session token. It performs no writes.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	acct, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn the same hashing work as a real comparison so unknown
			// emails are not distinguishable from wrong passwords by timing.
			helpers.DecoyCompare(password)
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if !helpers.CompareHashAndPassword(acct.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Mint(acct.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, Account: acct}, nil
}

// CurrentAccount resolves a bearer token to its account. Token failures
// propagate as helpers.ErrTokenExpired / helpers.ErrTokenInvalid; a token for
// an account deleted after issuance yields ErrAccountNotFound.
func (s *AuthService) CurrentAccount(ctx context.Context, token string) (*entity.Account, error) {
	uid, err := s.JWT.Verify(token)
	if err != nil {
		return nil, err
	}
	acct, err := s.Repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}

func (s *AuthService) publishWelcome(ctx context.Context, acct *entity.Account) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       acct.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": acct.DisplayName},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", acct.Email).Warn("welcome email publish failed")
	}
}
