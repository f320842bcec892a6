package repository

import (
	"context"

	"github.com/medibook/medibook-api/internal/domain/entity"
)

// AccountRepository is the credential store. Emails are stored lower-cased;
// callers normalize before lookup. No update or delete operations: accounts
// are immutable once created as far as this service is concerned.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByID(ctx context.Context, id string) (*entity.Account, error)
}
