package repository

import (
	"context"

	"github.com/medibook/medibook-api/internal/domain/entity"
)

// DoctorQuery captures the directory's filter/sort/pagination parameters.
type DoctorQuery struct {
	Search    string // matches name, specialty, specialization, location
	Specialty string
	SortBy    string // rating | experience | distance | price
	Page      int
	Limit     int
}

type DoctorRepository interface {
	List(ctx context.Context, q DoctorQuery) ([]*entity.Doctor, int, error)
	GetByID(ctx context.Context, id string) (*entity.Doctor, error)
	Specialties(ctx context.Context) ([]string, error)
	// ListByIDs preserves the order of ids; missing ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Doctor, error)
}
