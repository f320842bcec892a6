package repository

import (
	"context"

	"github.com/medibook/medibook-api/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, page, limit int) ([]*entity.Appointment, int, error)
	Update(ctx context.Context, a *entity.Appointment) error
}
