package repository

import (
	"context"

	"github.com/medibook/medibook-api/internal/domain/entity"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, r *entity.MedicalRecord) error
	GetByID(ctx context.Context, id string) (*entity.MedicalRecord, error)
	// ListByPatient returns records newest-first by record date; category is
	// optional ("" means all).
	ListByPatient(ctx context.Context, patientID string, category entity.RecordCategory, page, limit int) ([]*entity.MedicalRecord, int, error)
	Update(ctx context.Context, r *entity.MedicalRecord) error
	Delete(ctx context.Context, id string) error
}
