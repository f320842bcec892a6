package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
)

type MedicalRecordRepository struct {
	pool *pgxpool.Pool
}

func NewMedicalRecordRepository(pool *pgxpool.Pool) *MedicalRecordRepository {
	return &MedicalRecordRepository{pool: pool}
}

func (r *MedicalRecordRepository) Create(ctx context.Context, m *entity.MedicalRecord) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO medical_records (patient_id, doctor_id, title, description, category, date, attachments)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, m.PatientID, m.DoctorID, m.Title, m.Description, m.Category, m.Date, m.Attachments)
	return row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id string) (*entity.MedicalRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, COALESCE(doctor_id::text, ''), title, description, category, date, attachments, created_at, updated_at
		FROM medical_records
		WHERE id = $1
	`, id)
	m, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MedicalRecordRepository) ListByPatient(ctx context.Context, patientID string, category entity.RecordCategory, page, limit int) ([]*entity.MedicalRecord, int, error) {
	cond := "WHERE patient_id = $1"
	args := []any{patientID}
	if category != "" {
		args = append(args, category)
		cond += " AND category = $2"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM medical_records "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT id, patient_id, COALESCE(doctor_id::text, ''), title, description, category, date, attachments, created_at, updated_at
		FROM medical_records %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*entity.MedicalRecord, 0, limit)
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *MedicalRecordRepository) Update(ctx context.Context, m *entity.MedicalRecord) error {
	m.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE medical_records
		SET title = $1, description = $2, category = $3, date = $4, attachments = $5, updated_at = $6
		WHERE id = $7
	`, m.Title, m.Description, m.Category, m.Date, m.Attachments, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*entity.MedicalRecord, error) {
	m := &entity.MedicalRecord{}
	err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.Title, &m.Description,
		&m.Category, &m.Date, &m.Attachments, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

var _ repository.MedicalRecordRepository = (*MedicalRecordRepository)(nil)
