package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (doctor_id, patient_id, date, time, status, type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.DoctorID, a.PatientID, a.Date, a.Time, a.Status, a.Type, a.Notes)
	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, doctor_id, patient_id, date, time, status, type, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)
	if err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.Date, &a.Time,
		&a.Status, &a.Type, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string, page, limit int) ([]*entity.Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM appointments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, patient_id, date, time, status, type, notes, created_at, updated_at
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date DESC, time DESC
		LIMIT $2 OFFSET $3
	`, patientID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*entity.Appointment, 0, limit)
	for rows.Next() {
		a := &entity.Appointment{}
		if err := rows.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.Date, &a.Time,
			&a.Status, &a.Type, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *AppointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	a.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET date = $1, time = $2, status = $3, type = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`, a.Date, a.Time, a.Status, a.Type, a.Notes, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
