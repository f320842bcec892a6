package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
)

const doctorColumns = `id, name, specialty, specialization, rating, reviews,
	experience_years, location, distance_km, availability, next_slot,
	consultation_fee, languages, education, image_url, created_at, updated_at`

type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) List(ctx context.Context, q repository.DoctorQuery) ([]*entity.Doctor, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		where = append(where, fmt.Sprintf(
			"(name ILIKE %[1]s OR specialty ILIKE %[1]s OR specialization ILIKE %[1]s OR location ILIKE %[1]s)", p))
	}
	if q.Specialty != "" {
		args = append(args, "%"+q.Specialty+"%")
		where = append(where, fmt.Sprintf("specialty ILIKE $%d", len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM doctors"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := orderClause(q.SortBy)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := fmt.Sprintf("SELECT %s FROM doctors%s %s LIMIT $%d OFFSET $%d",
		doctorColumns, cond, order, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*entity.Doctor, 0, q.Limit)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// orderClause maps the public sort keys onto columns. Unknown keys fall back
// to name to keep pagination stable.
func orderClause(sortBy string) string {
	switch sortBy {
	case "rating":
		return "ORDER BY rating DESC, reviews DESC"
	case "experience":
		return "ORDER BY experience_years DESC"
	case "distance":
		return "ORDER BY distance_km ASC"
	case "price":
		return "ORDER BY consultation_fee ASC"
	default:
		return "ORDER BY name ASC"
	}
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*entity.Doctor, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM doctors WHERE id = $1", doctorColumns), id)
	d, err := scanDoctor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) Specialties(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT specialty FROM doctors ORDER BY specialty`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *DoctorRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Doctor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM doctors WHERE id = ANY($1)", doctorColumns), ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*entity.Doctor, len(ids))
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.Doctor, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func scanDoctor(row pgx.Row) (*entity.Doctor, error) {
	d := &entity.Doctor{}
	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Specialization, &d.Rating,
		&d.Reviews, &d.ExperienceYears, &d.Location, &d.DistanceKM,
		&d.Availability, &d.NextSlot, &d.ConsultationFee, &d.Languages,
		&d.Education, &d.ImageURL, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

var _ repository.DoctorRepository = (*DoctorRepository)(nil)
