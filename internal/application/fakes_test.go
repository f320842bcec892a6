package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
)

// In-memory repository fakes. They mirror the Postgres implementations'
// contracts: lower-cased unique emails, ErrNotFound/ErrDuplicateEmail
// sentinels, ownership-agnostic reads.

type fakeAccountRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.Account
	byEmail map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    make(map[string]*entity.Account),
		byEmail: make(map[string]*entity.Account),
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrDuplicateEmail
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	cp := *a
	r.byID[a.ID] = &cp
	r.byEmail[key] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		delete(r.byEmail, strings.ToLower(a.Email))
		delete(r.byID, id)
	}
}

type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors []*entity.Doctor
}

func (r *fakeDoctorRepo) add(d *entity.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	cp := *d
	r.doctors = append(r.doctors, &cp)
}

func (r *fakeDoctorRepo) List(_ context.Context, q repository.DoctorQuery) ([]*entity.Doctor, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*entity.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		if q.Search != "" {
			s := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(d.Name), s) &&
				!strings.Contains(strings.ToLower(d.Specialty), s) &&
				!strings.Contains(strings.ToLower(d.Specialization), s) &&
				!strings.Contains(strings.ToLower(d.Location), s) {
				continue
			}
		}
		if q.Specialty != "" && !strings.Contains(strings.ToLower(d.Specialty), strings.ToLower(q.Specialty)) {
			continue
		}
		cp := *d
		matched = append(matched, &cp)
	}

	switch q.SortBy {
	case "rating":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	case "experience":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].ExperienceYears > matched[j].ExperienceYears })
	case "distance":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].DistanceKM < matched[j].DistanceKM })
	case "price":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].ConsultationFee < matched[j].ConsultationFee })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id string) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDoctorRepo) Specialties(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, d := range r.doctors {
		if _, ok := seen[d.Specialty]; ok {
			continue
		}
		seen[d.Specialty] = struct{}{}
		out = append(out, d.Specialty)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeDoctorRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Doctor, error) {
	out := make([]*entity.Doctor, 0, len(ids))
	for _, id := range ids {
		if d, err := r.GetByID(context.Background(), id); err == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]*entity.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) ListByPatient(_ context.Context, patientID string, page, limit int) ([]*entity.Appointment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			cp := *a
			matched = append(matched, &cp)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		return matched[i].Time > matched[j].Time
	})
	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[a.ID]; !ok {
		return repository.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]*entity.MedicalRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*entity.MedicalRecord)}
}

func (r *fakeRecordRepo) Create(_ context.Context, rec *entity.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, id string) (*entity.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) ListByPatient(_ context.Context, patientID string, category entity.RecordCategory, page, limit int) ([]*entity.MedicalRecord, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.MedicalRecord
	for _, rec := range r.records {
		if rec.PatientID != patientID {
			continue
		}
		if category != "" && rec.Category != category {
			continue
		}
		cp := *rec
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })
	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeRecordRepo) Update(_ context.Context, rec *entity.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return repository.ErrNotFound
	}
	rec.UpdatedAt = time.Now()
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

var (
	_ repository.AccountRepository       = (*fakeAccountRepo)(nil)
	_ repository.DoctorRepository        = (*fakeDoctorRepo)(nil)
	_ repository.AppointmentRepository   = (*fakeAppointmentRepo)(nil)
	_ repository.MedicalRecordRepository = (*fakeRecordRepo)(nil)
)
