package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
	"github.com/medibook/medibook-api/pkg/helpers"
	"github.com/medibook/medibook-api/pkg/mailer"
)

// ErrInvalidInput flags an enum or shape violation the binding layer could
// not catch (e.g. a status outside the closed set on update).
var ErrInvalidInput = errors.New("invalid input")

// AppointmentService handles booking CRUD for the authenticated patient.
// Ownership is enforced here: an appointment belonging to someone else is
// indistinguishable from a missing one.
type AppointmentService struct {
	Repo        repository.AppointmentRepository
	Doctors     repository.DoctorRepository
	Accounts    repository.AccountRepository
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewAppointmentService(repo repository.AppointmentRepository, doctors repository.DoctorRepository, accounts repository.AccountRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *AppointmentService {
	return &AppointmentService{Repo: repo, Doctors: doctors, Accounts: accounts, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

type CreateAppointmentInput struct {
	DoctorID string
	Date     string
	Time     string
	Type     entity.AppointmentType
	Notes    string
}

func (s *AppointmentService) Create(ctx context.Context, patientID string, in CreateAppointmentInput) (*entity.Appointment, error) {
	if in.Type == "" {
		in.Type = entity.AppointmentInPerson
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidInput
	}
	doctor, err := s.Doctors.GetByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	appt := &entity.Appointment{
		DoctorID:  doctor.ID,
		PatientID: patientID,
		Date:      in.Date,
		Time:      in.Time,
		Status:    entity.AppointmentScheduled,
		Type:      in.Type,
		Notes:     in.Notes,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.publishMail(ctx, patientID, doctor, appt, mailer.TemplateAppointmentConfirmed)
	return appt, nil
}

func (s *AppointmentService) List(ctx context.Context, patientID string, page, limit int) ([]*entity.Appointment, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.Repo.ListByPatient(ctx, patientID, page, limit)
}

type UpdateAppointmentInput struct {
	Date   string
	Time   string
	Status entity.AppointmentStatus
	Type   entity.AppointmentType
	Notes  string
}

// Update applies the non-empty fields of in to the patient's appointment.
func (s *AppointmentService) Update(ctx context.Context, patientID, id string, in UpdateAppointmentInput) (*entity.Appointment, error) {
	appt, err := s.owned(ctx, patientID, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, ErrInvalidInput
		}
		appt.Status = in.Status
	}
	if in.Type != "" {
		if !in.Type.Valid() {
			return nil, ErrInvalidInput
		}
		appt.Type = in.Type
	}
	if in.Date != "" || in.Time != "" {
		if in.Date != "" {
			appt.Date = in.Date
		}
		if in.Time != "" {
			appt.Time = in.Time
		}
		if appt.Status == entity.AppointmentScheduled {
			appt.Status = entity.AppointmentRescheduled
		}
	}
	if in.Notes != "" {
		appt.Notes = in.Notes
	}

	if err := s.Repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marks the appointment cancelled; the row is kept for history.
func (s *AppointmentService) Cancel(ctx context.Context, patientID, id string) (*entity.Appointment, error) {
	appt, err := s.owned(ctx, patientID, id)
	if err != nil {
		return nil, err
	}
	appt.Status = entity.AppointmentCancelled
	if err := s.Repo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if doctor, derr := s.Doctors.GetByID(ctx, appt.DoctorID); derr == nil {
		s.publishMail(ctx, patientID, doctor, appt, mailer.TemplateAppointmentCancelled)
	}
	return appt, nil
}

func (s *AppointmentService) owned(ctx context.Context, patientID, id string) (*entity.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, repository.ErrNotFound
	}
	return appt, nil
}

func (s *AppointmentService) publishMail(ctx context.Context, patientID string, doctor *entity.Doctor, appt *entity.Appointment, template string) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	acct, err := s.Accounts.GetByID(ctx, patientID)
	if err != nil {
		return
	}
	job := mailer.EmailJob{
		To:       acct.Email,
		Template: template,
		Data: map[string]any{
			"Name":       acct.DisplayName,
			"DoctorName": doctor.Name,
			"Date":       appt.Date,
			"Time":       appt.Time,
			"Type":       string(appt.Type),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("appointment_id", appt.ID).Warn("appointment email publish failed")
	}
}
