package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
	"github.com/medibook/medibook-api/pkg/helpers"
)

// RecordService handles a patient's medical records, including attachment
// uploads to Google Cloud Storage.
type RecordService struct {
	Repo      repository.MedicalRecordRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewRecordService(repo repository.MedicalRecordRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *RecordService {
	return &RecordService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

type RecordInput struct {
	DoctorID    string
	Title       string
	Description string
	Category    entity.RecordCategory
	Date        string
}

func (s *RecordService) Create(ctx context.Context, patientID string, in RecordInput) (*entity.MedicalRecord, error) {
	if in.Category == "" {
		in.Category = entity.CategoryOther
	}
	if !in.Category.Valid() {
		return nil, ErrInvalidInput
	}
	rec := &entity.MedicalRecord{
		PatientID:   patientID,
		DoctorID:    in.DoctorID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
		Attachments: []string{},
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecordService) List(ctx context.Context, patientID string, category entity.RecordCategory, page, limit int) ([]*entity.MedicalRecord, int, error) {
	if category != "" && !category.Valid() {
		return nil, 0, ErrInvalidInput
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.Repo.ListByPatient(ctx, patientID, category, page, limit)
}

// Update applies the non-empty fields of in to the patient's record.
func (s *RecordService) Update(ctx context.Context, patientID, id string, in RecordInput) (*entity.MedicalRecord, error) {
	rec, err := s.owned(ctx, patientID, id)
	if err != nil {
		return nil, err
	}
	if in.Category != "" {
		if !in.Category.Valid() {
			return nil, ErrInvalidInput
		}
		rec.Category = in.Category
	}
	if in.Title != "" {
		rec.Title = in.Title
	}
	if in.Description != "" {
		rec.Description = in.Description
	}
	if in.Date != "" {
		rec.Date = in.Date
	}
	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecordService) Delete(ctx context.Context, patientID, id string) error {
	if _, err := s.owned(ctx, patientID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// AddAttachment streams an upload into GCS and appends its public URL to the
// record. Returns the stored URL.
func (s *RecordService) AddAttachment(ctx context.Context, patientID, id string, r io.Reader, filename, contentType string) (string, error) {
	rec, err := s.owned(ctx, patientID, id)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("attachment storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("records", patientID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	rec.Attachments = append(rec.Attachments, url)
	if err := s.Repo.Update(ctx, rec); err != nil {
		return "", err
	}
	return url, nil
}

func (s *RecordService) owned(ctx context.Context, patientID, id string) (*entity.MedicalRecord, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.PatientID != patientID {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}
