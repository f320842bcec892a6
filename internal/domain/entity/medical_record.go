package entity

import "time"

type RecordCategory string

const (
	CategoryDiagnosis    RecordCategory = "diagnosis"
	CategoryPrescription RecordCategory = "prescription"
	CategoryLabResult    RecordCategory = "lab-result"
	CategoryImaging      RecordCategory = "imaging"
	CategoryVaccination  RecordCategory = "vaccination"
	CategorySurgery      RecordCategory = "surgery"
	CategoryOther        RecordCategory = "other"
)

func (c RecordCategory) Valid() bool {
	switch c {
	case CategoryDiagnosis, CategoryPrescription, CategoryLabResult,
		CategoryImaging, CategoryVaccination, CategorySurgery, CategoryOther:
		return true
	}
	return false
}

// MedicalRecord belongs to a patient account. DoctorID is optional (e.g.
// self-reported vaccinations). Attachments hold GCS object URLs.
type MedicalRecord struct {
	ID          string
	PatientID   string
	DoctorID    string
	Title       string
	Description string
	Category    RecordCategory
	Date        string // YYYY-MM-DD
	Attachments []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
