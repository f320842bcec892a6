package entity

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentRescheduled:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentInPerson AppointmentType = "in-person"
	AppointmentVideo    AppointmentType = "video"
	AppointmentPhone    AppointmentType = "phone"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentInPerson, AppointmentVideo, AppointmentPhone:
		return true
	}
	return false
}

// Appointment links a patient account to a doctor at a date/time slot.
// Cancellation is a status transition, never a row delete, so history survives.
type Appointment struct {
	ID        string
	DoctorID  string
	PatientID string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Status    AppointmentStatus
	Type      AppointmentType
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
