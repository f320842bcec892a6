package entity

import "time"

// Role is the closed set of account roles. It is fixed at signup and is not
// mutable through this service.
type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RoleHospital Role = "hospital"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleHospital:
		return true
	}
	return false
}

// Account is the aggregate root for the credential store.
// PasswordHash holds a bcrypt digest and must never leave the server.
type Account struct {
	ID           string
	Email        string // stored lower-cased; unique
	PasswordHash string
	DisplayName  string
	Role         Role
	CreatedAt    time.Time
}
