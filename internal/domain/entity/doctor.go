package entity

import "time"

// Doctor is a directory listing. Directory data is read-only through the API;
// it is maintained by the seeder and hospital back-office tooling.
type Doctor struct {
	ID              string
	Name            string
	Specialty       string
	Specialization  string
	Rating          float64
	Reviews         int
	ExperienceYears int
	Location        string
	DistanceKM      float64
	Availability    string
	NextSlot        string
	ConsultationFee int // in rupees
	Languages       []string
	Education       string
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
