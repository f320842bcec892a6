package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/medibook/medibook-api/config"
	"github.com/medibook/medibook-api/pkg/helpers"
)

type seedDoctor struct {
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
	ConsultationFee int
	Languages       []string
	Education       string
	ImageURL        string
}

var seedDoctors = []seedDoctor{
	{"Dr. Rajesh Kumar Sharma", "Cardiology", "Interventional Cardiology", 4.9, 245, 15, "AIIMS Delhi", 2.3, "Available Today", "2:30 PM", 800, []string{"Hindi", "English", "Punjabi"}, "AIIMS Delhi, MD Cardiology", "/placeholder.svg"},
	{"Dr. Priya Mehta", "Neurology", "Pediatric Neurology", 4.8, 189, 12, "Fortis Hospital Mumbai", 3.1, "Available Tomorrow", "10:00 AM", 1200, []string{"Hindi", "English", "Marathi"}, "KEM Hospital Mumbai, DM Neurology", "/placeholder.svg"},
	{"Dr. Arun Singh Chauhan", "Orthopedics", "Sports Medicine", 4.7, 156, 18, "Apollo Hospital Chennai", 4.2, "Available This Week", "Mon 9:00 AM", 900, []string{"Hindi", "English", "Tamil"}, "CMC Vellore, MS Orthopedics", "/placeholder.svg"},
	{"Dr. Kavita Reddy", "Pediatrics", "Pediatric Immunology", 4.9, 312, 10, "Rainbow Children's Hospital", 1.8, "Available Today", "4:15 PM", 600, []string{"Hindi", "English", "Telugu", "Kannada"}, "PGIMER Chandigarh, MD Pediatrics", "/placeholder.svg"},
	{"Dr. Amit Gupta", "General Medicine", "Internal Medicine", 4.8, 203, 8, "Max Super Speciality Hospital", 1.2, "Available Today", "3:45 PM", 500, []string{"Hindi", "English"}, "MAMC Delhi, MD Internal Medicine", "/placeholder.svg"},
	{"Dr. Sunita Patel", "Ophthalmology", "Retinal Surgery", 4.9, 178, 14, "L.V. Prasad Eye Institute", 2.7, "Available Tomorrow", "11:30 AM", 750, []string{"Hindi", "English", "Gujarati"}, "AIIMS Delhi, MS Ophthalmology", "/placeholder.svg"},
	{"Dr. Vikram Singh", "Dermatology", "Cosmetic Dermatology", 4.6, 134, 9, "Manipal Hospital Bangalore", 3.5, "Available This Week", "Tue 2:00 PM", 700, []string{"Hindi", "English", "Kannada"}, "JIPMER Puducherry, MD Dermatology", "/placeholder.svg"},
	{"Dr. Meera Joshi", "Gynecology", "High-Risk Pregnancy", 4.8, 267, 16, "Cloudnine Hospital", 2.1, "Available Today", "5:00 PM", 800, []string{"Hindi", "English", "Marathi"}, "Seth GS Medical College Mumbai, MD OBG", "/placeholder.svg"},
	{"Dr. Rakesh Agarwal", "Gastroenterology", "Liver Diseases", 4.7, 145, 13, "Medanta Hospital Gurgaon", 5.2, "Available Tomorrow", "9:30 AM", 1000, []string{"Hindi", "English"}, "PGIMER Chandigarh, DM Gastroenterology", "/placeholder.svg"},
	{"Dr. Neha Malhotra", "Psychiatry", "Child Psychology", 4.8, 198, 11, "NIMHANS Bangalore", 3.8, "Available This Week", "Wed 4:30 PM", 900, []string{"Hindi", "English"}, "NIMHANS Bangalore, MD Psychiatry", "/placeholder.svg"},
	{"Dr. Suresh Kumar", "Pulmonology", "Sleep Medicine", 4.6, 112, 10, "Sir Ganga Ram Hospital", 4.1, "Available Tomorrow", "1:15 PM", 650, []string{"Hindi", "English", "Punjabi"}, "PGI Chandigarh, DM Pulmonology", "/placeholder.svg"},
	{"Dr. Anjali Verma", "Endocrinology", "Diabetes Management", 4.9, 221, 14, "Indraprastha Apollo Hospital", 2.9, "Available Today", "6:00 PM", 850, []string{"Hindi", "English"}, "AIIMS Delhi, DM Endocrinology", "/placeholder.svg"},
}

// searchable projection stored in the doctors index
type doctorDoc struct {
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
	Specialization string `json:"specialization"`
	Location       string `json:"location"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	es, esErr := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if esErr != nil {
		log.Printf("elasticsearch unavailable, skipping index: %v", esErr)
		es = nil
	}

	for _, d := range seedDoctors {
		var id string
		err := conn.QueryRow(ctx, `
			INSERT INTO doctors (name, specialty, specialization, rating, reviews,
				experience_years, location, distance_km, availability, next_slot,
				consultation_fee, languages, education, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (name) DO UPDATE SET
				specialty = EXCLUDED.specialty,
				specialization = EXCLUDED.specialization,
				rating = EXCLUDED.rating,
				reviews = EXCLUDED.reviews,
				experience_years = EXCLUDED.experience_years,
				location = EXCLUDED.location,
				distance_km = EXCLUDED.distance_km,
				availability = EXCLUDED.availability,
				next_slot = EXCLUDED.next_slot,
				consultation_fee = EXCLUDED.consultation_fee,
				languages = EXCLUDED.languages,
				education = EXCLUDED.education,
				image_url = EXCLUDED.image_url,
				updated_at = now()
			RETURNING id
		`, d.Name, d.Specialty, d.Specialization, d.Rating, d.Reviews,
			d.ExperienceYears, d.Location, d.DistanceKM, d.Availability, d.NextSlot,
			d.ConsultationFee, d.Languages, d.Education, d.ImageURL).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed doctor %q: %v", d.Name, err)
		}
		fmt.Printf("seeded doctor: id=%s name=%s\n", id, d.Name)

		if es != nil {
			if err := indexDoctor(ctx, es, cfg.ESDoctorsIndex, id, d); err != nil {
				log.Printf("failed to index doctor %q: %v", d.Name, err)
			}
		}
	}
	fmt.Printf("seeded %d doctors\n", len(seedDoctors))
}

func indexDoctor(ctx context.Context, es *elasticsearch.Client, index, id string, d seedDoctor) error {
	b, err := json.Marshal(doctorDoc{
		Name:           d.Name,
		Specialty:      d.Specialty,
		Specialization: d.Specialization,
		Location:       d.Location,
	})
	if err != nil {
		return err
	}
	res, err := es.Index(
		index,
		strings.NewReader(string(b)),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(id),
		es.Index.WithRefresh("true"),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index doctor: %s", res.Status())
	}
	return nil
}
