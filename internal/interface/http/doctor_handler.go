package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/application"
	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
	"github.com/medibook/medibook-api/pkg/response"
)

// DoctorHandler serves the read-only doctor directory.
type DoctorHandler struct {
	Service *application.DoctorService
	Logger  *logrus.Logger
}

func NewDoctorHandler(service *application.DoctorService, logger *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{Service: service, Logger: logger}
}

type doctorJSON struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Specialization  string   `json:"specialization"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	ExperienceYears int      `json:"experienceYears"`
	Location        string   `json:"location"`
	DistanceKM      float64  `json:"distanceKm"`
	Availability    string   `json:"availability"`
	NextSlot        string   `json:"nextSlot"`
	ConsultationFee int      `json:"consultationFee"`
	Languages       []string `json:"languages"`
	Education       string   `json:"education"`
	ImageURL        string   `json:"imageUrl"`
}

func toDoctorJSON(d *entity.Doctor) doctorJSON {
	langs := d.Languages
	if langs == nil {
		langs = []string{}
	}
	return doctorJSON{
		ID:              d.ID,
		Name:            d.Name,
		Specialty:       d.Specialty,
		Specialization:  d.Specialization,
		Rating:          d.Rating,
		Reviews:         d.Reviews,
		ExperienceYears: d.ExperienceYears,
		Location:        d.Location,
		DistanceKM:      d.DistanceKM,
		Availability:    d.Availability,
		NextSlot:        d.NextSlot,
		ConsultationFee: d.ConsultationFee,
		Languages:       langs,
		Education:       d.Education,
		ImageURL:        d.ImageURL,
	}
}

// List handles GET /api/doctors with search, specialty filter, sort and
// pagination query params.
func (h *DoctorHandler) List(c *gin.Context) {
	q := repository.DoctorQuery{
		Search:    c.Query("search"),
		Specialty: c.Query("specialty"),
		SortBy:    c.Query("sortBy"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", defaultPageLimit),
	}

	docs, total, err := h.Service.Search(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]doctorJSON, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDoctorJSON(d))
	}
	response.Paginated(c, http.StatusOK, out, total, q.Page, q.Limit)
}

// Get handles GET /api/doctors/:id
func (h *DoctorHandler) Get(c *gin.Context) {
	doc, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toDoctorJSON(doc))
}

// Specialties handles GET /api/doctors/specialties
func (h *DoctorHandler) Specialties(c *gin.Context) {
	specialties, err := h.Service.Specialties(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if specialties == nil {
		specialties = []string{}
	}
	response.JSON(c, http.StatusOK, gin.H{"specialties": specialties})
}

func (h *DoctorHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Err(c, http.StatusNotFound, "doctor not found")
		return
	}
	if h.Logger != nil {
		h.Logger.WithError(err).Error("doctor request failed")
	}
	response.Err(c, http.StatusInternalServerError, "unexpected error")
}
