package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/application"
	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
	"github.com/medibook/medibook-api/pkg/response"
	"github.com/medibook/medibook-api/pkg/validation"
)

// AppointmentHandler serves the authenticated patient's bookings.
type AppointmentHandler struct {
	Service *application.AppointmentService
	Logger  *logrus.Logger
}

func NewAppointmentHandler(service *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: service, Logger: logger}
}

type createAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required,appdate"`
	Time     string `json:"time" binding:"required,apptime"`
	Type     string `json:"type" binding:"omitempty,oneof=in-person video phone"`
	Notes    string `json:"notes"`
}

type updateAppointmentRequest struct {
	Date   string `json:"date" binding:"omitempty,appdate"`
	Time   string `json:"time" binding:"omitempty,apptime"`
	Status string `json:"status" binding:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	Type   string `json:"type" binding:"omitempty,oneof=in-person video phone"`
	Notes  string `json:"notes"`
}

type appointmentJSON struct {
	ID        string `json:"id"`
	DoctorID  string `json:"doctorId"`
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toAppointmentJSON(a *entity.Appointment) appointmentJSON {
	return appointmentJSON{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Date:      a.Date,
		Time:      a.Time,
		Status:    string(a.Status),
		Type:      string(a.Type),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	appt, err := h.Service.Create(c.Request.Context(), accountID(c), application.CreateAppointmentInput{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
		Type:     entity.AppointmentType(req.Type),
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toAppointmentJSON(appt))
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", defaultPageLimit)

	appts, total, err := h.Service.List(c.Request.Context(), accountID(c), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]appointmentJSON, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentJSON(a))
	}
	response.Paginated(c, http.StatusOK, out, total, page, limit)
}

// Update handles PUT /api/appointments/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	appt, err := h.Service.Update(c.Request.Context(), accountID(c), c.Param("id"), application.UpdateAppointmentInput{
		Date:   req.Date,
		Time:   req.Time,
		Status: entity.AppointmentStatus(req.Status),
		Type:   entity.AppointmentType(req.Type),
		Notes:  req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toAppointmentJSON(appt))
}

// Cancel handles DELETE /api/appointments/:id. The row is kept; only the
// status flips to cancelled.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appt, err := h.Service.Cancel(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toAppointmentJSON(appt))
}

func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		response.Err(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, repository.ErrNotFound):
		response.Err(c, http.StatusNotFound, "appointment not found")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("appointment request failed")
		}
		response.Err(c, http.StatusInternalServerError, "unexpected error")
	}
}
