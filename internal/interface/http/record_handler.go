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

const maxAttachmentBytes = 10 << 20 // 10 MiB

// RecordHandler serves the authenticated patient's medical records.
type RecordHandler struct {
	Service *application.RecordService
	Logger  *logrus.Logger
}

func NewRecordHandler(service *application.RecordService, logger *logrus.Logger) *RecordHandler {
	return &RecordHandler{Service: service, Logger: logger}
}

type recordRequest struct {
	DoctorID    string `json:"doctorId"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,oneof=diagnosis prescription lab-result imaging vaccination surgery other"`
	Date        string `json:"date" binding:"required,appdate"`
}

type updateRecordRequest struct {
	DoctorID    string `json:"doctorId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,oneof=diagnosis prescription lab-result imaging vaccination surgery other"`
	Date        string `json:"date" binding:"omitempty,appdate"`
}

type recordJSON struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patientId"`
	DoctorID    string   `json:"doctorId,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Attachments []string `json:"attachments"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toRecordJSON(r *entity.MedicalRecord) recordJSON {
	atts := r.Attachments
	if atts == nil {
		atts = []string{}
	}
	return recordJSON{
		ID:          r.ID,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		Title:       r.Title,
		Description: r.Description,
		Category:    string(r.Category),
		Date:        r.Date,
		Attachments: atts,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/medical-records
func (h *RecordHandler) Create(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	rec, err := h.Service.Create(c.Request.Context(), accountID(c), application.RecordInput{
		DoctorID:    req.DoctorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.RecordCategory(req.Category),
		Date:        req.Date,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toRecordJSON(rec))
}

// List handles GET /api/medical-records with optional category filter.
func (h *RecordHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", defaultPageLimit)
	category := entity.RecordCategory(c.Query("category"))

	recs, total, err := h.Service.List(c.Request.Context(), accountID(c), category, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]recordJSON, 0, len(recs))
	for _, r := range recs {
		out = append(out, toRecordJSON(r))
	}
	response.Paginated(c, http.StatusOK, out, total, page, limit)
}

// Update handles PUT /api/medical-records/:id
func (h *RecordHandler) Update(c *gin.Context) {
	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	rec, err := h.Service.Update(c.Request.Context(), accountID(c), c.Param("id"), application.RecordInput{
		DoctorID:    req.DoctorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.RecordCategory(req.Category),
		Date:        req.Date,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toRecordJSON(rec))
}

// Delete handles DELETE /api/medical-records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), accountID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "record deleted"})
}

// AddAttachment handles POST /api/medical-records/:id/attachments with a
// multipart "file" field.
func (h *RecordHandler) AddAttachment(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "file is required")
		return
	}
	if fh.Size > maxAttachmentBytes {
		response.Err(c, http.StatusBadRequest, "file too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Service.AddAttachment(
		c.Request.Context(),
		accountID(c),
		c.Param("id"),
		f,
		fh.Filename,
		fh.Header.Get("Content-Type"),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"url": url})
}

func (h *RecordHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		response.Err(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, repository.ErrNotFound):
		response.Err(c, http.StatusNotFound, "record not found")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("medical record request failed")
		}
		response.Err(c, http.StatusInternalServerError, "unexpected error")
	}
}
