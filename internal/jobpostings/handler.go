package jobpostings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"applymail-backend/internal/shared/server/respond"
	"applymail-backend/internal/shared/util"
)

const previewLen = 280

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job posting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobpostings", h.create)
	rg.GET("/jobpostings/current", h.current)
}

type createRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	req.URL = strings.TrimSpace(req.URL)

	if (req.Text == "") == (req.URL == "") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "provide exactly one of text or url", nil)
		return
	}

	var job JobPosting
	var err error
	if req.URL != "" {
		job, err = h.Svc.FetchURL(c.Request.Context(), req.URL)
	} else {
		job, err = h.Svc.SetText(c.Request.Context(), req.Text)
	}
	if err != nil {
		var badStatus *BadStatusError
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "job description text is required", nil)
		case errors.Is(err, ErrInvalidURL):
			respond.Error(c, http.StatusBadRequest, "invalid_url", "job posting url is not a valid http(s) url", nil)
		case errors.As(err, &badStatus):
			respond.Error(c, http.StatusBadGateway, "bad_status", "could not retrieve job description", gin.H{"statusCode": badStatus.StatusCode})
		case errors.Is(err, ErrNotHTML):
			respond.Error(c, http.StatusUnprocessableEntity, "not_html", "job posting url did not return an html page", nil)
		case errors.Is(err, ErrEmptyContent):
			respond.Error(c, http.StatusUnprocessableEntity, "empty_content", err.Error(), nil)
		case errors.Is(err, ErrFetch):
			respond.Error(c, http.StatusBadGateway, "fetch_failed", "could not retrieve job description", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record job posting", nil)
		}
		return
	}

	c.Set("jobId", job.ID)
	respond.Created(c, toResponse(job))
}

func (h *Handler) current(c *gin.Context) {
	job, err := h.Svc.Current(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no job posting set yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job posting", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(job))
}

func toResponse(job JobPosting) gin.H {
	preview := job.Text
	if len(preview) > previewLen {
		preview = util.Truncate(preview, previewLen) + "..."
	}
	return gin.H{
		"jobId":     job.ID,
		"source":    job.Source,
		"url":       job.URL,
		"charCount": len(job.Text),
		"preview":   preview,
		"createdAt": job.CreatedAt,
	}
}
