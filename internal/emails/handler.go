package emails

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"applymail-backend/internal/analyses"
	"applymail-backend/internal/gmail"
	"applymail-backend/internal/jobpostings"
	"applymail-backend/internal/resumes"
	"applymail-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches email routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/emails", h.compose)
	rg.POST("/emails/:id/dispatch", h.dispatch)
	rg.GET("/emails/:id", h.get)
	rg.GET("/history", h.history)
}

type composeRequest struct {
	ResumeID   string `json:"resumeId"`
	JobID      string `json:"jobId"`
	AnalysisID string `json:"analysisId"`
	Recipient  string `json:"recipient"`
}

func (h *Handler) compose(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.ResumeID = strings.TrimSpace(req.ResumeID)
	req.JobID = strings.TrimSpace(req.JobID)
	if req.ResumeID == "" || req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId and jobId are required", nil)
		return
	}

	email, err := h.Svc.Compose(c.Request.Context(), req.ResumeID, req.JobID, strings.TrimSpace(req.AnalysisID), req.Recipient)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "a valid recipient email address is required", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, jobpostings.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job posting not found", nil)
		case errors.Is(err, analyses.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, ErrLLM):
			respond.Error(c, http.StatusBadGateway, "llm_failed", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compose email", nil)
		}
		return
	}

	c.Set("emailId", email.ID)
	respond.Created(c, email)
}

type dispatchRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) dispatch(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	email, err := h.Svc.Dispatch(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Mode))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "email not found", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, gmail.ErrAuth):
			respond.Error(c, http.StatusUnauthorized, "auth_failed", "gmail credentials are missing or expired", nil)
		case errors.Is(err, ErrDispatch):
			respond.Error(c, http.StatusBadGateway, "dispatch_failed", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to dispatch email", nil)
		}
		return
	}

	c.Set("emailId", email.ID)
	respond.JSON(c, http.StatusOK, gin.H{
		"emailId":    email.ID,
		"status":     email.Status,
		"mode":       email.Mode,
		"providerId": email.ProviderID,
	})
}

func (h *Handler) get(c *gin.Context) {
	email, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "email not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch email", nil)
		}
		return
	}
	respond.OK(c, email)
}

func (h *Handler) history(c *gin.Context) {
	entries := h.Svc.RecentHistory()
	if entries == nil {
		entries = []HistoryEntry{}
	}
	respond.OK(c, entries)
}
