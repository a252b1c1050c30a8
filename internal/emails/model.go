package emails

import "time"

// Email lifecycle states.
const (
	StatusComposed   = "composed"
	StatusDispatched = "dispatched"
)

// Dispatch modes.
const (
	ModeDraft = "draft"
	ModeSend  = "send"
)

// Email is a drafted application email for one (resume, job) pair.
type Email struct {
	ID         string    `json:"emailId"`
	ResumeID   string    `json:"resumeId"`
	JobID      string    `json:"jobId"`
	AnalysisID string    `json:"analysisId,omitempty"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	Mode       string    `json:"mode,omitempty"`
	ProviderID string    `json:"providerId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
