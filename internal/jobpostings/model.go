package jobpostings

import "time"

// Source describes where the job description text came from.
const (
	SourcePasted = "pasted"
	SourceURL    = "url"
)

// JobPosting is a normalized plain-text job description.
type JobPosting struct {
	ID        string    `json:"jobId"`
	Source    string    `json:"source"`
	URL       string    `json:"url,omitempty"`
	Text      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
