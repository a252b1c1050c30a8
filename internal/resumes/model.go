package resumes

import (
	"regexp"
	"time"
)

// Resume is an uploaded resume file plus its extracted text.
type Resume struct {
	ID         string    `json:"resumeId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"-"`
	Text       string    `json:"-"`
	CreatedAt  time.Time `json:"uploadedAt"`
}

var namePattern = regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+){1,2})`)

// CandidateName guesses the applicant's name from the top of the resume.
// Falls back to "Applicant" when nothing name-shaped appears.
func (r Resume) CandidateName() string {
	head := r.Text
	if len(head) > 500 {
		head = head[:500]
	}
	if match := namePattern.FindString(head); match != "" {
		return match
	}
	return "Applicant"
}
