package analyses

import (
	"fmt"
	"strings"
	"time"
)

// Analysis is an LLM compatibility assessment of one (resume, job) pair.
type Analysis struct {
	ID              string    `json:"analysisId"`
	ResumeID        string    `json:"resumeId"`
	JobID           string    `json:"jobId"`
	MatchPercent    *int      `json:"matchPercent"`
	MissingKeywords []string  `json:"missingKeywords"`
	Suggestions     []string  `json:"suggestions"`
	Assessment      string    `json:"assessment"`
	Raw             string    `json:"raw"`
	Provider        string    `json:"provider"`
	Model           string    `json:"model,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Summary renders the analysis as short plain text for downstream prompts.
func (a Analysis) Summary() string {
	var b strings.Builder
	if a.MatchPercent != nil {
		fmt.Fprintf(&b, "Match: %d%%\n", *a.MatchPercent)
	}
	if len(a.MissingKeywords) > 0 {
		fmt.Fprintf(&b, "Missing keywords: %s\n", strings.Join(a.MissingKeywords, ", "))
	}
	if a.Assessment != "" {
		b.WriteString(a.Assessment)
	}
	return strings.TrimSpace(b.String())
}
