package llm

import (
	_ "embed"
	"strings"

	"applymail-backend/internal/shared/util"
)

var (
	//go:embed prompts/analyze.txt
	analyzeTemplate string
	//go:embed prompts/compose.txt
	composeTemplate string
)

const (
	systemAnalyze = "You are a professional resume analyst. Respond with JSON only. No markdown. Never omit keys."
	systemCompose = "You are an assistant writing professional job application emails. Be natural and authentic."

	// Large documents get truncated before templating so prompts stay
	// within provider limits.
	analyzeInputCap = 6000
	composeInputCap = 4000
)

// BuildAnalyzeRequest renders the match-analysis prompt.
func BuildAnalyzeRequest(resumeText, jobText string) Request {
	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", truncate(jobText, analyzeInputCap),
		"{{RESUME}}", truncate(resumeText, analyzeInputCap),
	)
	return Request{
		System:   systemAnalyze,
		Prompt:   replacer.Replace(analyzeTemplate),
		WantJSON: true,
	}
}

// BuildComposeRequest renders the email-drafting prompt.
func BuildComposeRequest(resumeText, jobText, candidateName, analysisSummary string) Request {
	if strings.TrimSpace(candidateName) == "" {
		candidateName = "Applicant"
	}
	if strings.TrimSpace(analysisSummary) == "" {
		analysisSummary = "N/A"
	}
	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", truncate(jobText, composeInputCap),
		"{{RESUME}}", truncate(resumeText, composeInputCap),
		"{{CANDIDATE_NAME}}", candidateName,
		"{{ANALYSIS}}", truncate(analysisSummary, composeInputCap),
	)
	return Request{
		System: systemCompose,
		Prompt: replacer.Replace(composeTemplate),
	}
}

func truncate(s string, max int) string {
	return util.Truncate(strings.TrimSpace(s), max)
}
