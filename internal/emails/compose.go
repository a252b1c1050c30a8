package emails

import (
	"fmt"
	"regexp"
	"strings"
)

// parseDraft splits LLM output into a subject line and body. The model is
// asked to lead with "Subject: ...", but output drifts, so parsing is
// forgiving and always produces something sendable.
func parseDraft(raw, candidateName string) (subject, body string) {
	lines := strings.Split(raw, "\n")

	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "subject:") {
			subject = strings.SplitN(line, ":", 2)[1]
			for j := i + 1; j < len(lines); j++ {
				if strings.TrimSpace(lines[j]) != "" {
					body = strings.Join(lines[j:], "\n")
					break
				}
			}
			break
		}
	}

	if subject == "" {
		// No explicit subject; take an early line that reads like one.
		for _, line := range lines[:min(3, len(lines))] {
			lower := strings.ToLower(line)
			if strings.Contains(lower, "application") || strings.Contains(lower, "position") ||
				strings.Contains(lower, "role") || strings.Contains(lower, "job") {
				subject = line
				break
			}
		}
		body = raw
	}

	subject = strings.TrimSpace(strings.Trim(strings.TrimSpace(subject), `"'`))
	if subject == "" {
		subject = "Job Application - " + candidateName
	}

	body = formatBusinessLetter(strings.TrimSpace(body))
	if body == "" {
		body = fallbackBody(candidateName)
	}
	return subject, body
}

var (
	greetingPattern = regexp.MustCompile(`^(Dear [^,\n]+),?\s*\n?`)
	closingPattern  = regexp.MustCompile(`\n*(Sincerely,|Best regards,|Warm regards,)\s*\n*([A-Za-z .'-]+)\s*$`)
)

// formatBusinessLetter normalizes line endings, reflows paragraphs and
// pins the greeting and closing to their own blocks.
func formatBusinessLetter(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	body = greetingPattern.ReplaceAllString(body, "$1,\n\n")

	var paragraphs []string
	var current []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	out := strings.Join(paragraphs, "\n\n")

	out = closingPattern.ReplaceAllString(out, "\n\n$1\n$2")
	return strings.TrimSpace(out)
}

func fallbackBody(candidateName string) string {
	return fmt.Sprintf(`Dear Hiring Team,

I am interested in applying for the position at your company.

My background and experience are outlined in the attached resume. I would appreciate the opportunity to discuss my qualifications with you.

Thank you for your consideration.

Best regards,
%s`, candidateName)
}
