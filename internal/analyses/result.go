package analyses

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// parsedResult is the normalized shape recovered from model output.
type parsedResult struct {
	MatchPercent    *int
	MissingKeywords []string
	Suggestions     []string
	Assessment      string
}

// parseResult recovers a usable result from whatever the model returned.
// The happy path is strict JSON; fenced JSON and "MATCH PERCENTAGE: 85%"
// style sectioned text are tolerated. The raw text always survives in
// Assessment when nothing better can be recovered, so callers never fail
// on shape alone.
func parseResult(raw string) parsedResult {
	cleaned := stripCodeFences(raw)

	if res, ok := parseJSONResult(cleaned); ok {
		return res
	}
	return parseSectionedResult(cleaned)
}

// stripCodeFences removes a surrounding markdown code fence, if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type jsonResult struct {
	MatchPercent           any      `json:"match_percent"`
	MatchPercentage        any      `json:"match_percentage"`
	MissingKeywords        []string `json:"missing_keywords"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	Suggestions            []string `json:"suggestions"`
	OverallAssessment      string   `json:"overall_assessment"`
	Assessment             string   `json:"assessment"`
}

func parseJSONResult(s string) (parsedResult, bool) {
	var decoded jsonResult
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return parsedResult{}, false
	}

	res := parsedResult{
		MissingKeywords: decoded.MissingKeywords,
		Suggestions:     decoded.ImprovementSuggestions,
		Assessment:      strings.TrimSpace(decoded.OverallAssessment),
	}
	if len(res.Suggestions) == 0 {
		res.Suggestions = decoded.Suggestions
	}
	if res.Assessment == "" {
		res.Assessment = strings.TrimSpace(decoded.Assessment)
	}

	percent := decoded.MatchPercent
	if percent == nil {
		percent = decoded.MatchPercentage
	}
	res.MatchPercent = coercePercent(percent)

	if res.MatchPercent == nil && len(res.MissingKeywords) == 0 && len(res.Suggestions) == 0 && res.Assessment == "" {
		return parsedResult{}, false
	}
	return res, true
}

// coercePercent accepts numbers and strings like "85" or "85%".
func coercePercent(v any) *int {
	var n int
	switch val := v.(type) {
	case float64:
		n = int(val)
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return clampPercent(n)
}

func clampPercent(n int) *int {
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return &n
}

var (
	percentPattern  = regexp.MustCompile(`(?i)match\s*percentage[^0-9]*([0-9]{1,3})`)
	barePercent     = regexp.MustCompile(`([0-9]{1,3})\s*%`)
	keywordsSection = regexp.MustCompile(`(?is)missing\s*keywords?\s*:?\s*(.*?)(?:\n\s*\n|improvement|overall|$)`)
	bulletPattern   = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s*(.+)$`)
)

// parseSectionedResult mines the sectioned prose the model falls back to
// when it ignores the JSON instruction.
func parseSectionedResult(s string) parsedResult {
	res := parsedResult{Assessment: strings.TrimSpace(s)}

	if m := percentPattern.FindStringSubmatch(s); len(m) == 2 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			res.MatchPercent = clampPercent(n)
		}
	} else if m := barePercent.FindStringSubmatch(s); len(m) == 2 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			res.MatchPercent = clampPercent(n)
		}
	}

	if m := keywordsSection.FindStringSubmatch(s); len(m) == 2 {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.Trim(strings.TrimSpace(part), ".-• ")
			if part != "" && len(part) < 60 {
				res.MissingKeywords = append(res.MissingKeywords, part)
			}
		}
	}

	for _, m := range bulletPattern.FindAllStringSubmatch(s, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			res.Suggestions = append(res.Suggestions, item)
		}
	}

	return res
}
