package analyses

import (
	"reflect"
	"testing"
)

func TestParseResult_StrictJSON(t *testing.T) {
	raw := `{"match_percent": 85, "missing_keywords": ["Kubernetes", "Terraform"], "improvement_suggestions": ["Quantify achievements"], "overall_assessment": "Strong backend fit."}`

	res := parseResult(raw)
	if res.MatchPercent == nil || *res.MatchPercent != 85 {
		t.Fatalf("expected match percent 85, got %v", res.MatchPercent)
	}
	if !reflect.DeepEqual(res.MissingKeywords, []string{"Kubernetes", "Terraform"}) {
		t.Fatalf("unexpected keywords: %v", res.MissingKeywords)
	}
	if !reflect.DeepEqual(res.Suggestions, []string{"Quantify achievements"}) {
		t.Fatalf("unexpected suggestions: %v", res.Suggestions)
	}
	if res.Assessment != "Strong backend fit." {
		t.Fatalf("unexpected assessment: %q", res.Assessment)
	}
}

func TestParseResult_FencedJSON(t *testing.T) {
	raw := "```json\n{\"match_percent\": \"72%\", \"overall_assessment\": \"Decent fit.\"}\n```"

	res := parseResult(raw)
	if res.MatchPercent == nil || *res.MatchPercent != 72 {
		t.Fatalf("expected match percent 72, got %v", res.MatchPercent)
	}
	if res.Assessment != "Decent fit." {
		t.Fatalf("unexpected assessment: %q", res.Assessment)
	}
}

func TestParseResult_AliasKeys(t *testing.T) {
	raw := `{"match_percentage": 60, "suggestions": ["Add metrics"], "assessment": "Okay."}`

	res := parseResult(raw)
	if res.MatchPercent == nil || *res.MatchPercent != 60 {
		t.Fatalf("expected match percent 60, got %v", res.MatchPercent)
	}
	if !reflect.DeepEqual(res.Suggestions, []string{"Add metrics"}) {
		t.Fatalf("unexpected suggestions: %v", res.Suggestions)
	}
	if res.Assessment != "Okay." {
		t.Fatalf("unexpected assessment: %q", res.Assessment)
	}
}

func TestParseResult_ClampsPercent(t *testing.T) {
	res := parseResult(`{"match_percent": 150, "overall_assessment": "x"}`)
	if res.MatchPercent == nil || *res.MatchPercent != 100 {
		t.Fatalf("expected clamp to 100, got %v", res.MatchPercent)
	}

	res = parseResult(`{"match_percent": -3, "overall_assessment": "x"}`)
	if res.MatchPercent == nil || *res.MatchPercent != 0 {
		t.Fatalf("expected clamp to 0, got %v", res.MatchPercent)
	}
}

func TestParseResult_SectionedText(t *testing.T) {
	raw := `MATCH PERCENTAGE: 78%

MISSING KEYWORDS: Kubernetes, Terraform, CI/CD

IMPROVEMENT SUGGESTIONS:
- Add cloud experience
- Quantify achievements

OVERALL ASSESSMENT: Solid backend profile.`

	res := parseResult(raw)
	if res.MatchPercent == nil || *res.MatchPercent != 78 {
		t.Fatalf("expected match percent 78, got %v", res.MatchPercent)
	}
	if len(res.MissingKeywords) != 3 || res.MissingKeywords[0] != "Kubernetes" {
		t.Fatalf("unexpected keywords: %v", res.MissingKeywords)
	}
	if len(res.Suggestions) != 2 {
		t.Fatalf("unexpected suggestions: %v", res.Suggestions)
	}
	if res.Assessment == "" {
		t.Fatal("expected the raw text preserved as assessment")
	}
}

func TestParseResult_UnstructuredProse(t *testing.T) {
	raw := "The resume looks reasonable for the role, though tooling depth is unclear."

	res := parseResult(raw)
	if res.MatchPercent != nil {
		t.Fatalf("expected no match percent, got %v", *res.MatchPercent)
	}
	if res.Assessment != raw {
		t.Fatalf("expected raw text preserved, got %q", res.Assessment)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "padded", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Fatalf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
