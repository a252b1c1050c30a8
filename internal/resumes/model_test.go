package resumes

import "testing"

func TestCandidateName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "two word name", text: "Jane Doe\nBackend Engineer", want: "Jane Doe"},
		{name: "three word name", text: "Mary Jane Watson\nEngineer", want: "Mary Jane Watson"},
		{name: "name after label", text: "RESUME\nJane Doe\njane@example.com", want: "Jane Doe"},
		{name: "no name shaped text", text: "backend engineer golang postgres", want: "Applicant"},
		{name: "empty", text: "", want: "Applicant"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := Resume{Text: tt.text}
			if got := r.CandidateName(); got != tt.want {
				t.Fatalf("CandidateName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidateName_OnlyScansHead(t *testing.T) {
	text := string(make([]byte, 600)) + "Jane Doe"
	r := Resume{Text: text}
	if got := r.CandidateName(); got != "Applicant" {
		t.Fatalf("expected name outside the first 500 chars ignored, got %q", got)
	}
}
