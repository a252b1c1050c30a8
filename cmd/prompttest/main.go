package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"applymail-backend/internal/extract"
	"applymail-backend/internal/llm"
	"applymail-backend/internal/llm/gemini"
	"applymail-backend/internal/llm/openai"
	"applymail-backend/internal/resumes"
	"applymail-backend/internal/shared/config"
)

// prompttest runs the analyze or compose prompt against a local resume
// and job description file, printing the raw model output. Useful for
// iterating on prompt templates without the HTTP surface.
func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or txt)")
	jdPath := flag.String("jd", "", "Path to job description text file")
	mode := flag.String("mode", "analyze", "Prompt to run: analyze or compose")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	dry := flag.Bool("dry", false, "Print the rendered prompt instead of calling the model")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	if strings.TrimSpace(*jdPath) == "" {
		exitErr("job description path is required")
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	fileName := filepath.Base(*resumePath)

	resumeText, err := extract.Text(context.Background(), resumeBytes, "", fileName)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}
	jobText := string(jdBytes)

	var req llm.Request
	switch *mode {
	case "analyze":
		req = llm.BuildAnalyzeRequest(resumeText, jobText)
	case "compose":
		name := (resumes.Resume{Text: resumeText}).CandidateName()
		req = llm.BuildComposeRequest(resumeText, jobText, name, "")
	default:
		exitErr(fmt.Sprintf("unknown mode %q", *mode))
	}

	if *dry {
		fmt.Println("--- system ---")
		fmt.Println(req.System)
		fmt.Println("--- prompt ---")
		fmt.Println(req.Prompt)
		return
	}

	client, err := buildClient(cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	out, err := client.Complete(context.Background(), req)
	if err != nil {
		exitErr(fmt.Sprintf("llm complete: %v", err))
	}
	fmt.Println(out)
}

func buildClient(cfg config.Config, provider, model string) (llm.Client, error) {
	switch strings.TrimSpace(provider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return openai.NewClient(cfg.OpenAIAPIKey, model)
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return gemini.NewClient(context.Background(), cfg.GeminiAPIKey, model)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
	os.Exit(1)
}
