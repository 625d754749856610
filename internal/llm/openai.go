// Package llm provides a direct LLM-backed symptom analyzer used when the
// platform's diagnosis endpoint cannot be reached and an API key is
// configured. It produces the same report shape as the remote checker.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"careportal/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// Analyzer turns a symptom description into an advisory report.
type Analyzer interface {
	Analyze(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisReport, error)
}

// systemPrompt constrains the model to the report schema and to advisory
// language. The output must be bare JSON so it can be parsed directly.
const systemPrompt = "You are a cautious medical triage assistant. " +
	"Given a patient's symptoms, age, gender and medical history, respond with ONLY a JSON object " +
	`of the form {"conditions":[],"treatments":[],"medications":[]}: ` +
	"up to five possible conditions, general self-care or treatment directions, and over-the-counter " +
	"medication classes. Never present the output as a diagnosis; always assume the patient will " +
	"consult a clinician. No prose outside the JSON."

// OpenAIAnalyzer calls the OpenAI chat completion API.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer constructs an analyzer for the given API key. The model
// can be left empty to use a small default.
func NewOpenAIAnalyzer(apiKey, model string) *OpenAIAnalyzer {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIAnalyzer{client: openai.NewClient(apiKey), model: model}
}

func (a *OpenAIAnalyzer) Analyze(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisReport, error) {
	user := fmt.Sprintf("Symptoms: %s\nAge: %s\nGender: %s\nMedical history: %s",
		strings.Join(req.Symptoms, "; "), req.Age, req.Gender, req.MedicalHistory)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("llm analyze: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm analyze: empty response")
	}

	return parseReport(resp.Choices[0].Message.Content)
}

// parseReport extracts the JSON object from the model output; some models
// wrap it in code fences despite instructions.
func parseReport(content string) (*models.DiagnosisReport, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("llm analyze: no JSON in response %q", content)
	}

	var report models.DiagnosisReport
	if err := json.Unmarshal([]byte(content[start:end+1]), &report); err != nil {
		return nil, fmt.Errorf("llm analyze: decode report: %w", err)
	}
	return &report, nil
}
