package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical assistant for a multi-subject sleep monitoring study.

You receive an aggregated report covering several monitored subjects. Each subject has a baseline (awake) session and up to three nap sessions, each with a composite 0-100 sleep quality score derived from heart rate, blood oxygen, temperature, motion, and muscle activity, plus whole-session features (heart rate variability, oxygen dips, motion totals). You must base your conclusions only on the provided data.

Your goals:
- Describe how the group slept in clear, neutral language.
- Compare subjects: who scored best and worst, how nap scores relate to baseline.
- Highlight notable per-subject patterns (oxygen dips, restlessness, sparse data).
- Give practical, behavioral suggestions for the next monitoring session.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- If a subject has little or no data, say that explicitly instead of guessing.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the group's sleep quality and the spread between subjects.",
  "observations": [
    "3-6 bullet points about per-subject and cross-subject patterns.",
    "At least one item comparing nap sessions to baseline.",
    "If relevant, one item about data coverage or missing channels."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about the monitoring setup if coverage is thin."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing the current monitoring report.

- "subjects" maps subject id to its sessions; each session has a composite score, valid reading count, data point count, and whole-session features.
- "subjectAverages", "bestSubject", and "worstSubject" summarize nap performance per subject.
- "baselineDeltas" gives each subject's nap average as a percentage change from their awake baseline.
- "global" summarizes every session score across all subjects.
- "responses", when present on a subject, holds their self-reported duration, quality, and disturbances.

JSON:

%s

Based on this data, respond in the required JSON format.`

// InsightsLLM is the interface for generating report insights using an LLM.
type InsightsLLM interface {
	// GenerateInsights takes an aggregate report and returns LLM-generated insights.
	GenerateInsights(ctx context.Context, report *domain.AggregateReport) (*domain.LLMInsightsOutput, error)
}

// OpenAIClient implements InsightsLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating insights.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateInsights calls OpenAI to summarize the report.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, report *domain.AggregateReport) (*domain.LLMInsightsOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	// Raw records dominate the report size and carry no signal the session
	// metrics do not already summarize; strip them before prompting.
	trimmed := *report
	trimmed.Subjects = make(map[int]domain.SubjectReport, len(report.Subjects))
	for id, subject := range report.Subjects {
		subject.RawData = nil
		trimmed.Subjects[id] = subject
	}

	reportJSON, err := json.MarshalIndent(&trimmed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize report: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(reportJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output domain.LLMInsightsOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
