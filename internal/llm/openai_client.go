package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/humngry/meal-tracker/internal/domain"
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

const systemPrompt = `You are a non-medical meal tracking assistant.

You receive precomputed analyses of a single user's meal log: hunger patterns, food spending, today's nutrition score card, and habit streaks. You must base your conclusions only on the provided data.

Your goals:
- Describe the user's recent eating in clear, neutral language.
- Highlight patterns in meal timing, satiety, spending, and nutrition-target adherence.
- Call out the strongest habit streak and the biggest gap.
- Give practical, behavioral suggestions grounded in these numbers.

Rules:
- Do NOT provide medical advice, diagnoses, or weight-loss prescriptions.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines (meal timing, cooking at home, budgeting, protein and fiber choices).
- Never invent numbers; only restate figures present in the data.
- If data is limited, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the user's eating patterns and spending.",
  "observations": [
    "3-6 bullet points about patterns in hunger, timing, spending, and nutrition scores.",
    "At least one item about the most and least satiating foods if present.",
    "If relevant, one item about budget adherence."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about meal timing if patterns show recurring hunger spikes.",
    "Include at least one suggestion about the largest nutrition gap if one exists."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's meal data.

- "hunger" contains the current hunger score, per-food satiety effectiveness, recurring hunger patterns, and a heatmap.
- "cost" contains the monthly spending breakdown, cost-per-calorie rankings, and spending insights.
- "score_card" grades today's intake against the user's calorie/protein/fiber/budget targets.
- "habits" lists streaks and consistency for home cooking, protein, and meal timing.

JSON:

%s

Based on this data, respond in the required JSON format.`

// InsightsLLM is the interface for narrating meal insights using an LLM.
type InsightsLLM interface {
	// GenerateInsights takes the precomputed analyses and returns a narrative.
	GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error)
}

// OpenAIClient implements InsightsLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for narrating insights.
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

// GenerateInsights calls OpenAI to narrate the precomputed analyses.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(insightsCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

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
