package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/utils"
)

const systemPromptFormat = `You are an AI assistant for the Unified Dash infrastructure control plane.
Parse user commands and return structured JSON responses.

Available services: %s

Respond with:
- intent: one of "open_service", "view_logs", "restart_service", "query_status", "unknown"
- confidence: 0-1 score
- serviceId: the service ID if applicable (match loosely by name)
- message: friendly response to the user
- requiresConfirmation: true for destructive actions`

// OpenAIInterpreter is the delegated command mode: classification is
// performed by an OpenAI-compatible chat model returning a JSON object.
type OpenAIInterpreter struct {
	store   *store.Store
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *utils.Logger
}

// NewOpenAIInterpreter builds the delegated interpreter against the given
// OpenAI-compatible endpoint. Calls are bounded by timeout; the model's own
// latency is otherwise unbounded.
func NewOpenAIInterpreter(st *store.Store, baseURL, apiKey, model string, timeout time.Duration, logger *utils.Logger) *OpenAIInterpreter {
	return &OpenAIInterpreter{
		store:   st,
		// Failures surface to the caller as a single degraded result, so the
		// SDK's own retry loop is disabled.
		client:  openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apiKey), option.WithMaxRetries(0)),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// modelAnswer is the JSON object the model is instructed to return. Pointer
// fields distinguish absent values so defaults can be applied.
type modelAnswer struct {
	Intent               string   `json:"intent"`
	Confidence           *float64 `json:"confidence"`
	ServiceID            string   `json:"serviceId"`
	Message              string   `json:"message"`
	RequiresConfirmation bool     `json:"requiresConfirmation"`
}

// Interpret sends the command to the model along with the service roster and
// maps the answer onto the result contract. Any capability failure collapses
// to a single unknown result with zero confidence; nothing is retried.
func (o *OpenAIInterpreter) Interpret(ctx context.Context, cmd string) models.CommandResponse {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	answer, err := o.classify(ctx, cmd)
	if err != nil {
		o.logger.Writef("AI command error: %v", err)
		return models.CommandResponse{
			Intent:     models.IntentUnknown,
			Confidence: 0,
			Message:    "Sorry, I encountered an error processing your command.",
		}
	}

	resp := models.CommandResponse{
		Intent:               answer.Intent,
		Confidence:           0.5,
		ServiceID:            answer.ServiceID,
		Message:              answer.Message,
		RequiresConfirmation: answer.RequiresConfirmation,
	}
	if resp.Intent == "" {
		resp.Intent = models.IntentUnknown
	}
	if answer.Confidence != nil {
		resp.Confidence = *answer.Confidence
	}
	if resp.Message == "" {
		resp.Message = "I'm not sure what you want to do."
	}

	// A resolvable open_service without a URL is unusable; downgrade it.
	if resp.Intent == models.IntentOpenService && resp.ServiceID != "" {
		svc, err := o.store.GetService(resp.ServiceID)
		switch {
		case err == nil && svc.URL != "":
			resp.Message = openingMessage(svc.Name)
		case err == nil:
			resp.Message = noURLMessage(svc.Name)
			resp.Intent = models.IntentUnknown
		default:
			resp.Message = noURLMessage("Service")
			resp.Intent = models.IntentUnknown
		}
	}

	return resp
}

func (o *OpenAIInterpreter) classify(ctx context.Context, cmd string) (modelAnswer, error) {
	systemPrompt := fmt.Sprintf(systemPromptFormat, serviceRoster(o.store))

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(cmd),
		},
		MaxCompletionTokens: openai.Int(500),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return modelAnswer{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return modelAnswer{}, errors.New("chat completion returned no choices")
	}

	var answer modelAnswer
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &answer); err != nil {
		return modelAnswer{}, fmt.Errorf("decode model answer: %w", err)
	}
	return answer, nil
}
