package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/sashabaranov/go-openai"
)

// AIService suggests a feeling tag for a comment draft. It is optional
// wiring: when no API key is configured the handler reports the feature as
// unavailable.
type AIService struct {
	client *openai.Client
}

type FeelingSuggestion struct {
	Feeling    models.CommentFeelingTag `json:"feeling"`
	Confidence float64                  `json:"confidence"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestFeelingFromText asks the model to classify a comment draft into
// one of the known feeling tags.
func (s *AIService) SuggestFeelingFromText(ctx context.Context, text string) (*FeelingSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	tags := make([]string, len(models.AllFeelingTags))
	for i, tag := range models.AllFeelingTags {
		tags[i] = string(tag)
	}

	prompt := fmt.Sprintf(`You classify feedback on music recordings. Pick the single feeling tag that best matches the comment below.

Allowed tags: %s

Comment:
%s

Respond with JSON only, in the form {"feeling": "<TAG>", "confidence": <0..1>}.`,
		strings.Join(tags, ", "), text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var suggestion FeelingSuggestion
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	if !suggestion.Feeling.IsValid() {
		return nil, fmt.Errorf("AI returned an unknown feeling tag: %s", suggestion.Feeling)
	}

	return &suggestion, nil
}
