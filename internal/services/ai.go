package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// AIService drafts sub-task lists for a checkpoint from its description, for
// teachers sketching a new stage in the admin console.
type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestSubTasks asks the model for a short ordered list of sub-task names
// covering the given build stage.
func (s *AIService) SuggestSubTasks(ctx context.Context, title, description string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are helping a robotics teacher break a build stage into checklist items.

Stage: %s
Description: %s

Return a JSON array of 3-6 short sub-task names, in build order, e.g.
["Build chassis frame", "Install 4 motors"]. Return only the JSON array.`, title, description)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var subTasks []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &subTasks); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return subTasks, nil
}
