package clients

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"

	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// LLMClient talks to the LLM gateway service through its OpenAI-compatible
// surface. Brief dialogs hand it the full stored history on every turn.
type LLMClient struct {
	client *openai.Client
	model  string
}

func NewLLMClient(token, baseURL, model string) *LLMClient {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &LLMClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// BriefResponse is the JSON shape every brief turn must produce. Exactly
// one of the data payloads is set once the interview is complete;
// MessageToUser carries the next question otherwise.
type BriefResponse struct {
	MessageToUser    string                  `json:"message_to_user"`
	OrganizationData *types.OrganizationData `json:"organization_data,omitempty"`
	CategoryData     *types.CategoryData     `json:"category_data,omitempty"`
}

func (c *LLMClient) Brief(ctx context.Context, systemPrompt string, history []types.LLMMessage) (*BriefResponse, int, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Text,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, 0, errors.NewTransport("clients.llm.Brief", err)
	}
	if len(resp.Choices) == 0 {
		return nil, 0, errors.NewDecode("clients.llm.Brief", errEmptyChoices)
	}

	var out BriefResponse
	if err = json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return nil, 0, errors.NewDecode("clients.llm.Brief", err)
	}
	return &out, resp.Usage.TotalTokens, nil
}

const summaryPrompt = "Summarize the conversation so far into a compact brief of all facts the user has provided. Answer with plain text only."

// Summarize collapses a long history into one synthetic summary line.
func (c *LLMClient) Summarize(ctx context.Context, history []types.LLMMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Text,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: summaryPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", errors.NewTransport("clients.llm.Summarize", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewDecode("clients.llm.Summarize", errEmptyChoices)
	}
	return resp.Choices[0].Message.Content, nil
}
