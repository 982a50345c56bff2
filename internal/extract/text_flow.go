package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// TextFlow extracts invoice items from free-form text.
type TextFlow struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewTextFlow creates a text extraction flow.
func NewTextFlow(client *openai.Client, model string, logger *zap.Logger) *TextFlow {
	return &TextFlow{client: client, model: model, logger: logger}
}

// Parse extracts items from text. It never fails: network errors,
// malformed model output, and "nothing found" all come back as an empty
// item list, distinguishable only in the logs.
func (f *TextFlow) Parse(ctx context.Context, text string) Result {
	rid := uuid.New().String()
	start := time.Now()

	items, err := f.parse(ctx, rid, text)
	if err != nil {
		f.logger.Error("Text extraction failed, falling back to empty items",
			zap.String("request_id", rid),
			zap.Int("text_len", len(text)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return emptyResult()
	}

	f.logger.Info("Text extraction completed",
		zap.String("request_id", rid),
		zap.Int("item_count", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return Result{Items: items}
}

func (f *TextFlow) parse(ctx context.Context, rid, text string) ([]Item, error) {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return nil, fmt.Errorf("input text must be at least %d characters long", MinTextLength)
	}

	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       f.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildTextPrompt(text),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in model response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	items, dropped, err := DecodeItems([]byte(content))
	if err != nil {
		f.logger.Warn("Model returned an unusable payload",
			zap.String("request_id", rid),
			zap.String("content", content))
		return nil, err
	}
	if len(dropped) > 0 {
		f.logger.Warn("Sanitized model payload",
			zap.String("request_id", rid),
			zap.Strings("dropped", dropped))
	}

	return items, nil
}
