package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// dataURIPattern matches "data:<mimetype>;base64,<encoded_data>".
var dataURIPattern = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,\S+`)

// ImageFlow extracts invoice items from an invoice photo supplied as a
// base64 data URI.
type ImageFlow struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewImageFlow creates an image extraction flow.
func NewImageFlow(client *openai.Client, model string, logger *zap.Logger) *ImageFlow {
	return &ImageFlow{client: client, model: model, logger: logger}
}

// Parse extracts items from an invoice photo. Same contract as the text
// flow: it never fails, all failure layers collapse to an empty list.
func (f *ImageFlow) Parse(ctx context.Context, photoDataURI string) Result {
	rid := uuid.New().String()
	start := time.Now()

	items, err := f.parse(ctx, rid, photoDataURI)
	if err != nil {
		f.logger.Error("Image extraction failed, falling back to empty items",
			zap.String("request_id", rid),
			zap.Int("payload_len", len(photoDataURI)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return emptyResult()
	}

	f.logger.Info("Image extraction completed",
		zap.String("request_id", rid),
		zap.Int("item_count", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return Result{Items: items}
}

func (f *ImageFlow) parse(ctx context.Context, rid, photoDataURI string) ([]Item, error) {
	if !dataURIPattern.MatchString(photoDataURI) {
		return nil, fmt.Errorf("photo must be a base64 image data URI")
	}

	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       f.model,
		Temperature: 0.2,
		MaxTokens:   4096,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: buildImagePrompt(),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    photoDataURI,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision completion: %w", err)
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
