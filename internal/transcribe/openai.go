package transcribe

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// OpenAI transcribes audio through the Whisper API
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI creates the provider. baseURL overrides the API endpoint for
// OpenAI-compatible gateways; empty means the default.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg)}
}

func (o *OpenAI) Name() string { return "openai-whisper" }

func (o *OpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return "", classifyAPIError(err)
	}
	return resp.Text, nil
}

func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if kind := fail.FromStatus(apiErr.HTTPStatusCode); kind != "" {
			return fail.New(kind, err)
		}
	}
	return fail.New(fail.NetworkError, err)
}
