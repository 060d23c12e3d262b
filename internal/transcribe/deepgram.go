package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// Deepgram transcribes audio through the Deepgram REST API
// (raw audio upload, token auth)
type Deepgram struct {
	APIKey     string
	APIURL     string
	HTTPClient *http.Client
}

func (d *Deepgram) Name() string { return "deepgram" }

func (d *Deepgram) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.APIURL, f)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+d.APIKey)
	req.Header.Set("Content-Type", "audio/wav")

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fail.New(fail.NetworkError, err)
	}
	defer resp.Body.Close()

	if kind := fail.FromStatus(resp.StatusCode); kind != "" {
		return "", fail.Newf(kind, "deepgram status %d", resp.StatusCode)
	}

	var body struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fail.New(fail.ParseFailure, fmt.Errorf("bad deepgram response: %w", err))
	}

	if len(body.Results.Channels) == 0 || len(body.Results.Channels[0].Alternatives) == 0 {
		return "", fail.Newf(fail.ParseFailure, "deepgram returned no alternatives")
	}
	return body.Results.Channels[0].Alternatives[0].Transcript, nil
}
