package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPAdvisor calls an external text-generation endpoint over HTTP. The wire
// contract is a single POST with {"prompt": ...} returning {"text": ...}.
type HTTPAdvisor struct {
	url     string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
	timeout time.Duration
}

func NewHTTPAdvisor(url, apiKey string, timeout time.Duration, logger zerolog.Logger) *HTTPAdvisor {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPAdvisor{
		url:     url,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		timeout: timeout,
	}
}

func (a *HTTPAdvisor) Available() bool {
	return a.url != ""
}

type explainRequest struct {
	Prompt string `json:"prompt"`
}

type explainResponse struct {
	Text string `json:"text"`
}

func (a *HTTPAdvisor) Explain(ctx context.Context, prompt string) (string, error) {
	if !a.Available() {
		return "", fmt.Errorf("advisory endpoint not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	body, err := json.Marshal(explainRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal explain request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build explain request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call advisory service: %w", err)
	}
	a.logger.Debug().Dur("latency", time.Since(start)).Int("status", resp.StatusCode).Msg("advisory call")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("advisory service returned %d", resp.StatusCode)
	}

	var out explainResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode advisory response: %w", err)
	}
	return out.Text, nil
}
