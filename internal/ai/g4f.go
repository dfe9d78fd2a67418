// g4f.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type G4FProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewG4FProvider(model string) *G4FProvider {
	// model examples:
	//   gpt-oss-120b
	//   groq/qwen/qwen3-32b
	//   ollama/gpt-oss:20b
	if model == "" {
		model = "gpt-oss-120b"
	}

	var base string
	switch {
	case strings.HasPrefix(model, "groq/"):
		base = "https://g4f.dev/api/groq"
		model = strings.TrimPrefix(model, "groq/")
	case strings.HasPrefix(model, "ollama/"):
		base = "https://g4f.dev/api/ollama"
		model = strings.TrimPrefix(model, "ollama/")
	default:
		base = "https://g4f.dev/api/gpt-oss-120b"
	}

	return &G4FProvider{
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *G4FProvider) Generate(messages []Message) (string, error) {
	payload := map[string]interface{}{
		"model":    p.model,
		"messages": messages,
	}
	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &CompletionError{Provider: "g4f", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &CompletionError{Provider: "g4f", Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &CompletionError{Provider: "g4f", Err: &httpStatusError{code: resp.StatusCode, body: truncate(respBody)}}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &CompletionError{Provider: "g4f", Err: fmt.Errorf("unmarshal: %w body=%s", err, truncate(respBody))}
	}
	if len(parsed.Choices) == 0 {
		return "", &CompletionError{Provider: "g4f", Err: fmt.Errorf("empty choices")}
	}

	reply := cleanReply(parsed.Choices[0].Message.Content)
	if isGarbageResponse(reply) {
		return "", &CompletionError{Provider: "g4f", Err: fmt.Errorf("garbage response")}
	}
	return reply, nil
}
