package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GeminiClient calls the Google Generative Language generateContent endpoint.
type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	retry      retryPolicy
}

// NewGeminiClient returns a client for the public v1beta endpoint.
func NewGeminiClient(apiKey string, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration) *GeminiClient {
	return NewGeminiClientWithBaseURL(apiKey, httpTimeout, retryMax, baseDelay, maxDelay, "")
}

// NewGeminiClientWithBaseURL allows injecting a custom base URL (used in tests).
func NewGeminiClientWithBaseURL(apiKey string, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration, baseURL string) *GeminiClient {
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}
	if retryMax <= 0 {
		retryMax = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 4 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: httpTimeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		retry:      retryPolicy{maxAttempts: retryMax, baseDelay: baseDelay, maxDelay: maxDelay},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	TopK             *int     `json:"topK,omitempty"`
	TopP             *float64 `json:"topP,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	ResponseID string `json:"responseId"`
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// buildGeminiRequest maps chat messages onto contents. System messages become the
// system instruction; assistant turns use the "model" role. A zero temperature also
// pins topK=1 and topP=0 for greedy decoding.
func buildGeminiRequest(req GenerateRequest) geminiRequest {
	var out geminiRequest
	var system []geminiPart
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			system = append(system, geminiPart{Text: m.Content})
		case "assistant":
			out.Contents = append(out.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			out.Contents = append(out.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		out.SystemInstruction = &geminiContent{Parts: system}
	}
	cfg := &geminiGenerationConfig{Temperature: req.Temperature, MaxOutputTokens: req.MaxTokens}
	if req.Temperature != nil && *req.Temperature == 0 {
		topK, topP := 1, 0.0
		cfg.TopK, cfg.TopP = &topK, &topP
	}
	if req.ResponseFormat != nil && req.ResponseFormat.Type == ResponseJSON.Type {
		cfg.ResponseMimeType = "application/json"
	}
	out.GenerationConfig = cfg
	return out
}

// Generate sends one generateContent call and returns the first candidate's text.
func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("gemini API key is missing (set AUTODASH_GEMINI_API_KEY)")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(buildGeminiRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + "/models/" + url.PathEscape(req.Model) + ":generateContent"

	var out *GenerateResponse
	err = c.retry.run(ctx, func() (bool, time.Duration, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return false, 0, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return isRetryableNetErr(err), 0, fmt.Errorf("http request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := decodeAPIError(resp)
			return retryableStatus(resp.StatusCode), retryAfter(resp), classifyAPIError(apiErr, resp)
		}
		var gr geminiResponse
		if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
			return true, 0, fmt.Errorf("decode response: %w", err)
		}
		r := &GenerateResponse{
			ID: gr.ResponseID,
			Usage: Usage{
				PromptTokens:     gr.UsageMetadata.PromptTokenCount,
				CompletionTokens: gr.UsageMetadata.CandidatesTokenCount,
				TotalTokens:      gr.UsageMetadata.TotalTokenCount,
			},
			RequestID: extractRequestID(resp),
		}
		if len(gr.Candidates) > 0 {
			var sb strings.Builder
			for _, p := range gr.Candidates[0].Content.Parts {
				sb.WriteString(p.Text)
			}
			r.Choices = []Choice{{Message: Message{Role: "assistant", Content: sb.String()}}}
		}
		out = r
		return false, 0, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
