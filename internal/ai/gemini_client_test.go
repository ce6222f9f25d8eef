package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestGeminiGenerate(t *testing.T) {
	var got geminiRequest
	var path, key string
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseId": "resp-1",
			"candidates": []any{map[string]any{
				"content": map[string]any{"role": "model", "parts": []any{
					map[string]any{"text": `{"analysisText":`},
					map[string]any{"text": `"ok"}`},
				}},
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 10, "candidatesTokenCount": 4, "totalTokenCount": 14},
		})
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("secret", 2*time.Second, 1, 0, 0, srv.URL)
	resp, err := c.Generate(context.Background(), GenerateRequest{
		Model: "gemini-2.5-flash",
		Messages: []Message{
			{Role: "system", Content: "be precise"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "user", Content: "again"},
		},
		Temperature:    Temperature(0),
		ResponseFormat: ResponseJSON,
		MaxTokens:      256,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if path != "/models/gemini-2.5-flash:generateContent" {
		t.Fatalf("unexpected path %q", path)
	}
	if key != "secret" {
		t.Fatalf("api key header not sent")
	}
	if resp.Text() != `{"analysisText":"ok"}` || resp.ID != "resp-1" || resp.Usage.TotalTokens != 14 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be precise" {
		t.Fatalf("system message not mapped: %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 3 || got.Contents[1].Role != "model" {
		t.Fatalf("unexpected contents: %+v", got.Contents)
	}
	cfg := got.GenerationConfig
	if cfg == nil || cfg.ResponseMimeType != "application/json" || cfg.MaxOutputTokens != 256 {
		t.Fatalf("unexpected generation config: %+v", cfg)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0 || cfg.TopK == nil || *cfg.TopK != 1 {
		t.Fatalf("expected greedy decoding settings: %+v", cfg)
	}
}

func TestGeminiNoCandidates(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("k", 2*time.Second, 1, 0, 0, srv.URL)
	resp, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if resp.Text() != "" {
		t.Fatalf("expected empty text, got %q", resp.Text())
	}
}

func TestGeminiErrorShapes(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
			"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT",
		}})
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("k", 2*time.Second, 3, 5*time.Millisecond, 10*time.Millisecond, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	var bad *BadRequestError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadRequestError, got %T: %v", err, err)
	}
	if bad.Code != "INVALID_ARGUMENT" || bad.Message != "API key not valid" {
		t.Fatalf("unexpected decoded error: %+v", bad.APIError)
	}
}

func TestGeminiMissingKey(t *testing.T) {
	_, err := NewGeminiClient("", 0, 0, 0, 0).Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	if err == nil {
		t.Fatalf("expected missing key error")
	}
}
