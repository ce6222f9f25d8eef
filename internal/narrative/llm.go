package narrative

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/AishaAlajmi/AutoDash/internal/ai"
	"github.com/AishaAlajmi/AutoDash/internal/analysis"
	"github.com/AishaAlajmi/AutoDash/internal/utils"
)

// LLM is a Collaborator backed by a language-model runtime.
type LLM struct {
	rt          ai.Runtime
	model       string
	maxTokens   int
	temperature float64
	log         *zap.Logger
}

// NewLLM wraps rt. maxTokens bounds the completion; 0 leaves it to the provider.
// Narratives always use temperature 0; answers use 0 unless changed with SetTemperature.
func NewLLM(rt ai.Runtime, model string, maxTokens int, log *zap.Logger) *LLM {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLM{rt: rt, model: model, maxTokens: maxTokens, log: log}
}

// SetTemperature changes the sampling temperature of later answers.
func (l *LLM) SetTemperature(t float64) { l.temperature = t }

// GenerateNarrative asks for {"analysisText": string} at temperature 0.
func (l *LLM) GenerateNarrative(ctx context.Context, stats *analysis.PreStats) (string, error) {
	prompt, err := NarrativePrompt(stats)
	if err != nil {
		return "", err
	}
	text, err := l.generate(ctx, prompt, 0, ai.ResponseJSON)
	if err != nil {
		return "", err
	}
	return parseNarrative(text)
}

// AnswerQuestion asks for a plain-text answer.
func (l *LLM) AnswerQuestion(ctx context.Context, question string, stats *analysis.PreStats) (string, error) {
	prompt, err := QuestionPrompt(question, stats)
	if err != nil {
		return "", err
	}
	text, err := l.generate(ctx, prompt, l.temperature, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (l *LLM) generate(ctx context.Context, prompt string, temperature float64, format *ai.ResponseFormat) (string, error) {
	tokens := utils.CountTokens(prompt)
	if err := ai.CheckContext(l.model, tokens, l.maxTokens); err != nil {
		l.log.Warn("prompt may not fit the model context", zap.String("model", l.model), zap.Error(err))
	}
	l.log.Debug("sending prompt", zap.String("model", l.model), zap.Int("est_tokens", tokens))

	resp, err := l.rt.Generate(ctx, ai.GenerateRequest{
		Model:          l.model,
		Messages:       []ai.Message{{Role: "user", Content: prompt}},
		MaxTokens:      l.maxTokens,
		Temperature:    ai.Temperature(temperature),
		ResponseFormat: format,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ai.ErrEmptyResponse
	}
	l.log.Debug("received response",
		zap.String("request_id", resp.RequestID),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))
	return text, nil
}
