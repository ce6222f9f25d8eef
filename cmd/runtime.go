package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AishaAlajmi/AutoDash/internal/ai"
	cfgpkg "github.com/AishaAlajmi/AutoDash/internal/config"
	"github.com/AishaAlajmi/AutoDash/internal/narrative"
)

var errNoAPIKey = errors.New("no API key configured")

// buildRuntime resolves the provider, model and transport settings from cfg.
func buildRuntime(cfg *cfgpkg.Global) (ai.Runtime, string, error) {
	httpTimeout := 60 * time.Second
	retryMax := 3
	baseDelay := 500 * time.Millisecond
	maxDelay := 4 * time.Second
	if cfg.HTTPTimeoutSec > 0 {
		httpTimeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
	}
	if cfg.RetryMaxAttempts > 0 {
		retryMax = cfg.RetryMaxAttempts
	}
	if cfg.RetryBaseDelayMs > 0 {
		baseDelay = time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond
	}
	if cfg.RetryMaxDelayMs > 0 {
		maxDelay = time.Duration(cfg.RetryMaxDelayMs) * time.Millisecond
	}

	providerName := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if providerName == "" {
		providerName = ai.ProviderGemini
	}
	rc := ai.RuntimeConfig{
		HTTPTimeout: httpTimeout,
		RetryMax:    retryMax,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		APIKey:      cfg.ProviderKey(),
		Host:        cfg.OllamaHost,
	}
	if providerName != ai.ProviderOllama && rc.APIKey == "" {
		return nil, "", fmt.Errorf("%w for %s", errNoAPIKey, providerName)
	}
	rt, ok := ai.GetRuntime(providerName, rc)
	if !ok {
		return nil, "", fmt.Errorf("unknown provider: %s (available: %s)", providerName, strings.Join(ai.Providers(), ", "))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = ai.DefaultModel(providerName)
	}
	return rt, model, nil
}

// newCollaborator returns nil when AI is disabled or not configured, which
// makes every caller use the deterministic fallbacks.
func newCollaborator(noAI bool) narrative.Collaborator {
	if noAI || cfg == nil {
		return nil
	}
	rt, model, err := buildRuntime(cfg)
	if err != nil {
		log.Warn("narrative disabled", zap.Error(err))
		return nil
	}
	llm := narrative.NewLLM(rt, model, cfg.MaxTokens, log)
	llm.SetTemperature(cfg.Temperature)
	return llm
}
