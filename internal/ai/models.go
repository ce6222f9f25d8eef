package ai

import (
	"fmt"
	"sort"
)

// ModelInfo records the approximate context window of a known model.
type ModelInfo struct {
	Name          string
	Provider      string
	ContextTokens int
}

var models = map[string]ModelInfo{
	"gemini-2.5-flash":                 {Name: "gemini-2.5-flash", Provider: ProviderGemini, ContextTokens: 1048576},
	"gemini-2.5-pro":                   {Name: "gemini-2.5-pro", Provider: ProviderGemini, ContextTokens: 1048576},
	"gemini-2.0-flash":                 {Name: "gemini-2.0-flash", Provider: ProviderGemini, ContextTokens: 1048576},
	"openai/gpt-4o-mini":               {Name: "openai/gpt-4o-mini", Provider: ProviderOpenRouter, ContextTokens: 128000},
	"openai/gpt-4o":                    {Name: "openai/gpt-4o", Provider: ProviderOpenRouter, ContextTokens: 128000},
	"anthropic/claude-3.5-sonnet":      {Name: "anthropic/claude-3.5-sonnet", Provider: ProviderOpenRouter, ContextTokens: 200000},
	"google/gemini-2.5-flash":          {Name: "google/gemini-2.5-flash", Provider: ProviderOpenRouter, ContextTokens: 1048576},
	"meta-llama/llama-3.1-8b-instruct": {Name: "meta-llama/llama-3.1-8b-instruct", Provider: ProviderOpenRouter, ContextTokens: 131072},
	"llama3.1:8b":                      {Name: "llama3.1:8b", Provider: ProviderOllama, ContextTokens: 8192},
	"llama3:latest":                    {Name: "llama3:latest", Provider: ProviderOllama, ContextTokens: 8192},
	"mistral:7b-instruct":              {Name: "mistral:7b-instruct", Provider: ProviderOllama, ContextTokens: 8192},
	"phi3:mini-4k-instruct":            {Name: "phi3:mini-4k-instruct", Provider: ProviderOllama, ContextTokens: 4096},
}

var defaultModels = map[string]string{
	ProviderGemini:     "gemini-2.5-flash",
	ProviderOpenRouter: "openai/gpt-4o-mini",
	ProviderOllama:     "llama3.1:8b",
}

// LookupModel returns ModelInfo and ok flag.
func LookupModel(name string) (ModelInfo, bool) {
	mi, ok := models[name]
	return mi, ok
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) string { return defaultModels[provider] }

// CheckContext reports an error when promptTokens plus the reserved completion
// budget exceed a known model's context window. Unknown models always pass.
func CheckContext(model string, promptTokens, maxTokens int) error {
	mi, ok := LookupModel(model)
	if !ok || mi.ContextTokens <= 0 {
		return nil
	}
	if need := promptTokens + maxTokens; need > mi.ContextTokens {
		return fmt.Errorf("prompt needs about %d tokens but %s holds %d", need, model, mi.ContextTokens)
	}
	return nil
}

// Catalog returns the known models ordered by provider, then name.
func Catalog() []ModelInfo {
	out := make([]ModelInfo, 0, len(models))
	for _, mi := range models {
		out = append(out, mi)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].Name < out[j].Name
	})
	return out
}
