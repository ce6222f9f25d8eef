package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AishaAlajmi/AutoDash/internal/analysis"
)

// ErrMalformedNarrative is returned when a response is not {"analysisText": string}.
var ErrMalformedNarrative = errors.New("malformed narrative response")

func statsJSON(stats *analysis.PreStats) (string, error) {
	if stats == nil {
		stats = analysis.Compute(nil, analysis.Options{})
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("marshal pre-stats: %w", err)
	}
	return string(b), nil
}

// NarrativePrompt asks for a short JSON-wrapped summary grounded in stats.
func NarrativePrompt(stats *analysis.PreStats) (string, error) {
	js, err := statsJSON(stats)
	if err != nil {
		return "", err
	}
	lines := []string{
		"ROLE: You are a precise data analyst.",
		"RULES:",
		"- Use ONLY the numbers inside PRE_STATS; do not estimate or predict.",
		"- Write in clear, executive-friendly language (2-5 sentences).",
	}
	if stats != nil && stats.Intent != "" && stats.Intent != analysis.IntentGeneric {
		lines = append(lines, fmt.Sprintf("- The dataset looks like %s data; use that vocabulary.", stats.Intent))
	}
	lines = append(lines,
		"",
		`OUTPUT JSON: { "analysisText": string }`,
		"",
		"PRE_STATS:",
		js,
	)
	return strings.Join(lines, "\n"), nil
}

// QuestionPrompt asks for a plain-text answer using only stats.
func QuestionPrompt(question string, stats *analysis.PreStats) (string, error) {
	js, err := statsJSON(stats)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		"ROLE: You are a precise data analyst and must answer using ONLY the aggregates provided.",
		"",
		"USER QUESTION:",
		strings.TrimSpace(question),
		"",
		"PRE_STATS:",
		js,
		"",
		"STRICT RULES:",
		"- Use only numbers in PRE_STATS. No estimates.",
		"- If unavailable, say so briefly and offer the closest metric.",
		"- Keep it concise and actionable.",
		"",
		"FORMAT: plain text",
	}, "\n"), nil
}

// parseNarrative extracts analysisText from a JSON response. Markdown code
// fences around the object are tolerated.
func parseNarrative(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return "", ErrMalformedNarrative
	}
	var out struct {
		AnalysisText *string `json:"analysisText"`
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedNarrative, err)
	}
	if out.AnalysisText == nil {
		return "", fmt.Errorf("%w: missing analysisText", ErrMalformedNarrative)
	}
	return strings.TrimSpace(*out.AnalysisText), nil
}
