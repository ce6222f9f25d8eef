// Package narrative is the boundary to the text-generation collaborator. The
// collaborator only ever sees the precomputed aggregates, and every failure on
// its side is replaced by a deterministic local result.
package narrative

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AishaAlajmi/AutoDash/internal/analysis"
)

// FallbackNarrative replaces the narrative whenever the collaborator cannot provide one.
const FallbackNarrative = "Automated analysis generated from full-data aggregates."

// Collaborator turns an aggregate bundle into prose.
type Collaborator interface {
	GenerateNarrative(ctx context.Context, stats *analysis.PreStats) (string, error)
	AnswerQuestion(ctx context.Context, question string, stats *analysis.PreStats) (string, error)
}

// Narrate returns the collaborator's narrative, or FallbackNarrative when the
// collaborator is missing, fails or returns nothing.
func Narrate(ctx context.Context, c Collaborator, stats *analysis.PreStats, log *zap.Logger) string {
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		log.Debug("no narrative collaborator configured; using fallback")
		return FallbackNarrative
	}
	text, err := guard(func() (string, error) { return c.GenerateNarrative(ctx, stats) })
	if err != nil {
		log.Warn("narrative generation failed; using fallback", zap.Error(err))
		return FallbackNarrative
	}
	if text == "" {
		log.Warn("narrative collaborator returned empty text; using fallback")
		return FallbackNarrative
	}
	return text
}

// Answer routes a question to the collaborator and falls back to
// analysis.AnswerLocally when it is missing, fails or returns nothing.
func Answer(ctx context.Context, c Collaborator, question string, stats *analysis.PreStats, log *zap.Logger) string {
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		return analysis.AnswerLocally(question, stats)
	}
	text, err := guard(func() (string, error) { return c.AnswerQuestion(ctx, question, stats) })
	if err != nil {
		log.Warn("question answering failed; answering locally", zap.Error(err))
		return analysis.AnswerLocally(question, stats)
	}
	if text == "" {
		log.Warn("collaborator returned an empty answer; answering locally")
		return analysis.AnswerLocally(question, stats)
	}
	return text
}

// guard converts a collaborator panic into an error.
func guard(call func() (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("collaborator panic: %v", r)
		}
	}()
	return call()
}
