// Package dashboard ties the aggregation engine to the narrative collaborator.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AishaAlajmi/AutoDash/internal/analysis"
	"github.com/AishaAlajmi/AutoDash/internal/dataset"
	"github.com/AishaAlajmi/AutoDash/internal/narrative"
)

// Dashboard is the result of one analysis run.
type Dashboard struct {
	ID           string               `json:"id"`
	Source       string               `json:"source,omitempty"`
	AnalysisText string               `json:"analysisText"`
	KeyMetrics   []analysis.KeyMetric `json:"keyMetrics"`
	Charts       []analysis.ChartSpec `json:"charts"`
	Stats        *analysis.PreStats   `json:"preStats"`
}

// Service runs analyses. A nil collaborator means narrative and answers come
// from the local fallbacks only.
type Service struct {
	collab narrative.Collaborator
	log    *zap.Logger
	opts   analysis.Options
}

// NewService builds a Service. log may be nil.
func NewService(collab narrative.Collaborator, log *zap.Logger, opts analysis.Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{collab: collab, log: log, opts: opts}
}

// Stats computes the aggregate bundle for t.
func (s *Service) Stats(t *dataset.Table) *analysis.PreStats {
	start := time.Now()
	stats := analysis.Compute(t, s.opts)
	s.log.Debug("computed aggregates",
		zap.Int("rows", stats.RowCount),
		zap.Int("columns", len(stats.ColumnNames)),
		zap.Int("charts", len(stats.Charts)),
		zap.Duration("duration", time.Since(start)))
	return stats
}

// Analyze computes the aggregates first, then asks the collaborator for a narrative.
// The narrative never feeds back into the aggregates.
func (s *Service) Analyze(ctx context.Context, t *dataset.Table) *Dashboard {
	stats := s.Stats(t)
	d := &Dashboard{
		ID:         uuid.NewString(),
		KeyMetrics: stats.KeyMetrics,
		Charts:     stats.Charts,
		Stats:      stats,
	}
	if t != nil {
		d.Source = t.Name
	}
	d.AnalysisText = narrative.Narrate(ctx, s.collab, stats, s.log)
	s.log.Info("dashboard ready", zap.String("id", d.ID), zap.String("source", d.Source))
	return d
}

// Ask answers a question from stats, falling back to the local answerer.
func (s *Service) Ask(ctx context.Context, question string, stats *analysis.PreStats) string {
	return narrative.Answer(ctx, s.collab, question, stats, s.log)
}
