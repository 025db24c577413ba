package scoring

import (
	"context"
	"errors"

	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// FallbackScorer tries the primary scorer and delegates to the fallback on any failure.
// Only the fallback's error is returned.
type FallbackScorer struct {
	primary  Scorer
	fallback Scorer
	logger   *logger.Logger
}

func NewFallbackScorer(primary, fallback Scorer, log *logger.Logger) *FallbackScorer {
	return &FallbackScorer{primary: primary, fallback: fallback, logger: log}
}

func (f *FallbackScorer) Score(ctx context.Context, indicators Indicators, meta AssetMetadata) (Result, error) {
	if f.primary != nil {
		result, err := f.primary.Score(ctx, indicators, meta)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, ErrNoScoreExtracted) {
			f.logger.DebugContext(ctx, "No score in AI answer, using heuristic", logger.StringField("code", meta.Code))
		} else {
			f.logger.WarnContext(ctx, "AI scoring failed, using heuristic", logger.StringField("code", meta.Code), logger.ErrorField(err))
		}
	}
	return f.fallback.Score(ctx, indicators, meta)
}

// NewFixedIncomeScorer wires the AI-assisted scorer in front of the heuristic. A nil generator
// yields the heuristic alone.
func NewFixedIncomeScorer(generator TextGenerator, log *logger.Logger) Scorer {
	var primary Scorer
	if generator != nil {
		primary = NewAiAssistedScorer(generator)
	}
	return NewFallbackScorer(primary, NewHeuristicFallbackScorer(), log)
}
