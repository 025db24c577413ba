package scoring

import (
	"context"
	"strings"

	"github.com/brunotrento11/Teste-sub000/pkg/textnorm"
)

// Base scores per fixed-income asset type. Public bonds are the floor, structured receivables the ceiling.
var heuristicBaseScores = map[string]int{
	"titulo_publico": 2,
	"tesouro":        2,
	"cdb":            5,
	"lci":            5,
	"lca":            5,
	"lf":             6,
	"debenture":      8,
	"cri":            10,
	"cra":            10,
	"fidc":           12,
}

const heuristicDefaultBase = 9

// Issuer name fragments that earn a quality discount.
var highQualityIssuers = []string{
	"tesouro",
	"governo",
	"banco do brasil",
	"caixa economica",
	"bndes",
}

// HeuristicFallbackScorer is the deterministic fixed-income strategy. It never fails.
type HeuristicFallbackScorer struct{}

func NewHeuristicFallbackScorer() *HeuristicFallbackScorer {
	return &HeuristicFallbackScorer{}
}

func (h *HeuristicFallbackScorer) Score(_ context.Context, indicators Indicators, meta AssetMetadata) (Result, error) {
	score := Clamp(float64(h.raw(indicators, meta)))
	return Result{
		Score:    score,
		Category: Categorize(score, FamilyFixedIncome),
		Method:   MethodHeuristic,
	}, nil
}

func (h *HeuristicFallbackScorer) raw(indicators Indicators, meta AssetMetadata) int {
	score, ok := heuristicBaseScores[strings.ToLower(strings.TrimSpace(meta.AssetType))]
	if !ok {
		score = heuristicDefaultBase
	}

	if sd, ok := finite(indicators.StandardDeviation); ok {
		switch {
		case sd > 1.0:
			score += 3
		case sd > 0.5:
			score += 2
		case sd > 0.2:
			score++
		}
	}

	if years, ok := finite(meta.YearsToMaturity); ok && years > 7 {
		score += 2
	}

	issuer := textnorm.Fold(meta.Issuer)
	for _, q := range highQualityIssuers {
		if strings.Contains(issuer, q) {
			score -= 2
			break
		}
	}

	return score
}
