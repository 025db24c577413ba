package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// TextGenerator sends a prompt to a language model and returns its free-text answer.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var (
	explicitScorePattern   = regexp.MustCompile(`(?i)score\s*[:=]\s*(\d{1,3})`)
	standaloneScorePattern = regexp.MustCompile(`(?m)^\s*\**\s*(\d{1,3})\s*\**\s*\.?\s*$`)
	anyIntegerPattern      = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// AiAssistedScorer asks a text generator for a fixed-income score. It fails with
// ErrNoScoreExtracted when the answer holds no in-range integer.
type AiAssistedScorer struct {
	generator TextGenerator
}

func NewAiAssistedScorer(generator TextGenerator) *AiAssistedScorer {
	return &AiAssistedScorer{generator: generator}
}

func (a *AiAssistedScorer) Score(ctx context.Context, indicators Indicators, meta AssetMetadata) (Result, error) {
	answer, err := a.generator.GenerateText(ctx, BuildRiskPrompt(indicators, meta))
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate risk score: %w", err)
	}

	score, ok := ExtractScore(answer)
	if !ok {
		return Result{}, ErrNoScoreExtracted
	}

	return Result{
		Score:    score,
		Category: Categorize(score, FamilyFixedIncome),
		Method:   MethodAI,
	}, nil
}

// ExtractScore finds the first integer inside [MinScore, MaxScore], trying an explicit
// "score: N", then a number alone on a line, then any integer in the text.
func ExtractScore(text string) (int, bool) {
	for _, p := range []*regexp.Regexp{explicitScorePattern, standaloneScorePattern, anyIntegerPattern} {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n >= MinScore && n <= MaxScore {
				return n, true
			}
		}
	}
	return 0, false
}
