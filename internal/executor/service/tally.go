package service

import (
	"fmt"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/strategy"

	"gorm.io/datatypes"
)

// tally accumulates the per-asset results of one chunk.
type tally struct {
	maxDetails int

	processed, skipped, errors int

	byType     map[string]int
	byCategory map[string]int
	scores     []int
	details    []string
}

func newTally(maxDetails int) *tally {
	return &tally{
		maxDetails: maxDetails,
		byType:     map[string]int{},
		byCategory: map[string]int{},
		details:    []string{},
	}
}

func (t *tally) success(a strategy.Asset, out strategy.Outcome) {
	t.processed++
	t.byType[a.AssetType]++
	t.byCategory[out.Category]++
	t.scores = append(t.scores, out.Score)
}

func (t *tally) skip(a strategy.Asset, err error) {
	t.skipped++
	t.detail(fmt.Sprintf("%s: %v", a.Code, err))
}

func (t *tally) fail(a strategy.Asset, err error) {
	t.errors++
	t.detail(fmt.Sprintf("%s: %v", a.Code, err))
}

// interrupt records a cancelled chunk; the remaining assets stay pending for the next run.
func (t *tally) interrupt(done, total int, err error) {
	t.errors++
	t.detail(fmt.Sprintf("interrupted after %d of %d assets: %v", done, total, err))
}

func (t *tally) detail(msg string) {
	if t.maxDetails <= 0 || len(t.details) < t.maxDetails {
		t.details = append(t.details, msg)
	}
}

func (t *tally) apply(record *entity.ExecutionRecord, vocab entity.StatusVocabulary) {
	record.TotalAssetsProcessed = t.processed
	record.TotalAssetsSkipped = t.skipped
	record.TotalErrors = t.errors
	record.DistributionByType = datatypes.NewJSONType(t.byType)
	record.DistributionByRiskCategory = datatypes.NewJSONType(t.byCategory)
	record.ErrorDetails = datatypes.NewJSONType(t.details)
	record.Status = vocab.Resolve(t.processed, t.errors)

	if len(t.scores) == 0 {
		return
	}
	sum, lo, hi := 0, t.scores[0], t.scores[0]
	for _, s := range t.scores {
		sum += s
		lo = min(lo, s)
		hi = max(hi, s)
	}
	avg := float64(sum) / float64(len(t.scores))
	record.AvgRiskScore = &avg
	record.MinRiskScore = &lo
	record.MaxRiskScore = &hi
}

func capDetails(details []string, n int) []string {
	if n > 0 && len(details) > n {
		return details[:n]
	}
	if details == nil {
		return []string{}
	}
	return details
}
