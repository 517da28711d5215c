package sentiment

import (
	"context"
	"fmt"

	"savoriq/metrics"
)

// BucketResult is the sentiment of one bucket within a single review.
type BucketResult struct {
	Bucket  Bucket  `json:"bucket"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

const noSignalSummary = "No specific category detected in review."

// Label maps a score to positive / negative / neutral using ±0.2 thresholds.
func Label(score float64) string {
	switch {
	case score > 0.2:
		return "positive"
	case score < -0.2:
		return "negative"
	default:
		return "neutral"
	}
}

func templateSummary(b Bucket, score float64) string {
	return fmt.Sprintf("Review mentions %s aspects with %s sentiment.", b, Label(score))
}

// Heuristic is the local keyword-window classifier. It has no dependencies
// and never fails.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

func (h Heuristic) Classify(_ context.Context, text string) []BucketResult {
	results, matched := classifyKeywords(text)
	if matched {
		metrics.RecordClassification(h.Name(), metrics.OutcomeOK)
	} else {
		metrics.RecordClassification(h.Name(), metrics.OutcomeNoSignal)
	}
	return results
}

// ClassifyHeuristic runs the keyword scorer over every bucket. When no bucket
// is mentioned it returns a single neutral food result, so the result is
// never empty.
func ClassifyHeuristic(text string) []BucketResult {
	results, _ := classifyKeywords(text)
	return results
}

func classifyKeywords(text string) ([]BucketResult, bool) {
	results := make([]BucketResult, 0, len(Buckets))
	for _, b := range Buckets {
		score, present := KeywordSentiment(text, Keywords(b))
		if !present {
			continue
		}
		results = append(results, BucketResult{
			Bucket:  b,
			Score:   score,
			Summary: templateSummary(b, score),
		})
	}
	if len(results) == 0 {
		return []BucketResult{{Bucket: Food, Score: 0, Summary: noSignalSummary}}, false
	}
	return results, true
}
