package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"savoriq/config"
	"savoriq/llm"
	"savoriq/metrics"
)

const sentimentPrompt = `You are a restaurant review analyst. Analyze the following review and categorize sentiment into exactly three buckets: "food", "drink", and "ambiance".

For each bucket, provide:
- score: a float from -1.0 (very negative) to 1.0 (very positive). Use 0.0 if the bucket is not mentioned.
- summary: a brief 1-sentence explanation.

Return ONLY valid JSON in this exact format:
[
  {"bucket": "food", "score": 0.8, "summary": "The food was praised for its freshness."},
  {"bucket": "drink", "score": -0.3, "summary": "Coffee was described as lukewarm."},
  {"bucket": "ambiance", "score": 0.5, "summary": "The atmosphere was described as cozy."}
]

Review text:
`

// Delegated asks an external text generator to classify the review and falls
// back to the heuristic result on any failure.
type Delegated struct {
	gen llm.TextGenerator
}

func NewDelegated(gen llm.TextGenerator) *Delegated {
	return &Delegated{gen: gen}
}

func (*Delegated) Name() string { return "delegated" }

func (d *Delegated) Classify(ctx context.Context, text string) []BucketResult {
	resp, err := d.gen.Generate(ctx, llm.Request{
		Purpose: "sentiment",
		Prompt:  sentimentPrompt + text,
		JSON:    true,
	})
	if err != nil {
		config.Logger.Warnf("delegated sentiment analysis failed, falling back to heuristic: %v", err)
		metrics.RecordClassification(d.Name(), metrics.OutcomeFallback)
		return ClassifyHeuristic(text)
	}

	results, err := ParseBucketResults(resp.Text)
	if err != nil {
		config.Logger.Warnf("delegated sentiment response rejected, falling back to heuristic: %v", err)
		metrics.RecordClassification(d.Name(), metrics.OutcomeFallback)
		return ClassifyHeuristic(text)
	}
	metrics.RecordClassification(d.Name(), metrics.OutcomeOK)
	return results
}

// ParseError describes why a model response could not be turned into
// bucket results.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "sentiment response: " + e.Reason
}

// ParseBucketResults decodes a model response into bucket results.
//
// Code fences are stripped first. Only entries carrying both "bucket" (a known
// bucket name) and a numeric "score" survive; scores are clamped to [-1, 1]
// and a bucket repeated later in the array is ignored. A response that yields
// no valid entry is a *ParseError.
func ParseBucketResults(raw string) ([]BucketResult, error) {
	body := llm.StripCodeFence(raw)

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("not a JSON array: %v", err)}
	}

	results := make([]BucketResult, 0, len(entries))
	seen := make(map[Bucket]bool, len(Buckets))
	for _, entry := range entries {
		r, ok := parseEntry(entry)
		if !ok || seen[r.Bucket] {
			continue
		}
		seen[r.Bucket] = true
		results = append(results, r)
	}
	if len(results) == 0 {
		return nil, &ParseError{Reason: "no valid bucket entries"}
	}
	return results, nil
}

func parseEntry(raw json.RawMessage) (BucketResult, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return BucketResult{}, false
	}
	rawBucket, hasBucket := fields["bucket"]
	rawScore, hasScore := fields["score"]
	if !hasBucket || !hasScore {
		return BucketResult{}, false
	}

	var name string
	if err := json.Unmarshal(rawBucket, &name); err != nil {
		return BucketResult{}, false
	}
	bucket, ok := ParseBucket(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return BucketResult{}, false
	}

	score, ok := parseScore(rawScore)
	if !ok {
		return BucketResult{}, false
	}

	var summary string
	if rawSummary, ok := fields["summary"]; ok {
		_ = json.Unmarshal(rawSummary, &summary)
	}

	return BucketResult{Bucket: bucket, Score: Clamp(score), Summary: summary}, true
}

// parseScore accepts a JSON number or a numeric string.
func parseScore(raw json.RawMessage) (float64, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	var f float64
	var err error
	switch s := v.(type) {
	case json.Number:
		f, err = s.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
