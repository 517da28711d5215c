// Package sentiment classifies review text into food, drink and ambiance
// sentiment buckets.
//
// Two classifiers implement Classifier: Heuristic, a keyword-window scorer
// with no external dependencies, and Delegated, which asks a text-generation
// model and falls back to Heuristic on any failure. Neither returns an error
// and neither returns an empty result.
package sentiment

import (
	"context"

	"savoriq/config"
	"savoriq/llm"
)

// Classifier assigns bucket sentiment to one review.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) []BucketResult
}

// New picks the classifier once from configuration: Delegated when a model
// credential is configured and a generator is available, Heuristic otherwise.
func New(cfg config.LLMConfig, gen llm.TextGenerator) Classifier {
	if cfg.CredentialPresent() && gen != nil {
		return NewDelegated(gen)
	}
	return Heuristic{}
}
