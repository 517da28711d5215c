package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectionIndexesHaveNames(t *testing.T) {
	idx := collectionIndexes()

	for _, col := range []string{"guests", "orders", "reviews", "sentiment_scores", "ai_logs"} {
		models, ok := idx[col]
		if assert.True(t, ok, col) {
			for _, m := range models {
				if assert.NotNil(t, m.Options) {
					assert.NotNil(t, m.Options.Name, col)
				}
			}
		}
	}
}

func TestSentimentScoresUniquePerBucket(t *testing.T) {
	var found bool
	for _, m := range collectionIndexes()["sentiment_scores"] {
		if m.Options.Name != nil && *m.Options.Name == "uniq_review_bucket" {
			found = true
			assert.Equal(t, bson.D{{Key: "review_id", Value: 1}, {Key: "bucket", Value: 1}}, m.Keys)
			if assert.NotNil(t, m.Options.Unique) {
				assert.True(t, *m.Options.Unique)
			}
		}
	}
	assert.True(t, found)
}
