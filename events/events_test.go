package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/models"
)

func TestReviewIngestedEventSerialization(t *testing.T) {
	review := models.Review{
		ID:       primitive.NewObjectID(),
		GuestID:  primitive.NewObjectID(),
		Platform: models.PlatformYelp,
		Content:  "Great tacos.",
	}
	evt := NewReviewIngestedEvent(review, "api")

	assert.Equal(t, ReviewIngested, evt.Type)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "1", evt.Version)

	data, typ, err := SerializeEvent(evt)
	require.NoError(t, err)
	assert.Equal(t, ReviewIngested, typ)

	decoded, err := DeserializeEvent(typ, data)
	require.NoError(t, err)
	got, ok := decoded.(*ReviewIngestedEvent)
	require.True(t, ok)
	assert.Equal(t, review.ID, got.ReviewID)
	assert.Equal(t, "Great tacos.", got.Content)
}

func TestUnknownEventType(t *testing.T) {
	_, _, err := SerializeEvent(struct{}{})
	assert.Error(t, err)

	_, err = DeserializeEvent("review.unknown", []byte(`{}`))
	assert.Error(t, err)
}
