package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/eventbus"
	"savoriq/events"
	"savoriq/models"
)

type recordingAnalyzer struct {
	calls []primitive.ObjectID
	texts []string
	err   error
}

func (a *recordingAnalyzer) AnalyzeAndStore(_ context.Context, id primitive.ObjectID, text string) ([]models.SentimentScore, error) {
	a.calls = append(a.calls, id)
	a.texts = append(a.texts, text)
	if a.err != nil {
		return nil, a.err
	}
	return []models.SentimentScore{{ReviewID: id, Bucket: "food", Score: 1}}, nil
}

func ingestedEvent(t *testing.T) (eventbus.Event, primitive.ObjectID) {
	t.Helper()
	review := models.Review{
		ID:       primitive.NewObjectID(),
		GuestID:  primitive.NewObjectID(),
		Platform: models.PlatformYelp,
		Content:  "The burger was amazing.",
	}
	payload := events.NewReviewIngestedEvent(review, "api")
	ev, err := eventbus.NewJSONEvent(payload.ID, payload, 0)
	require.NoError(t, err)
	return ev, review.ID
}

func TestRouteReviewIngested(t *testing.T) {
	analyzer := &recordingAnalyzer{}
	h := NewEventHandlers(analyzer)
	ev, reviewID := ingestedEvent(t)

	require.NoError(t, h.Route(context.Background(), ev))
	assert.Equal(t, []primitive.ObjectID{reviewID}, analyzer.calls)
	assert.Equal(t, []string{"The burger was amazing."}, analyzer.texts)
}

func TestRouteReturnsAnalyzerError(t *testing.T) {
	analyzer := &recordingAnalyzer{err: errors.New("mongo down")}
	h := NewEventHandlers(analyzer)
	ev, _ := ingestedEvent(t)

	assert.ErrorContains(t, h.Route(context.Background(), ev), "mongo down")
}

func TestRouteIgnoresUnknownType(t *testing.T) {
	analyzer := &recordingAnalyzer{}
	h := NewEventHandlers(analyzer)
	ev, err := eventbus.NewJSONEvent("", map[string]string{"type": "order.created"}, 0)
	require.NoError(t, err)

	assert.NoError(t, h.Route(context.Background(), ev))
	assert.Empty(t, analyzer.calls)
}

func TestRouteRejectsMalformedPayload(t *testing.T) {
	h := NewEventHandlers(&recordingAnalyzer{})
	err := h.Route(context.Background(), eventbus.Event{ID: "x", Payload: []byte("not json")})
	assert.Error(t, err)
}
