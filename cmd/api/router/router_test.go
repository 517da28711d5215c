package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/cmd/api/dto"
	"savoriq/insights"
	"savoriq/models"
	"savoriq/repositories"
	"savoriq/sentiment"
	"savoriq/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIngester struct {
	platform  string
	records   int
	deleted   primitive.ObjectID
	deleteErr error
}

func (f *fakeIngester) IngestReviews(_ context.Context, platform string, records []json.RawMessage) services.IngestionReport {
	f.platform = platform
	f.records = len(records)
	return services.IngestionReport{Platform: platform, TotalReceived: len(records), Ingested: len(records), ErrorDetails: []string{}}
}

func (f *fakeIngester) IngestOrders(_ context.Context, records []json.RawMessage) services.OrderIngestionReport {
	f.records = len(records)
	return services.OrderIngestionReport{TotalReceived: len(records), Ingested: len(records), ErrorDetails: []string{}}
}

func (f *fakeIngester) DeleteReview(_ context.Context, id primitive.ObjectID) error {
	f.deleted = id
	return f.deleteErr
}

type fakeAnalyzer struct{}

func (fakeAnalyzer) ClassifierName() string { return "heuristic" }

func (fakeAnalyzer) Analyze(_ context.Context, text string) []sentiment.BucketResult {
	return sentiment.ClassifyHeuristic(text)
}

type fakeAnalytics struct {
	query    services.ReviewStatsQuery
	listQ    services.ReviewListQuery
	pulseErr error
	err      error
}

func (f *fakeAnalytics) Overview(context.Context) (*services.OverviewStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.OverviewStats{TotalGuests: 2, TotalReviews: 3, AvgRating: 3.33, SentimentByBucket: []insights.BucketSentiment{}}, nil
}

func (f *fakeAnalytics) ListReviews(_ context.Context, q services.ReviewListQuery) ([]models.ReviewWithScores, error) {
	f.listQ = q
	return []models.ReviewWithScores{{Review: models.Review{Content: "Great tacos."}, GuestName: "Alice"}}, nil
}

func (f *fakeAnalytics) ReviewStats(_ context.Context, q services.ReviewStatsQuery) (*services.ReviewStats, error) {
	f.query = q
	return &services.ReviewStats{Total: 1, AvgRating: 4, Positive: 1}, nil
}

func (f *fakeAnalytics) ItemRanking(context.Context) (*insights.ItemRanking, error) {
	return &insights.ItemRanking{Items: []insights.ItemPerformance{}, TopPerformers: []insights.ItemPerformance{}, Risks: []insights.ItemPerformance{}}, nil
}

func (f *fakeAnalytics) Deep(context.Context) (*services.DeepAnalytics, error) {
	return &services.DeepAnalytics{Briefing: insights.FallbackBriefing()}, nil
}

func (f *fakeAnalytics) GuestPulse(_ context.Context, id primitive.ObjectID) (*services.GuestPulse, error) {
	if f.pulseErr != nil {
		return nil, f.pulseErr
	}
	return &services.GuestPulse{TotalOrders: 3, FavoriteItems: []string{"Burger"}}, nil
}

type fakeGuests struct {
	query     services.GuestQuery
	created   services.NewGuest
	createErr error
	getErr    error
	guestID   primitive.ObjectID
	platform  string
	skip      int64
	limit     int64
}

func (f *fakeGuests) ListGuests(_ context.Context, q services.GuestQuery) ([]models.Guest, error) {
	f.query = q
	return []models.Guest{{Name: "Alice", Tier: models.TierVIP}}, nil
}

func (f *fakeGuests) GetGuest(_ context.Context, id primitive.ObjectID) (*models.Guest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Guest{ID: id, Name: "Alice"}, nil
}

func (f *fakeGuests) CreateGuest(_ context.Context, in services.NewGuest) (*models.Guest, error) {
	f.created = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Guest{ID: primitive.NewObjectID(), Name: in.Name, Tier: models.TierNew}, nil
}

func (f *fakeGuests) GuestOrders(_ context.Context, id primitive.ObjectID, skip, limit int64) ([]models.Order, error) {
	f.guestID, f.skip, f.limit = id, skip, limit
	return []models.Order{{GuestID: id, ItemName: "Latte"}}, nil
}

func (f *fakeGuests) GuestReviews(_ context.Context, id primitive.ObjectID, platform string, skip, limit int64) ([]models.ReviewWithScores, error) {
	f.guestID, f.platform, f.skip, f.limit = id, platform, skip, limit
	return []models.ReviewWithScores{}, nil
}

type fixture struct {
	engine    *gin.Engine
	ingester  *fakeIngester
	analytics *fakeAnalytics
	guests    *fakeGuests
}

func newFixture() fixture {
	f := fixture{ingester: &fakeIngester{}, analytics: &fakeAnalytics{}, guests: &fakeGuests{}}
	f.engine = New(Deps{Ingestion: f.ingester, Sentiment: fakeAnalyzer{}, Analytics: f.analytics, Guests: f.guests})
	return f
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.HealthDTO{Status: "ok", Classifier: "heuristic"}, decode[dto.HealthDTO](t, w))
}

func TestMetricsEndpoint(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIngestReviews(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/v1/reviews/ingest", `{"platform":"yelp","reviews":[{"review_id":"y1"},{"review_id":"y2"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yelp", f.ingester.platform)
	assert.Equal(t, 2, f.ingester.records)
	report := decode[services.IngestionReport](t, w)
	assert.Equal(t, 2, report.Ingested)
}

func TestIngestReviewsRejectsBadBody(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/v1/reviews/ingest", `{"reviews":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[dto.ErrorResponseDTO](t, w).Error)

	w = f.do(http.MethodPost, "/api/v1/reviews/ingest", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestOrders(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/v1/orders/ingest", `{"orders":[{"item_name":"Latte"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[services.OrderIngestionReport](t, w).Ingested)
}

func TestDeleteReview(t *testing.T) {
	f := newFixture()
	id := primitive.NewObjectID()

	w := f.do(http.MethodDelete, "/api/v1/reviews/"+id.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, f.ingester.deleted)
}

func TestDeleteReviewErrors(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodDelete, "/api/v1/reviews/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode[dto.ErrorResponseDTO](t, w).Error)

	f.ingester.deleteErr = repositories.ErrNotFound
	w = f.do(http.MethodDelete, "/api/v1/reviews/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[dto.ErrorResponseDTO](t, w).Error)

	f.ingester.deleteErr = errors.New("connection reset")
	w = f.do(http.MethodDelete, "/api/v1/reviews/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	got := decode[dto.ErrorResponseDTO](t, w)
	assert.Equal(t, "internal_error", got.Error)
	assert.Empty(t, got.Detail)
}

func TestReviewStatsQuery(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/v1/reviews/stats?platform=google&search=latte&days=7", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ReviewStatsQuery{Platform: "google", Search: "latte", Days: 7}, f.analytics.query)
	assert.Equal(t, services.ReviewStats{Total: 1, AvgRating: 4, Positive: 1}, decode[services.ReviewStats](t, w))
}

func TestReviewStatsRejectsBadDays(t *testing.T) {
	f := newFixture()
	for _, days := range []string{"0", "-1", "week"} {
		w := f.do(http.MethodGet, "/api/v1/reviews/stats?days="+days, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, days)
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	w := newFixture().do(http.MethodPost, "/api/v1/sentiment/analyze", `{"text":"The burger was amazing."}`)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[dto.AnalyzeResponseDTO](t, w)
	assert.Equal(t, "heuristic", got.Classifier)
	require.NotEmpty(t, got.Results)
	assert.Equal(t, sentiment.Food, got.Results[0].Bucket)
}

func TestAnalyzeSentimentRequiresText(t *testing.T) {
	w := newFixture().do(http.MethodPost, "/api/v1/sentiment/analyze", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsRoutes(t *testing.T) {
	f := newFixture()
	for _, path := range []string{"/api/v1/analytics/overview", "/api/v1/analytics/items", "/api/v1/analytics/deep"} {
		w := f.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	deep := decode[services.DeepAnalytics](t, f.do(http.MethodGet, "/api/v1/analytics/deep", ""))
	assert.Equal(t, insights.FallbackBriefing(), deep.Briefing)
}

func TestOverviewError(t *testing.T) {
	f := newFixture()
	f.analytics.err = errors.New("boom")
	w := f.do(http.MethodGet, "/api/v1/analytics/overview", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGuestPulse(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/v1/guests/"+primitive.NewObjectID().Hex()+"/pulse", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Burger"}, decode[services.GuestPulse](t, w).FavoriteItems)

	f.analytics.pulseErr = repositories.ErrNotFound
	w = f.do(http.MethodGet, "/api/v1/guests/"+primitive.NewObjectID().Hex()+"/pulse", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/v1/guests/123/pulse", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithCORS(t *testing.T) {
	h := WithCORS(newFixture().engine, []string{"https://dashboard.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListReviews(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/v1/reviews?platform=yelp&search=taco&sentiment=positive&days=30&skip=10&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ReviewListQuery{
		Platform: "yelp", Search: "taco", Sentiment: "positive", Days: 30, Skip: 10, Limit: 5,
	}, f.analytics.listQ)
	got := decode[[]models.ReviewWithScores](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].GuestName)

	w = f.do(http.MethodGet, "/api/v1/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ReviewListQuery{Limit: 50}, f.analytics.listQ)
}

func TestListReviewsRejectsBadPaging(t *testing.T) {
	f := newFixture()
	for _, q := range []string{"skip=-1", "limit=0", "limit=201", "limit=ten", "days=0"} {
		w := f.do(http.MethodGet, "/api/v1/reviews?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestListGuests(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/v1/guests?tier=vip&skip=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.GuestQuery{Tier: "vip", Skip: 2, Limit: 20}, f.guests.query)
	assert.Equal(t, "Alice", decode[[]models.Guest](t, w)[0].Name)

	w = f.do(http.MethodGet, "/api/v1/guests?limit=101", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGuest(t *testing.T) {
	f := newFixture()
	id := primitive.NewObjectID()

	w := f.do(http.MethodGet, "/api/v1/guests/"+id.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode[models.Guest](t, w).ID)

	f.guests.getErr = repositories.ErrNotFound
	w = f.do(http.MethodGet, "/api/v1/guests/"+id.Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/v1/guests/nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGuest(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/v1/guests", `{"name":"Dana","email":"dana@example.com","tier":"vip"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Dana", f.guests.created.Name)
	assert.Equal(t, "vip", f.guests.created.Tier)
	require.NotNil(t, f.guests.created.Email)
	assert.Equal(t, "dana@example.com", *f.guests.created.Email)
	assert.Equal(t, "Dana", decode[models.Guest](t, w).Name)
}

func TestCreateGuestErrors(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/guests", `{"email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.guests.createErr = fmt.Errorf("%w: unknown tier %q", services.ErrInvalidInput, "gold")
	w = f.do(http.MethodPost, "/api/v1/guests", `{"name":"Dana","tier":"gold"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponseDTO](t, w).Detail, "gold")

	f.guests.createErr = repositories.ErrDuplicate
	w = f.do(http.MethodPost, "/api/v1/guests", `{"name":"Dana","email":"x@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode[dto.ErrorResponseDTO](t, w).Error)
}

func TestGuestOrdersAndReviews(t *testing.T) {
	f := newFixture()
	id := primitive.NewObjectID()

	w := f.do(http.MethodGet, "/api/v1/guests/"+id.Hex()+"/orders?skip=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, f.guests.guestID)
	assert.Equal(t, int64(1), f.guests.skip)
	assert.Equal(t, int64(2), f.guests.limit)
	assert.Equal(t, "Latte", decode[[]models.Order](t, w)[0].ItemName)

	w = f.do(http.MethodGet, "/api/v1/guests/"+id.Hex()+"/reviews?platform=google", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "google", f.guests.platform)
	assert.Equal(t, int64(20), f.guests.limit)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = f.do(http.MethodGet, "/api/v1/guests/"+id.Hex()+"/reviews?limit=101", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(http.MethodGet, "/api/v1/guests/"+id.Hex()+"/orders?limit=201", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
