package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordClassification(t *testing.T) {
	before := testutil.ToFloat64(classifications.WithLabelValues("heuristic", OutcomeOK))
	RecordClassification("heuristic", OutcomeOK)
	assert.Equal(t, before+1, testutil.ToFloat64(classifications.WithLabelValues("heuristic", OutcomeOK)))
}

func TestRecordBriefingCache(t *testing.T) {
	hits := testutil.ToFloat64(briefingCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(briefingCacheLookups.WithLabelValues("miss"))

	RecordBriefingCache(true)
	RecordBriefingCache(false)
	RecordBriefingCache(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(briefingCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(briefingCacheLookups.WithLabelValues("miss")))
}

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	Register(reg)

	RecordLLMRequest("sentiment", OutcomeOK, 150*time.Millisecond)
	n, err := testutil.GatherAndCount(reg, "savoriq_llm_requests_total")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/api/v1/analytics/overview", 200, 20*time.Millisecond)
	RecordHTTPRequest("GET", "", 404, time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(httpRequests), 2)
}
