package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleSlotGetOrCompute(t *testing.T) {
	var c SingleSlot[int]
	calls := 0
	compute := func(v int) func() int {
		return func() int { calls++; return v }
	}

	v, hit := c.GetOrCompute("a", compute(1))
	assert.Equal(t, 1, v)
	assert.False(t, hit)

	v, hit = c.GetOrCompute("a", compute(2))
	assert.Equal(t, 1, v)
	assert.True(t, hit)

	v, hit = c.GetOrCompute("b", compute(3))
	assert.Equal(t, 3, v)
	assert.False(t, hit)

	// only the latest key is kept
	v, hit = c.GetOrCompute("a", compute(4))
	assert.Equal(t, 4, v)
	assert.False(t, hit)
	assert.Equal(t, 3, calls)
}

func TestBriefingKey(t *testing.T) {
	loc := time.FixedZone("test", 9*60*60)
	morning := time.Date(2026, 3, 1, 1, 0, 0, 0, loc)
	evening := time.Date(2026, 3, 1, 23, 0, 0, 0, loc)
	nextDay := time.Date(2026, 3, 2, 0, 30, 0, 0, loc)

	k1, err := BriefingKey(sampleInput(), morning, loc)
	require.NoError(t, err)
	k2, err := BriefingKey(sampleInput(), evening, loc)
	require.NoError(t, err)
	k3, err := BriefingKey(sampleInput(), nextDay, loc)
	require.NoError(t, err)

	changed := sampleInput()
	changed.RecentFeedbackSnippets = append(changed.RecentFeedbackSnippets, "Slow service.")
	k4, err := BriefingKey(changed, morning, loc)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
	assert.Len(t, k1, 64)
}

func TestBriefingKeyUsesReferenceZone(t *testing.T) {
	// 2026-03-01 20:00 UTC is already 2026-03-02 at UTC+9.
	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	before := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	kst := time.FixedZone("kst", 9*60*60)

	a, _ := BriefingKey(sampleInput(), at, time.UTC)
	b, _ := BriefingKey(sampleInput(), before, time.UTC)
	assert.Equal(t, a, b)

	a, _ = BriefingKey(sampleInput(), at, kst)
	b, _ = BriefingKey(sampleInput(), before, kst)
	assert.NotEqual(t, a, b)
}

func TestBrieferCachesPerDay(t *testing.T) {
	gen := &countingGenerator{text: briefingReply}
	b := NewBriefer(NewBriefingGenerator(gen, 10), time.UTC)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	first := b.Brief(context.Background(), sampleInput())
	second := b.Brief(context.Background(), sampleInput())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls)

	now = now.Add(24 * time.Hour)
	b.Brief(context.Background(), sampleInput())
	assert.Equal(t, 2, gen.calls)
}

func TestBrieferRecomputesWhenDataChanges(t *testing.T) {
	gen := &countingGenerator{text: briefingReply}
	b := NewBriefer(NewBriefingGenerator(gen, 10), nil)

	b.Brief(context.Background(), sampleInput())
	changed := sampleInput()
	changed.BucketSentiment[0].AvgScore = -0.2
	b.Brief(context.Background(), changed)
	b.Brief(context.Background(), changed)

	assert.Equal(t, 2, gen.calls)
}

func TestBrieferCachesFallback(t *testing.T) {
	b := NewBriefer(NewBriefingGenerator(nil, 10), time.UTC)

	got := b.Brief(context.Background(), sampleInput())

	assert.Equal(t, FallbackBriefing(), got)
}
