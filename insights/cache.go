package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"

	"savoriq/metrics"
)

type cacheEntry[T any] struct {
	key   string
	value T
}

// SingleSlot memoizes the value for the most recent key only.
//
// Concurrent misses for the same key may both compute and both store; the
// last store wins. Values for equal keys are interchangeable, so this race is
// accepted and no lock is held around compute.
type SingleSlot[T any] struct {
	slot atomic.Pointer[cacheEntry[T]]
}

// GetOrCompute returns the cached value when key matches the stored key,
// otherwise calls compute and replaces the slot. hit reports a cache hit.
func (c *SingleSlot[T]) GetOrCompute(key string, compute func() T) (value T, hit bool) {
	if e := c.slot.Load(); e != nil && e.key == key {
		return e.value, true
	}
	v := compute()
	c.slot.Store(&cacheEntry[T]{key: key, value: v})
	return v, false
}

// BriefingKey hashes the input together with the calendar day of now in loc.
// encoding/json emits struct fields in declaration order, so the serialization
// is stable for equal inputs.
func BriefingKey(in BriefingInput, now time.Time, loc *time.Location) (string, error) {
	data, err := json.Marshal(struct {
		Date string        `json:"date"`
		Data BriefingInput `json:"data"`
	}{
		Date: now.In(loc).Format("2006-01-02"),
		Data: in,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Briefer serves manager briefings, regenerating only when the analytics
// snapshot or the calendar day changes.
type Briefer struct {
	gen   *BriefingGenerator
	cache *SingleSlot[Briefing]
	loc   *time.Location
	now   func() time.Time
}

func NewBriefer(gen *BriefingGenerator, loc *time.Location) *Briefer {
	if loc == nil {
		loc = time.UTC
	}
	return &Briefer{
		gen:   gen,
		cache: &SingleSlot[Briefing]{},
		loc:   loc,
		now:   time.Now,
	}
}

// Brief returns the briefing for in, from cache when possible.
func (b *Briefer) Brief(ctx context.Context, in BriefingInput) Briefing {
	in = b.gen.Trim(in)
	key, err := BriefingKey(in, b.now(), b.loc)
	if err != nil {
		// unhashable input, skip the cache
		return b.gen.Generate(ctx, in)
	}
	v, hit := b.cache.GetOrCompute(key, func() Briefing {
		return b.gen.Generate(ctx, in)
	})
	metrics.RecordBriefingCache(hit)
	return v
}
