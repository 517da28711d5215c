package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savoriq/quota"
)

type recorderStub struct {
	mu   sync.Mutex
	logs []CallLog
}

func (r *recorderStub) RecordCall(_ context.Context, log CallLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next TextGenerator) TextGenerator {
			return GeneratorFunc(func(ctx context.Context, req Request) (*Response, error) {
				order = append(order, name)
				return next.Generate(ctx, req)
			})
		}
	}
	base := GeneratorFunc(func(context.Context, Request) (*Response, error) {
		order = append(order, "base")
		return &Response{Text: "ok"}, nil
	})

	_, err := Chain(base, mark("outer"), mark("inner")).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "base"}, order)
}

func TestWithTimeoutCancelsSlowCall(t *testing.T) {
	slow := GeneratorFunc(func(ctx context.Context, _ Request) (*Response, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return &Response{Text: "late"}, nil
		}
	})

	_, err := WithTimeout(10 * time.Millisecond)(slow).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithQuotaReturnsExhausted(t *testing.T) {
	calls := 0
	base := GeneratorFunc(func(context.Context, Request) (*Response, error) {
		calls++
		return &Response{Text: "ok"}, nil
	})
	gen := WithQuota(quota.NewLimiter(0, 1))(base)

	_, err := gen.Generate(context.Background(), Request{Purpose: "sentiment"})
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), Request{Purpose: "sentiment"})
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 1, calls)
}

func TestWithCallLogRecordsSuccessAndFailure(t *testing.T) {
	rec := &recorderStub{}
	fail := errors.New("boom")
	n := 0
	base := GeneratorFunc(func(context.Context, Request) (*Response, error) {
		n++
		if n == 2 {
			return nil, fail
		}
		return &Response{Text: "[]", Usage: TokenUsage{InputTokens: 3, OutputTokens: 1, TotalTokens: 4}}, nil
	})
	gen := WithCallLog(rec, "gemini-test")(base)

	_, err := gen.Generate(context.Background(), Request{Purpose: "sentiment", Prompt: "p1"})
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), Request{Purpose: "briefing", Prompt: "p2"})
	require.ErrorIs(t, err, fail)

	require.Len(t, rec.logs, 2)
	assert.Equal(t, "gemini-test", rec.logs[0].ModelName)
	assert.Equal(t, "[]", rec.logs[0].Response)
	assert.Equal(t, int64(4), rec.logs[0].Usage.TotalTokens)
	assert.NoError(t, rec.logs[0].Err)
	assert.Equal(t, "briefing", rec.logs[1].Purpose)
	assert.ErrorIs(t, rec.logs[1].Err, fail)
}

func TestGuardTimeoutCoversQuotaWait(t *testing.T) {
	calls := 0
	base := GeneratorFunc(func(context.Context, Request) (*Response, error) {
		calls++
		return &Response{Text: "ok"}, nil
	})
	// 30 per minute spaces calls 2s apart; the 100ms budget must cut the wait short.
	gen := Guard(base, 100*time.Millisecond, quota.NewLimiter(30, 0), nil, "m")

	_, err := gen.Generate(context.Background(), Request{Purpose: "sentiment"})
	require.NoError(t, err)

	start := time.Now()
	_, err = gen.Generate(context.Background(), Request{Purpose: "sentiment"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, calls)
}
