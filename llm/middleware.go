package llm

import (
	"context"
	"errors"
	"time"

	"savoriq/config"
	"savoriq/metrics"
	"savoriq/quota"
)

// ErrQuotaExhausted is returned when the daily LLM call budget is used up.
var ErrQuotaExhausted = errors.New("llm daily quota exhausted")

// GeneratorFunc adapts a function to TextGenerator.
type GeneratorFunc func(ctx context.Context, req Request) (*Response, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware decorates a TextGenerator.
type Middleware func(TextGenerator) TextGenerator

// Chain wraps gen so that the first middleware is the outermost.
func Chain(gen TextGenerator, mws ...Middleware) TextGenerator {
	for i := len(mws) - 1; i >= 0; i-- {
		gen = mws[i](gen)
	}
	return gen
}

// Guard wraps a provider client with the middlewares every production call
// goes through. The timeout is outermost, so a quota wait counts against it.
func Guard(gen TextGenerator, timeout time.Duration, l *quota.Limiter, rec CallRecorder, modelName string) TextGenerator {
	return Chain(gen,
		WithTimeout(timeout),
		WithQuota(l),
		WithCallLog(rec, modelName),
	)
}

// WithTimeout bounds every call. A timeout surfaces as context.DeadlineExceeded.
func WithTimeout(d time.Duration) Middleware {
	return func(next TextGenerator) TextGenerator {
		return GeneratorFunc(func(ctx context.Context, req Request) (*Response, error) {
			if d <= 0 {
				return next.Generate(ctx, req)
			}
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.Generate(ctx, req)
		})
	}
}

// WithQuota 는 호출 전에 Limiter 로 한도를 예약한다.
// 일일 한도 소진 시 ErrQuotaExhausted 를 반환해 상위에서 fallback 하도록 한다.
func WithQuota(l *quota.Limiter) Middleware {
	return func(next TextGenerator) TextGenerator {
		return GeneratorFunc(func(ctx context.Context, req Request) (*Response, error) {
			if l == nil {
				return next.Generate(ctx, req)
			}
			allowed, err := l.WaitAndReserve(ctx)
			if err != nil {
				return nil, err
			}
			if !allowed {
				metrics.RecordLLMRequest(req.Purpose, metrics.OutcomeQuota, 0)
				return nil, ErrQuotaExhausted
			}
			return next.Generate(ctx, req)
		})
	}
}

// CallLog is one recorded text-generation call.
type CallLog struct {
	Purpose      string
	ModelName    string
	ModelVersion string
	Prompt       string
	Response     string
	Usage        TokenUsage
	Err          error
	RequestedAt  time.Time
	CompletedAt  time.Time
}

func (l CallLog) Duration() time.Duration {
	return l.CompletedAt.Sub(l.RequestedAt)
}

// CallRecorder persists CallLogs (see repositories.AILogRepository).
type CallRecorder interface {
	RecordCall(ctx context.Context, log CallLog) error
}

// WithCallLog 는 호출 결과(성공/실패)를 메트릭과 CallRecorder 에 남긴다.
// 기록 실패는 호출 결과에 영향을 주지 않는다.
func WithCallLog(rec CallRecorder, modelName string) Middleware {
	return func(next TextGenerator) TextGenerator {
		return GeneratorFunc(func(ctx context.Context, req Request) (*Response, error) {
			requestedAt := time.Now()
			resp, err := next.Generate(ctx, req)

			entry := CallLog{
				Purpose:     req.Purpose,
				ModelName:   modelName,
				Prompt:      req.Prompt,
				Err:         err,
				RequestedAt: requestedAt,
				CompletedAt: time.Now(),
			}
			outcome := metrics.OutcomeOK
			if err != nil {
				outcome = metrics.OutcomeError
			} else {
				entry.Response = resp.Text
				entry.Usage = resp.Usage
				entry.ModelVersion = resp.ModelVersion
			}
			metrics.RecordLLMRequest(req.Purpose, outcome, entry.Duration())

			if rec != nil {
				if recErr := rec.RecordCall(context.WithoutCancel(ctx), entry); recErr != nil {
					config.Logger.Warnf("failed to record llm call (purpose=%s): %v", req.Purpose, recErr)
				}
			}
			return resp, err
		})
	}
}
