package quota

import (
	"context"
	"sync"
	"time"

	"savoriq/config"
)

// Limiter 는 LLM 호출에 대한 분당/일일 한도를 관리한다.
// 인스턴스 단위 인메모리 카운터이며, 프로세스가 재시작되면 초기화된다.
type Limiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewLimiterFromConfig 는 llm.requests_per_minute / requests_per_day 설정으로 Limiter 를 만든다.
// 값이 0 이하인 방향은 제한하지 않는다.
func NewLimiterFromConfig(cfg config.LLMConfig) *Limiter {
	return NewLimiter(cfg.RequestsPerMinute, cfg.RequestsPerDay)
}

func NewLimiter(requestsPerMinute, requestsPerDay int) *Limiter {
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}
	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}
	return &Limiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
		now:        time.Now,
	}
}

// WaitAndReserve 는 호출 전에 분당/일일 한도를 적용한다.
// - 일일 한도 소진: (false, nil). 호출자는 LLM 호출을 건너뛰어야 한다.
// - 컨텍스트 취소/타임아웃: (false, ctx.Err()).
func (l *Limiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := l.now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = l.lastCall.Add(l.interval).Sub(now)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		// 락을 풀고 대기한 뒤 상태를 다시 평가한다.
		l.mu.Unlock()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// UsedToday returns the number of reservations made in the current UTC day.
func (l *Limiter) UsedToday() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dayKey != l.now().UTC().Format("2006-01-02") {
		return 0
	}
	return l.usedToday
}
