package shopify

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultRetries    = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// RetryPolicy 固定间隔的有限重试策略
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
	Retryable  func(error) bool
}

// DefaultRetryPolicy 默认重试 2 次，间隔 500ms
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: DefaultRetries,
		Delay:      DefaultRetryDelay,
		Retryable:  IsRetryable,
	}
}

// Attempts 总尝试次数 = 重试次数 + 1
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable == nil {
		return IsRetryable(err)
	}
	return p.Retryable(err)
}

// Run 执行 fn，失败且可重试时等待 Delay 后再试；父 ctx 取消时立即返回最后一次错误
func (p RetryPolicy) Run(ctx context.Context, fn func(ctx context.Context, attempt int) error, onRetry func(attempt int, err error)) error {
	attempt := 0
	var lastErr error
	operation := func() (struct{}, error) {
		attempt++
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return struct{}{}, nil
		}
		if !p.retryable(lastErr) {
			return struct{}{}, backoff.Permanent(lastErr)
		}
		return struct{}{}, lastErr
	}
	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(p.Delay)),
		backoff.WithMaxTries(uint(p.Attempts())),
	}
	if onRetry != nil {
		opts = append(opts, backoff.WithNotify(func(error, time.Duration) {
			onRetry(attempt, lastErr)
		}))
	}
	if _, err := backoff.Retry(ctx, operation, opts...); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
