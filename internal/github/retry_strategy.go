package github

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryStrategy はGitHub API呼び出しのリトライ方針
type RetryStrategy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
}

// DefaultRetryStrategy はデフォルトのリトライ方針を返す
func DefaultRetryStrategy() RetryStrategy {
	return RetryStrategy{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// NewRetryStrategy は試行回数と初回の待ち時間を指定したリトライ方針を返す
// 0以下の値はデフォルトのまま
func NewRetryStrategy(maxAttempts int, initialDelay time.Duration) RetryStrategy {
	rs := DefaultRetryStrategy()
	if maxAttempts > 0 {
		rs.MaxAttempts = maxAttempts
	}
	if initialDelay > 0 {
		rs.InitialDelay = initialDelay
	}
	return rs
}

// GetRetryDelay はattempt回目の失敗後の待ち時間を計算する
func (rs *RetryStrategy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(rs.InitialDelay) * math.Pow(rs.Multiplier, float64(attempt-1))
	if delay > float64(rs.MaxDelay) {
		delay = float64(rs.MaxDelay)
	}

	// 最大25%のジッター
	if rs.Jitter && delay > 0 {
		delay += rand.Float64() * 0.25 * delay
	}

	return time.Duration(delay)
}

// ShouldRetry はエラーと試行回数からリトライするかを判定する
func (rs *RetryStrategy) ShouldRetry(err error, attempt int) bool {
	if err == nil || attempt >= rs.MaxAttempts {
		return false
	}

	var ghErr *GitHubError
	if !errors.As(err, &ghErr) {
		return false
	}
	return ghErr.IsRetryable()
}

// RetryWithStrategy はoperationが成功するか、リトライ不可能なエラーになるか、
// 試行回数を使い切るまで実行する。エラーはClassifyErrorで分類してから返す
func RetryWithStrategy(ctx context.Context, strategy RetryStrategy, operation func() error) error {
	var lastErr error

	for attempt := 1; attempt <= strategy.MaxAttempts; attempt++ {
		err := ClassifyError(operation())
		if err == nil {
			return nil
		}
		lastErr = err

		if !strategy.ShouldRetry(err, attempt) {
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := strategy.GetRetryDelay(attempt)
		// レート制限のRetry-Afterを優先する
		var ghErr *GitHubError
		if errors.As(err, &ghErr) && ghErr.RetryAfter > 0 {
			delay = min(ghErr.RetryAfter, strategy.MaxDelay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
