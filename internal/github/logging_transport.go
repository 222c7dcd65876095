package github

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/douhashi/verbump/internal/logger"
)

// loggingRoundTripper はGitHub APIへのリクエスト/レスポンスをデバッグログに出力するラウンドトリッパー
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
}

// newLoggingRoundTripper はbaseをラップしたラウンドトリッパーを返す
func newLoggingRoundTripper(base http.RoundTripper, log logger.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingRoundTripper{base: base, logger: log}
}

// RoundTrip はHTTPリクエストを実行し、リクエスト/レスポンスの概要をログ出力する
func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
	}
	if auth := req.Header.Get("Authorization"); auth != "" {
		fields = append(fields, "authorization", maskAuthHeader(auth))
	}
	rt.logger.Debug("github_api_request", fields...)

	resp, err := rt.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Error("github_api_error",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	respFields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}
	// レート制限情報
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		respFields = append(respFields, "rate_limit_remaining", remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		respFields = append(respFields, "rate_limit_reset", reset)
	}
	rt.logger.Debug("github_api_response", respFields...)

	return resp, nil
}

// maskAuthHeader はAuthorizationヘッダーの値をマスキングする
func maskAuthHeader(auth string) string {
	if scheme, _, found := strings.Cut(auth, " "); found {
		return fmt.Sprintf("%s [REDACTED]", scheme)
	}
	return "[REDACTED]"
}
