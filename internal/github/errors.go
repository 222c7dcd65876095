package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/go-github/v67/github"
)

// GitHubErrorType はGitHub APIエラーの種別
type GitHubErrorType int

const (
	// ErrorTypeRateLimit はレート制限超過
	ErrorTypeRateLimit GitHubErrorType = iota
	// ErrorTypeNetworkTimeout はネットワークタイムアウト
	ErrorTypeNetworkTimeout
	// ErrorTypeAuthentication は認証または権限の失敗
	ErrorTypeAuthentication
	// ErrorTypeNotFound はリソースが存在しない
	ErrorTypeNotFound
	// ErrorTypeConflict は読み込み後にリソースが変更された (409)
	ErrorTypeConflict
	// ErrorTypeValidation はリクエストが不正として拒否された (422)
	ErrorTypeValidation
	// ErrorTypeServerError はサーバーエラー (5xx)
	ErrorTypeServerError
	// ErrorTypeUnknown は不明なエラー
	ErrorTypeUnknown
)

// String はエラー種別の文字列表現を返す
func (t GitHubErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeNetworkTimeout:
		return "NetworkTimeout"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeConflict:
		return "Conflict"
	case ErrorTypeValidation:
		return "Validation"
	case ErrorTypeServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// GitHubError は分類済みのGitHub APIエラー
type GitHubError struct {
	Type        GitHubErrorType
	StatusCode  int
	Message     string
	RetryAfter  time.Duration
	OriginalErr error
}

// Error はerrorインターフェースの実装
func (e *GitHubError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error [%s %d]: %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error [%s]: %s", e.Type, e.Message)
}

// Unwrap は元のエラーを返す
func (e *GitHubError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable はリトライ可能なエラーかどうかを返す
func (e *GitHubError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeNetworkTimeout, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// ClassifyError はgo-githubが返したエラーを*GitHubErrorに変換する
// nilとコンテキストのエラーはそのまま返す
func ClassifyError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return err
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		retryAfter := time.Until(rateErr.Rate.Reset.Time)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return &GitHubError{
			Type:        ErrorTypeRateLimit,
			StatusCode:  statusCode(rateErr.Response),
			Message:     rateErr.Message,
			RetryAfter:  retryAfter,
			OriginalErr: err,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		classified := &GitHubError{
			Type:        ErrorTypeRateLimit,
			StatusCode:  statusCode(abuseErr.Response),
			Message:     abuseErr.Message,
			OriginalErr: err,
		}
		if abuseErr.RetryAfter != nil {
			classified.RetryAfter = *abuseErr.RetryAfter
		}
		return classified
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		code := statusCode(respErr.Response)
		return &GitHubError{
			Type:        typeForStatus(code),
			StatusCode:  code,
			Message:     respErr.Message,
			OriginalErr: err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &GitHubError{
			Type:        ErrorTypeNetworkTimeout,
			Message:     err.Error(),
			OriginalErr: err,
		}
	}

	return &GitHubError{
		Type:        ErrorTypeUnknown,
		Message:     err.Error(),
		OriginalErr: err,
	}
}

func typeForStatus(code int) GitHubErrorType {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrorTypeAuthentication
	case code == http.StatusNotFound:
		return ErrorTypeNotFound
	case code == http.StatusConflict:
		return ErrorTypeConflict
	case code == http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case code == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case code >= 500 && code < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func isErrorType(err error, t GitHubErrorType) bool {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr.Type == t
	}
	return false
}

// IsRateLimitError はレート制限エラーかどうかを返す
func IsRateLimitError(err error) bool {
	return isErrorType(err, ErrorTypeRateLimit)
}

// IsNotFoundError はリソースが存在しないエラーかどうかを返す
func IsNotFoundError(err error) bool {
	return isErrorType(err, ErrorTypeNotFound)
}

// IsAuthenticationError は認証・権限エラーかどうかを返す
func IsAuthenticationError(err error) bool {
	return isErrorType(err, ErrorTypeAuthentication)
}

// IsConflictError は競合エラーかどうかを返す
func IsConflictError(err error) bool {
	return isErrorType(err, ErrorTypeConflict)
}
