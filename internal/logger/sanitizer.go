package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// センシティブなキー（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"token",
	"password",
	"secret",
	"authorization",
	"credential",
	"private_key",
	"github_token",
	"access_token",
}

// GitHubトークンのプレフィックス
// classic PAT, OAuth, user-to-server, server-to-server (GITHUB_TOKENを含む), refresh, fine-grained PAT
var tokenPrefixes = []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_", "github_pat_"}

var (
	tokenValuePattern  = regexp.MustCompile(`^(ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{30,}$|^github_pat_[A-Za-z0-9_]{40,}$`)
	headerValuePattern = regexp.MustCompile(`(?i)^(bearer|token)\s+\S{20,}$`)
)

// SanitizeValue は値がセンシティブな場合にマスクする
func SanitizeValue(value interface{}) interface{} {
	if isSensitiveValue(value) {
		return maskValue(value.(string))
	}
	return value
}

// SanitizeKeyValue はキーと値の組み合わせをチェックし、センシティブな情報をマスクする
func SanitizeKeyValue(key string, value interface{}) (string, interface{}) {
	if isSensitiveKey(key) {
		if s, ok := value.(string); ok && isSensitiveValue(s) {
			return key, maskValue(s)
		}
		return key, masked
	}
	return key, SanitizeValue(value)
}

// SanitizeArgs はログ引数（key-valueペア）をサニタイズする
// 元のスライスは変更しない
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i < len(sanitized)-1; i += 2 {
		if key, ok := sanitized[i].(string); ok {
			_, sanitized[i+1] = SanitizeKeyValue(key, sanitized[i+1])
		}
	}

	return sanitized
}

// isSensitiveKey はキーがセンシティブかどうかを判定する
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) ||
			strings.Contains(lowerKey, "_"+pattern+"_") {
			return true
		}
	}

	return false
}

// isSensitiveValue は値がトークンまたは認証ヘッダーかどうかを判定する
func isSensitiveValue(value interface{}) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}
	return tokenValuePattern.MatchString(str) || headerValuePattern.MatchString(str)
}

// maskValue はプレフィックスを残してマスクする
func maskValue(str string) string {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(str, prefix) {
			return prefix + masked
		}
	}

	if scheme, _, found := strings.Cut(str, " "); found {
		return scheme + " " + masked
	}

	return masked
}
