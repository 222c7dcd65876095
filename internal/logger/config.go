package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
//
// 優先順位は LOG_LEVEL > DEBUG > RUNNER_DEBUG。
// RUNNER_DEBUG はワークフローをデバッグログ付きで再実行したときにGitHub Actionsが設定する。
// ランナー上ではLOG_FORMATの指定がなければactionsフォーマットになる。
func ConfigFromEnv() *Config {
	config := &Config{
		Level:  "info",
		Format: FormatText,
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		config.Format = FormatActions
	}

	if os.Getenv("RUNNER_DEBUG") == "1" {
		config.Level = "debug"
	}

	if isTrue(os.Getenv("DEBUG")) {
		config.Level = "debug"
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	return config
}

// NewFromEnv は環境変数から設定を読み込んでロガーを作成する
func NewFromEnv(opts ...Option) (Logger, error) {
	config := ConfigFromEnv()
	return New(append([]Option{
		WithLevel(config.Level),
		WithFormat(config.Format),
	}, opts...)...)
}

// isTrue は文字列がtrueを表すかチェックする
func isTrue(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
