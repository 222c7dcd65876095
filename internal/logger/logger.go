package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger はアプリケーションのログインターフェース
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	WithFields(keysAndValues ...interface{}) Logger
}

// ログフォーマット
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatActions = "actions"
)

// Config はロガーの設定
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// Option はロガーの設定オプション
type Option func(*Config)

func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

// WithOutput は出力先を設定する。既定はstderr
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}

// New は新しいロガーを作成する
// Actionのstdoutはワークフローコマンドとして解釈されるため、ログはstderrへ書く
func New(opts ...Option) (Logger, error) {
	config := &Config{
		Level:  "info",
		Format: FormatText,
		Output: os.Stderr,
	}
	for _, opt := range opts {
		opt(config)
	}

	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoder, err := newEncoder(config.Format)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(config.Output), level)
	return newLoggerWithCore(core, zap.AddCaller()), nil
}

// newEncoder はフォーマットに対応するエンコーダーを返す
//
// actions はランナーが各行にタイムスタンプを付けるため時刻と呼び出し元を省く
func newEncoder(format string) (zapcore.Encoder, error) {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	switch format {
	case FormatJSON:
		return zapcore.NewJSONEncoder(cfg), nil
	case FormatText:
		return zapcore.NewConsoleEncoder(cfg), nil
	case FormatActions:
		cfg.TimeKey = zapcore.OmitKey
		cfg.CallerKey = zapcore.OmitKey
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

// NewNop は何も出力しないロガーを返す
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

// zapLogger はzapを使用したLogger実装
// キーと値のペアは出力前にサニタイズされる
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, SanitizeArgs(keysAndValues...)...)
}

// WithFields はフィールドを追加した新しいロガーを返す
func (l *zapLogger) WithFields(keysAndValues ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(SanitizeArgs(keysAndValues...)...)}
}

func newLoggerWithCore(core zapcore.Core, opts ...zap.Option) Logger {
	opts = append(opts, zap.AddCallerSkip(1))
	return &zapLogger{sugar: zap.New(core, opts...).Sugar()}
}
