package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultVersionFile はバージョンを管理するファイル
	DefaultVersionFile = "setup.py"
	// DefaultBranch はリリースを作成するブランチ
	DefaultBranch = "main"
	// DefaultTagPrefix はリリースタグの接頭辞
	DefaultTagPrefix = "v"
	// DefaultAPIURL はgithub.comのAPI URL
	DefaultAPIURL = "https://api.github.com"
)

// defaultConfigFiles はカレントディレクトリで探す設定ファイル
var defaultConfigFiles = []string{".verbump.yml", ".verbump.yaml"}

// Config はアプリケーション全体の設定
type Config struct {
	GitHub      GitHubConfig      `mapstructure:"github" yaml:"github"`
	VersionFile VersionFileConfig `mapstructure:"version_file" yaml:"version_file"`
	Release     ReleaseConfig     `mapstructure:"release" yaml:"release"`
	Commit      CommitConfig      `mapstructure:"commit" yaml:"commit"`
	Event       EventConfig       `mapstructure:"event" yaml:"event"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token          string        `mapstructure:"token" yaml:"token"`
	Repository     string        `mapstructure:"repository" yaml:"repository"`
	APIURL         string        `mapstructure:"api_url" yaml:"api_url"`
	// MaxRetries は失敗したAPI呼び出しを再試行する回数。0なら再試行しない
	MaxRetries     int           `mapstructure:"max_retries" yaml:"max_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" yaml:"retry_base_delay"`
}

// VersionFileConfig はバージョンファイルの設定
type VersionFileConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ReleaseConfig はリリース作成の設定
type ReleaseConfig struct {
	DefaultBranch string `mapstructure:"default_branch" yaml:"default_branch"`
	TagPrefix     string `mapstructure:"tag_prefix" yaml:"tag_prefix"`
}

// CommitConfig はバージョン更新コミットの作成者。空の場合はトークンの所有者になる
type CommitConfig struct {
	AuthorName  string `mapstructure:"author_name" yaml:"author_name"`
	AuthorEmail string `mapstructure:"author_email" yaml:"author_email"`
}

// EventConfig はGitHub Actionsが渡すイベント情報
type EventConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Path string `mapstructure:"path" yaml:"path"`
}

// NewConfig は新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:         DefaultAPIURL,
			MaxRetries:     3,
			RetryBaseDelay: 1 * time.Second,
		},
		VersionFile: VersionFileConfig{
			Path: DefaultVersionFile,
		},
		Release: ReleaseConfig{
			DefaultBranch: DefaultBranch,
			TagPrefix:     DefaultTagPrefix,
		},
	}
}

// Load は設定ファイルと環境変数から設定を読み込む。configPathが空の場合は環境変数のみ
func (c *Config) Load(configPath string) error {
	v := viper.New()

	// 環境変数の設定
	v.SetEnvPrefix("VERBUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GitHub Actionsの環境変数もサポート。先に書いたものが優先される
	_ = v.BindEnv("github.token", "VERBUMP_GITHUB_TOKEN", "INPUT_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("github.repository", "VERBUMP_GITHUB_REPOSITORY", "GITHUB_REPOSITORY")
	_ = v.BindEnv("github.api_url", "VERBUMP_GITHUB_API_URL", "GITHUB_API_URL")
	_ = v.BindEnv("event.name", "VERBUMP_EVENT_NAME", "GITHUB_EVENT_NAME")
	_ = v.BindEnv("event.path", "VERBUMP_EVENT_PATH", "GITHUB_EVENT_PATH")

	// デフォルト値の設定
	defaults := NewConfig()
	v.SetDefault("github.api_url", defaults.GitHub.APIURL)
	v.SetDefault("github.max_retries", defaults.GitHub.MaxRetries)
	v.SetDefault("github.retry_base_delay", defaults.GitHub.RetryBaseDelay)
	v.SetDefault("version_file.path", defaults.VersionFile.Path)
	v.SetDefault("release.default_branch", defaults.Release.DefaultBranch)
	v.SetDefault("release.tag_prefix", defaults.Release.TagPrefix)
	v.SetDefault("commit.author_name", "")
	v.SetDefault("commit.author_email", "")

	// 設定ファイルを読み込む
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	// 設定を構造体にマッピング
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	return nil
}

// LoadOrDefault は設定を読み込み、実際に読み込んだ設定ファイルのパスを返す。
// configPathが空の場合はカレントディレクトリの.verbump.yml/.verbump.yamlを探す
func (c *Config) LoadOrDefault(configPath string) (string, error) {
	if configPath == "" {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
	}

	if err := c.Load(configPath); err != nil {
		return "", err
	}
	return configPath, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return errors.New("GitHub token is required (set GITHUB_TOKEN or github.token)")
	}

	owner, repo, found := strings.Cut(c.GitHub.Repository, "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return fmt.Errorf("github.repository must be in owner/name form: %q", c.GitHub.Repository)
	}

	if c.GitHub.MaxRetries < 0 {
		return errors.New("github.max_retries must not be negative")
	}
	if c.GitHub.RetryBaseDelay < 0 {
		return errors.New("github.retry_base_delay must not be negative")
	}

	// 空の場合はデフォルト値を設定
	if c.VersionFile.Path == "" {
		c.VersionFile.Path = DefaultVersionFile
	}
	if c.Release.DefaultBranch == "" {
		c.Release.DefaultBranch = DefaultBranch
	}

	if (c.Commit.AuthorName == "") != (c.Commit.AuthorEmail == "") {
		return errors.New("commit.author_name and commit.author_email must be set together")
	}

	return nil
}

// Masked はトークンをマスクした設定のコピーを返す
func (c *Config) Masked() *Config {
	masked := *c
	if masked.GitHub.Token != "" {
		masked.GitHub.Token = maskToken(masked.GitHub.Token)
	}
	return &masked
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****"
}
