package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv はテストに影響する環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "INPUT_TOKEN", "GITHUB_REPOSITORY", "GITHUB_API_URL",
		"GITHUB_EVENT_NAME", "GITHUB_EVENT_PATH",
		"VERBUMP_GITHUB_TOKEN", "VERBUMP_GITHUB_REPOSITORY", "VERBUMP_GITHUB_API_URL",
		"VERBUMP_GITHUB_MAX_RETRIES", "VERBUMP_VERSION_FILE_PATH", "VERBUMP_RELEASE_TAG_PREFIX",
		"VERBUMP_EVENT_NAME", "VERBUMP_EVENT_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("正常系: デフォルト設定でConfigを作成できる", func(t *testing.T) {
		cfg := NewConfig()
		if cfg == nil {
			t.Fatal("NewConfig() returned nil")
		}

		if cfg.VersionFile.Path != "setup.py" {
			t.Errorf("default version file = %v, want setup.py", cfg.VersionFile.Path)
		}
		if cfg.Release.DefaultBranch != "main" {
			t.Errorf("default branch = %v, want main", cfg.Release.DefaultBranch)
		}
		if cfg.Release.TagPrefix != "v" {
			t.Errorf("default tag prefix = %v, want v", cfg.Release.TagPrefix)
		}
		if cfg.GitHub.MaxRetries != 3 {
			t.Errorf("default max retries = %v, want 3", cfg.GitHub.MaxRetries)
		}
		if cfg.GitHub.APIURL != "https://api.github.com" {
			t.Errorf("default api url = %v, want https://api.github.com", cfg.GitHub.APIURL)
		}
	})
}

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		envVars       map[string]string
		wantErr       bool
		checkFunc     func(*testing.T, *Config)
	}{
		{
			name: "正常系: YAMLファイルから設定を読み込める",
			configContent: `
github:
  token: test-token-from-file
  repository: douhashi/example
  max_retries: 5
  retry_base_delay: 250ms
version_file:
  path: pkg/setup.py
release:
  default_branch: develop
  tag_prefix: ""
commit:
  author_name: release-bot
  author_email: release-bot@example.com
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-token-from-file", cfg.GitHub.Token)
				assert.Equal(t, "douhashi/example", cfg.GitHub.Repository)
				assert.Equal(t, 5, cfg.GitHub.MaxRetries)
				assert.Equal(t, 250*time.Millisecond, cfg.GitHub.RetryBaseDelay)
				assert.Equal(t, "pkg/setup.py", cfg.VersionFile.Path)
				assert.Equal(t, "develop", cfg.Release.DefaultBranch)
				assert.Equal(t, "", cfg.Release.TagPrefix)
				assert.Equal(t, "release-bot", cfg.Commit.AuthorName)
				assert.Equal(t, "release-bot@example.com", cfg.Commit.AuthorEmail)
			},
		},
		{
			name:          "正常系: 省略した項目はデフォルト値になる",
			configContent: "github:\n  repository: douhashi/example\n",
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "setup.py", cfg.VersionFile.Path)
				assert.Equal(t, "main", cfg.Release.DefaultBranch)
				assert.Equal(t, "v", cfg.Release.TagPrefix)
				assert.Equal(t, 3, cfg.GitHub.MaxRetries)
				assert.Equal(t, time.Second, cfg.GitHub.RetryBaseDelay)
			},
		},
		{
			name:          "正常系: GitHub Actionsの環境変数を読み込む",
			configContent: "",
			envVars: map[string]string{
				"GITHUB_TOKEN":      "ghs_actions",
				"GITHUB_REPOSITORY": "owner/repo",
				"GITHUB_API_URL":    "https://ghe.example.com/api/v3",
				"GITHUB_EVENT_NAME": "pull_request",
				"GITHUB_EVENT_PATH": "/github/workflow/event.json",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ghs_actions", cfg.GitHub.Token)
				assert.Equal(t, "owner/repo", cfg.GitHub.Repository)
				assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.APIURL)
				assert.Equal(t, "pull_request", cfg.Event.Name)
				assert.Equal(t, "/github/workflow/event.json", cfg.Event.Path)
			},
		},
		{
			name:          "正常系: INPUT_TOKENはGITHUB_TOKENより優先される",
			configContent: "github:\n  token: from-file\n",
			envVars: map[string]string{
				"INPUT_TOKEN":  "ghp_input",
				"GITHUB_TOKEN": "ghs_actions",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ghp_input", cfg.GitHub.Token)
			},
		},
		{
			name:          "正常系: VERBUMP_接頭辞の環境変数で上書きできる",
			configContent: "release:\n  tag_prefix: release-\n",
			envVars: map[string]string{
				"VERBUMP_RELEASE_TAG_PREFIX": "rel-",
				"VERBUMP_VERSION_FILE_PATH":  "src/setup.py",
				"VERBUMP_GITHUB_MAX_RETRIES": "7",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "rel-", cfg.Release.TagPrefix)
				assert.Equal(t, "src/setup.py", cfg.VersionFile.Path)
				assert.Equal(t, 7, cfg.GitHub.MaxRetries)
			},
		},
		{
			name:          "異常系: 不正なYAML",
			configContent: "github: [unterminated\n",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := ""
			if tt.configContent != "" {
				path = writeConfig(t, t.TempDir(), "verbump.yml", tt.configContent)
			}

			cfg := NewConfig()
			err := cfg.Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestConfig_Load_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()
	err := cfg.Load(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Error(t, err)
}

func TestConfig_LoadOrDefault(t *testing.T) {
	clearEnv(t)

	// 元のワーキングディレクトリを保存
	origWd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(origWd)

	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))

	t.Run("設定ファイルがなければ環境変数とデフォルト値を使う", func(t *testing.T) {
		cfg := NewConfig()
		actualPath, err := cfg.LoadOrDefault("")

		require.NoError(t, err)
		assert.Equal(t, "", actualPath)
		assert.Equal(t, "setup.py", cfg.VersionFile.Path)
	})

	t.Run("カレントディレクトリの.verbump.ymlを読み込む", func(t *testing.T) {
		writeConfig(t, ".", ".verbump.yml", "release:\n  default_branch: trunk\n")
		defer os.Remove(".verbump.yml")

		cfg := NewConfig()
		actualPath, err := cfg.LoadOrDefault("")

		require.NoError(t, err)
		assert.Equal(t, ".verbump.yml", actualPath)
		assert.Equal(t, "trunk", cfg.Release.DefaultBranch)
	})

	t.Run("カレントディレクトリの.verbump.yamlを読み込む", func(t *testing.T) {
		writeConfig(t, ".", ".verbump.yaml", "release:\n  tag_prefix: release-\n")
		defer os.Remove(".verbump.yaml")

		cfg := NewConfig()
		actualPath, err := cfg.LoadOrDefault("")

		require.NoError(t, err)
		assert.Equal(t, ".verbump.yaml", actualPath)
		assert.Equal(t, "release-", cfg.Release.TagPrefix)
	})

	t.Run("明示したパスを優先する", func(t *testing.T) {
		writeConfig(t, ".", ".verbump.yml", "release:\n  default_branch: trunk\n")
		defer os.Remove(".verbump.yml")
		explicit := writeConfig(t, t.TempDir(), "custom.yml", "release:\n  default_branch: stable\n")

		cfg := NewConfig()
		actualPath, err := cfg.LoadOrDefault(explicit)

		require.NoError(t, err)
		assert.Equal(t, explicit, actualPath)
		assert.Equal(t, "stable", cfg.Release.DefaultBranch)
	})
}

func validConfig() *Config {
	cfg := NewConfig()
	cfg.GitHub.Token = "ghp_test"
	cfg.GitHub.Repository = "douhashi/example"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "正常系: 有効な設定", modify: func(c *Config) {}},
		{name: "正常系: コミット作成者の指定", modify: func(c *Config) {
			c.Commit.AuthorName = "bot"
			c.Commit.AuthorEmail = "bot@example.com"
		}},
		{name: "正常系: リトライなし", modify: func(c *Config) { c.GitHub.MaxRetries = 0 }},
		{name: "異常系: トークンなし", modify: func(c *Config) { c.GitHub.Token = "" }, wantErr: "token is required"},
		{name: "異常系: リポジトリなし", modify: func(c *Config) { c.GitHub.Repository = "" }, wantErr: "owner/name"},
		{name: "異常系: リポジトリ形式が不正", modify: func(c *Config) { c.GitHub.Repository = "a/b/c" }, wantErr: "owner/name"},
		{name: "異常系: 負のリトライ回数", modify: func(c *Config) { c.GitHub.MaxRetries = -1 }, wantErr: "max_retries"},
		{name: "異常系: 負のリトライ間隔", modify: func(c *Config) { c.GitHub.RetryBaseDelay = -time.Second }, wantErr: "retry_base_delay"},
		{name: "異常系: コミット作成者の片方だけ", modify: func(c *Config) { c.Commit.AuthorName = "bot" }, wantErr: "set together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("空の項目にはデフォルト値を設定する", func(t *testing.T) {
		cfg := validConfig()
		cfg.VersionFile.Path = ""
		cfg.Release.DefaultBranch = ""

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "setup.py", cfg.VersionFile.Path)
		assert.Equal(t, "main", cfg.Release.DefaultBranch)
	})
}

func TestConfig_Masked(t *testing.T) {
	cfg := validConfig()
	cfg.GitHub.Token = "ghp_1234567890abcdef"

	masked := cfg.Masked()

	assert.Equal(t, "ghp_****", masked.GitHub.Token)
	assert.Equal(t, "ghp_1234567890abcdef", cfg.GitHub.Token, "元の設定は変更しない")

	short := validConfig()
	short.GitHub.Token = "abc"
	assert.Equal(t, "****", short.Masked().GitHub.Token)

	assert.Equal(t, "", NewConfig().Masked().GitHub.Token, "未設定のトークンは空のまま")
}
