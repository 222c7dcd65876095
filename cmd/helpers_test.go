package cmd

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/douhashi/verbump/internal/config"
	"github.com/douhashi/verbump/internal/dispatcher"
	"github.com/douhashi/verbump/internal/logger"
	"github.com/douhashi/verbump/internal/testutil/mocks"
)

// isolateEnv はテストに影響するGitHub Actionsの環境変数を消し、最低限の設定を入れる
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "INPUT_TOKEN", "GITHUB_REPOSITORY", "GITHUB_API_URL",
		"GITHUB_EVENT_NAME", "GITHUB_EVENT_PATH", "GITHUB_ACTIONS",
		"VERBUMP_GITHUB_TOKEN", "VERBUMP_GITHUB_REPOSITORY",
		"LOG_LEVEL", "DEBUG", "RUNNER_DEBUG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfgFile = ""
	verbose = false
	timeout = 0

	// 実行ディレクトリのgit設定に影響されないようにする
	original := detectRepositoryFunc
	detectRepositoryFunc = func() (string, error) { return "", errors.New("not a git repository") }
	t.Cleanup(func() { detectRepositoryFunc = original })
}

// useMockClient はGitHubクライアントの生成をモックに差し替える
func useMockClient(t *testing.T, api *mocks.MockGitHubAPI) {
	t.Helper()
	original := createGitHubClientFunc
	createGitHubClientFunc = func(cfg *config.Config, log logger.Logger) (dispatcher.GitHubAPI, error) {
		return api, nil
	}
	t.Cleanup(func() { createGitHubClientFunc = original })
}

// runCommand はルートコマンドを実行して標準出力とエラー出力を返す
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	rootCmd = NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
