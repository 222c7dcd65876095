package cmd

import (
	"github.com/douhashi/verbump/internal/config"
	"github.com/douhashi/verbump/internal/dispatcher"
	"github.com/douhashi/verbump/internal/github"
	"github.com/douhashi/verbump/internal/logger"
	"github.com/douhashi/verbump/internal/repoinfo"
)

// createGitHubClientFunc はテストで差し替えられるクライアント生成関数
var createGitHubClientFunc = func(cfg *config.Config, log logger.Logger) (dispatcher.GitHubAPI, error) {
	return github.NewClient(cfg.GitHub.Token, clientOptions(cfg, log))
}

// clientOptions は設定からクライアントのオプションを組み立てる
// max_retries は初回の呼び出しに続く再試行の回数
func clientOptions(cfg *config.Config, log logger.Logger) github.Options {
	return github.Options{
		Repository:     cfg.GitHub.Repository,
		APIURL:         cfg.GitHub.APIURL,
		VersionFile:    cfg.VersionFile.Path,
		DefaultBranch:  cfg.Release.DefaultBranch,
		TagPrefix:      cfg.Release.TagPrefix,
		CommitterName:  cfg.Commit.AuthorName,
		CommitterEmail: cfg.Commit.AuthorEmail,
		Retry:          github.NewRetryStrategy(cfg.GitHub.MaxRetries+1, cfg.GitHub.RetryBaseDelay),
		Logger:         log,
	}
}

// detectRepositoryFunc はテストで差し替えられるリポジトリ検出関数
var detectRepositoryFunc = func() (string, error) {
	info, err := repoinfo.Detect(".")
	if err != nil {
		return "", err
	}
	return info.FullName(), nil
}

// newGitHubClient は設定を検証してからクライアントを作成する。
// リポジトリが未設定の場合はカレントディレクトリのoriginリモートから補う
func newGitHubClient(cfg *config.Config, log logger.Logger) (dispatcher.GitHubAPI, error) {
	if cfg.GitHub.Repository == "" {
		if repo, err := detectRepositoryFunc(); err == nil {
			log.Debug("Detected repository from origin remote", "repository", repo)
			cfg.GitHub.Repository = repo
		} else {
			log.Debug("Could not detect repository", "error", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return createGitHubClientFunc(cfg, log)
}
