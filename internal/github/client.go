package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"

	"github.com/douhashi/verbump/internal/logger"
	"github.com/douhashi/verbump/internal/versionfile"
)

// IssuesService はgo-githubのIssuesServiceのうち使用する部分
type IssuesService interface {
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
	RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error)
}

// RepositoriesService はgo-githubのRepositoriesServiceのうち使用する部分
type RepositoriesService interface {
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error)
}

// Options はClientの設定
type Options struct {
	// Repository は "owner/name" 形式のリポジトリ
	Repository string
	// APIURL はGitHub Enterprise ServerのAPI URL。空の場合はgithub.com
	APIURL string
	// VersionFile はバージョンファイルのパス
	VersionFile string
	// DefaultBranch はコミット履歴の走査とリリース作成に使うブランチ
	DefaultBranch string
	// TagPrefix はリリースタグの接頭辞
	TagPrefix string
	// CommitterName と CommitterEmail はバージョン更新コミットの作成者。空の場合はトークンの所有者
	CommitterName  string
	CommitterEmail string
	Retry          RetryStrategy
	Logger         logger.Logger
}

// Client はGitHub APIクライアントのラッパー
type Client struct {
	issues IssuesService
	repos  RepositoriesService

	owner string
	repo  string

	versionFile   string
	defaultBranch string
	tagPrefix     string
	committer     *github.CommitAuthor
	retry         RetryStrategy
	logger        logger.Logger
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token string, opts Options) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   newLoggingRoundTripper(http.DefaultTransport, log),
		},
	}

	gh := github.NewClient(httpClient)
	if opts.APIURL != "" && !isPublicAPI(opts.APIURL) {
		var err error
		gh, err = gh.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.APIURL, err)
		}
	}

	return NewClientWithServices(gh.Issues, gh.Repositories, opts)
}

// NewClientWithServices はgo-githubのサービスを直接指定してクライアントを作成する
func NewClientWithServices(issues IssuesService, repos RepositoriesService, opts Options) (*Client, error) {
	owner, repo, err := ParseRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	c := &Client{
		issues:        issues,
		repos:         repos,
		owner:         owner,
		repo:          repo,
		versionFile:   opts.VersionFile,
		defaultBranch: opts.DefaultBranch,
		tagPrefix:     opts.TagPrefix,
		retry:         opts.Retry,
		logger:        opts.Logger,
	}
	if c.versionFile == "" {
		c.versionFile = versionfile.DefaultPath
	}
	if c.defaultBranch == "" {
		c.defaultBranch = "main"
	}
	if c.retry.MaxAttempts <= 0 {
		c.retry = DefaultRetryStrategy()
	}
	if c.logger == nil {
		c.logger = logger.NewNop()
	}
	if opts.CommitterName != "" && opts.CommitterEmail != "" {
		c.committer = &github.CommitAuthor{
			Name:  github.String(opts.CommitterName),
			Email: github.String(opts.CommitterEmail),
		}
	}

	return c, nil
}

// withRetry はリトライ戦略に従ってAPI呼び出しを実行する
func (c *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	attempt := 0
	err := RetryWithStrategy(ctx, c.retry, func() error {
		attempt++
		if attempt > 1 {
			c.logger.Warn("Retrying GitHub API call",
				"operation", operation,
				"attempt", attempt,
			)
		}
		return fn()
	})
	if err != nil {
		if IsRateLimitError(err) {
			c.logger.Error("GitHub API rate limit exhausted",
				"operation", operation,
				"attempts", attempt,
			)
		}
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

// ParseRepository は "owner/name" 形式の文字列を分解する
func ParseRepository(fullName string) (string, string, error) {
	owner, repo, found := strings.Cut(fullName, "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("repository must be in owner/name form: %q", fullName)
	}
	return owner, repo, nil
}

func isPublicAPI(apiURL string) bool {
	return strings.TrimSuffix(apiURL, "/") == "https://api.github.com"
}
