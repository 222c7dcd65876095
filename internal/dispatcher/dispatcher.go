// Package dispatcher はプルリクエストのイベントをバージョン調整とリリース作成に振り分ける。
// イベント間で状態を持たず、副作用はすべて注入されたGitHubAPIを通す。
package dispatcher

import (
	"context"
	"fmt"

	"github.com/douhashi/verbump/internal/logger"
	"github.com/douhashi/verbump/internal/reconciler"
	"github.com/douhashi/verbump/internal/release"
)

// GitHubAPI はディスパッチャーと調整処理が使うGitHubの操作
type GitHubAPI interface {
	reconciler.GitHubAPI
	// EnsureReleaseLabels はリポジトリにないリリースラベルを作成する
	EnsureReleaseLabels(ctx context.Context) error
	// CreateRelease はbranchに記録されたバージョンのリリースを作成する
	CreateRelease(ctx context.Context, branch string) error
}

// Dispatcher はプルリクエストのイベントをハンドラに対応付ける
type Dispatcher struct {
	api           GitHubAPI
	reconciler    *reconciler.Reconciler
	defaultBranch string
	logger        logger.Logger
}

// Option はDispatcherの設定オプション
type Option func(*Dispatcher)

// WithDefaultBranch はイベントにデフォルトブランチがない場合のリリース先を設定する
func WithDefaultBranch(branch string) Option {
	return func(d *Dispatcher) {
		d.defaultBranch = branch
	}
}

// New はDispatcherを作成する
func New(api GitHubAPI, log logger.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = logger.NewNop()
	}
	d := &Dispatcher{
		api:           api,
		defaultBranch: "main",
		logger:        log,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reconciler = reconciler.New(api, log)
	return d
}

// Dispatch はイベントを対応するハンドラに渡す。無視するイベントは副作用なしで成功する
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	d.logger.Info("Dispatching event", "event", event.String())

	switch event.Type {
	case Opened:
		return d.OnOpened(ctx)
	case Labeled:
		_, err := d.OnLabeled(ctx, event.PullRequest, event.Label)
		return err
	case Unlabeled:
		_, err := d.OnUnlabeled(ctx, event.PullRequest, event.Label)
		return err
	case Merged:
		branch := event.DefaultBranch
		if branch == "" {
			branch = d.defaultBranch
		}
		_, err := d.OnMerged(ctx, event.PullRequest, branch)
		return err
	default:
		d.logger.Debug("Ignoring pull request action", "action", event.Action, "pr", event.PullRequest.Number)
		return nil
	}
}

// OnOpened はリポジトリにリリースラベルを用意する
func (d *Dispatcher) OnOpened(ctx context.Context) error {
	if err := d.api.EnsureReleaseLabels(ctx); err != nil {
		return fmt.Errorf("failed to ensure release labels: %w", err)
	}
	return nil
}

// OnLabeled は付与されたリリースラベルに従ってバージョンを上げる
// リリースラベル以外は無視してnilを返す
func (d *Dispatcher) OnLabeled(ctx context.Context, pr reconciler.PullRequest, label string) (*reconciler.Result, error) {
	if !release.IsReleaseLabel(label) {
		d.logger.Debug("Ignoring non-release label", "pr", pr.Number, "label", label)
		return nil, nil
	}
	return d.reconciler.Apply(ctx, pr, label)
}

// OnUnlabeled は外されたリリースラベルの分だけバージョンを戻す
// リリースラベル以外は無視してnilを返す。他のリリースラベルが残っている場合も戻さない。
// そのラベルのApplyが履歴からバージョンを組み直し済みで、
// ワークフローを起動できるトークンではApply自身のラベル削除がこの形で届く
func (d *Dispatcher) OnUnlabeled(ctx context.Context, pr reconciler.PullRequest, label string) (*reconciler.Result, error) {
	if !release.IsReleaseLabel(label) {
		d.logger.Debug("Ignoring non-release label", "pr", pr.Number, "label", label)
		return nil, nil
	}
	if remaining, ok := otherReleaseLabel(pr, label); ok {
		d.logger.Debug("Skipping revert, another release label is attached",
			"pr", pr.Number,
			"label", label,
			"remaining", remaining,
		)
		return nil, nil
	}
	return d.reconciler.Revert(ctx, pr, label)
}

// OnMerged はマージされたプルリクエストにリリースラベルがあればbranchにリリースを1つ作成する
// リリースを作成したかどうかを返す
func (d *Dispatcher) OnMerged(ctx context.Context, pr reconciler.PullRequest, branch string) (bool, error) {
	for _, label := range pr.Labels {
		if !release.IsReleaseLabel(label) {
			continue
		}
		d.logger.Info("Creating release", "pr", pr.Number, "label", label, "branch", branch)
		if err := d.api.CreateRelease(ctx, branch); err != nil {
			return false, fmt.Errorf("failed to create release on %s: %w", branch, err)
		}
		return true, nil
	}

	d.logger.Info("No release label on merged pull request", "pr", pr.Number)
	return false, nil
}

// otherReleaseLabel はpr上のlabel以外のリリースラベルを返す
func otherReleaseLabel(pr reconciler.PullRequest, label string) (string, bool) {
	for _, l := range release.ReleaseLabels() {
		if l != label && pr.HasLabel(l) {
			return l, true
		}
	}
	return "", false
}
