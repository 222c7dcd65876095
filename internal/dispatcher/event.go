package dispatcher

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v67/github"

	"github.com/douhashi/verbump/internal/reconciler"
)

// EventType はプルリクエストイベントの種類を表す
type EventType string

const (
	// Opened プルリクエストが作成された
	Opened EventType = "opened"
	// Labeled ラベルが付与された
	Labeled EventType = "labeled"
	// Unlabeled ラベルが外された
	Unlabeled EventType = "unlabeled"
	// Merged プルリクエストがマージされた
	Merged EventType = "merged"
	// Ignored 処理対象外のアクション
	Ignored EventType = "ignored"
)

// ErrUnsupportedEvent は pull_request 以外のイベントが渡された場合に返る
var ErrUnsupportedEvent = errors.New("unsupported event")

// Event はデコード済みのプルリクエストイベント
type Event struct {
	Type EventType
	// Action はペイロードのactionフィールドそのもの
	Action      string
	PullRequest reconciler.PullRequest
	// Label はlabeled/unlabeledで付け外しされたラベル
	Label string
	// DefaultBranch はペイロードのリポジトリ情報から取得する。空の場合は設定値を使う
	DefaultBranch string
	Repository    string
}

// String はイベントの文字列表現を返す
func (e Event) String() string {
	switch e.Type {
	case Labeled, Unlabeled:
		return fmt.Sprintf("[%s] PR #%d (%s) on %s: '%s'",
			e.Type, e.PullRequest.Number, e.Repository, e.PullRequest.HeadRef, e.Label)
	case Ignored:
		return fmt.Sprintf("[%s] PR #%d (%s): action '%s'",
			e.Type, e.PullRequest.Number, e.Repository, e.Action)
	default:
		return fmt.Sprintf("[%s] PR #%d (%s) on %s",
			e.Type, e.PullRequest.Number, e.Repository, e.PullRequest.HeadRef)
	}
}

// ParseEvent はGitHub Actionsのイベント名とイベントペイロード(JSON)からEventを作成する
func ParseEvent(eventName string, payload []byte) (*Event, error) {
	if eventName != "pull_request" && eventName != "pull_request_target" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, eventName)
	}

	parsed, err := github.ParseWebHook(eventName, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", eventName, err)
	}

	var (
		action string
		pr     *github.PullRequest
		label  *github.Label
		repo   *github.Repository
	)
	switch e := parsed.(type) {
	case *github.PullRequestEvent:
		action, pr, label, repo = e.GetAction(), e.GetPullRequest(), e.GetLabel(), e.GetRepo()
	case *github.PullRequestTargetEvent:
		action, pr, label, repo = e.GetAction(), e.GetPullRequest(), e.GetLabel(), e.GetRepo()
	default:
		return nil, fmt.Errorf("%w: unexpected payload type %T", ErrUnsupportedEvent, parsed)
	}
	if pr == nil {
		return nil, fmt.Errorf("%s payload has no pull_request", eventName)
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return &Event{
		Type:   eventType(action, pr.GetMerged()),
		Action: action,
		PullRequest: reconciler.PullRequest{
			Number:  pr.GetNumber(),
			HeadRef: pr.GetHead().GetRef(),
			Labels:  labels,
		},
		Label:         label.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Repository:    repo.GetFullName(),
	}, nil
}

func eventType(action string, merged bool) EventType {
	switch action {
	case "opened":
		return Opened
	case "labeled":
		return Labeled
	case "unlabeled":
		return Unlabeled
	case "closed":
		if merged {
			return Merged
		}
	}
	return Ignored
}
