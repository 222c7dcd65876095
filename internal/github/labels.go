package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v67/github"

	"github.com/douhashi/verbump/internal/release"
)

// LabelDefinition はGitHubラベルの定義
type LabelDefinition struct {
	Name        string
	Color       string
	Description string
}

// ReleaseLabelDefinitions はリリースラベルを優先順に返す
func ReleaseLabelDefinitions() []LabelDefinition {
	return []LabelDefinition{
		{
			Name:        release.MajorLabel,
			Color:       "b60205",
			Description: "Bump the major version when merged",
		},
		{
			Name:        release.MinorLabel,
			Color:       "fbca04",
			Description: "Bump the minor version when merged",
		},
		{
			Name:        release.RevisionLabel,
			Color:       "0e8a16",
			Description: "Bump the revision when merged",
		},
	}
}

// EnsureReleaseLabels はまだ存在しないリリースラベルを作成する
func (c *Client) EnsureReleaseLabels(ctx context.Context) error {
	existing, err := c.listLabelNames(ctx)
	if err != nil {
		return err
	}

	for _, def := range ReleaseLabelDefinitions() {
		if existing[def.Name] {
			continue
		}

		label := &github.Label{
			Name:        github.String(def.Name),
			Color:       github.String(def.Color),
			Description: github.String(def.Description),
		}
		err := c.withRetry(ctx, "create label "+def.Name, func() error {
			_, _, err := c.issues.CreateLabel(ctx, c.owner, c.repo, label)
			return err
		})
		if err != nil {
			// 一覧取得から作成までの間に別の実行が作成した
			if isErrorType(err, ErrorTypeValidation) {
				c.logger.Debug("Label already exists", "label", def.Name)
				continue
			}
			return err
		}
		c.logger.Info("Created release label", "label", def.Name)
	}

	return nil
}

// listLabelNames はリポジトリの全ラベル名を返す
func (c *Client) listLabelNames(ctx context.Context) (map[string]bool, error) {
	names := make(map[string]bool)
	opts := &github.ListOptions{PerPage: 100}

	for {
		var labels []*github.Label
		var resp *github.Response
		err := c.withRetry(ctx, "list repository labels", func() error {
			var err error
			labels, resp, err = c.issues.ListLabels(ctx, c.owner, c.repo, opts)
			return err
		})
		if err != nil {
			return nil, err
		}

		for _, label := range labels {
			names[label.GetName()] = true
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// RemoveLabel はプルリクエストからラベルを外す
// 既に外れているラベルはエラーにしない
func (c *Client) RemoveLabel(ctx context.Context, number int, label string) error {
	err := c.withRetry(ctx, fmt.Sprintf("remove label %s from #%d", label, number), func() error {
		_, err := c.issues.RemoveLabelForIssue(ctx, c.owner, c.repo, number, label)
		return err
	})
	if IsNotFoundError(err) {
		c.logger.Debug("Label not present on pull request", "pr", number, "label", label)
		return nil
	}
	return err
}
