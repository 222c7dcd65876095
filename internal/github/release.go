package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v67/github"
)

// CreateRelease はbranchに記録されたバージョンのリリースを作成する
// タグは接頭辞とバージョンを連結したもの (例: "v1.3.0")
func (c *Client) CreateRelease(ctx context.Context, branch string) error {
	file, err := c.LoadVersionFile(ctx, branch)
	if err != nil {
		return err
	}
	version, err := file.Version()
	if err != nil {
		return fmt.Errorf("failed to read release version on %s: %w", branch, err)
	}

	tag := c.tagPrefix + version.String()
	rel := &github.RepositoryRelease{
		TagName:         github.String(tag),
		TargetCommitish: github.String(branch),
		Name:            github.String(tag),
	}

	var created *github.RepositoryRelease
	err = c.withRetry(ctx, "create release "+tag, func() error {
		var err error
		created, _, err = c.repos.CreateRelease(ctx, c.owner, c.repo, rel)
		return err
	})
	if err != nil {
		return err
	}

	c.logger.Info("Created release",
		"tag", tag,
		"branch", branch,
		"url", created.GetHTMLURL(),
	)
	return nil
}
