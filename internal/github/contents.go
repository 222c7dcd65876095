package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v67/github"

	"github.com/douhashi/verbump/internal/versionfile"
)

// ErrStaleVersionFile はバージョンファイルが読み込み後に別のコミットで更新されていたことを示す
var ErrStaleVersionFile = errors.New("version file changed since it was loaded")

// LoadVersionFile はrefからバージョンファイルを取得する
func (c *Client) LoadVersionFile(ctx context.Context, ref string) (*versionfile.File, error) {
	var content *github.RepositoryContent
	err := c.withRetry(ctx, fmt.Sprintf("get %s at %s", c.versionFile, ref), func() error {
		var err error
		content, _, _, err = c.repos.GetContents(ctx, c.owner, c.repo, c.versionFile,
			&github.RepositoryContentGetOptions{Ref: ref})
		return err
	})
	if err != nil {
		return nil, err
	}
	if content == nil || content.GetType() != "file" {
		return nil, fmt.Errorf("%s at %s is not a file", c.versionFile, ref)
	}

	text, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s at %s: %w", c.versionFile, ref, err)
	}

	c.logger.Debug("Loaded version file",
		"path", c.versionFile,
		"ref", ref,
		"sha", content.GetSHA(),
	)
	return versionfile.New(c.versionFile, ref, content.GetSHA(), text), nil
}

// PushVersionFile はファイルの内容をfile.Refへコミットする
// 読み込み時のblob SHAを渡すため、並行したpushは409の競合になる
func (c *Client) PushVersionFile(ctx context.Context, file *versionfile.File, message string) error {
	opts := &github.RepositoryContentFileOptions{
		Message:   github.String(message),
		Content:   []byte(file.Content()),
		SHA:       github.String(file.SHA),
		Branch:    github.String(file.Ref),
		Committer: c.committer,
	}

	var result *github.RepositoryContentResponse
	err := c.withRetry(ctx, fmt.Sprintf("update %s on %s", file.Path, file.Ref), func() error {
		var err error
		result, _, err = c.repos.UpdateFile(ctx, c.owner, c.repo, file.Path, opts)
		return err
	})
	if IsConflictError(err) {
		return fmt.Errorf("%w: %s on %s (loaded blob %s), re-run the workflow: %w",
			ErrStaleVersionFile, file.Path, file.Ref, file.SHA, err)
	}
	if err != nil {
		return err
	}

	if result != nil {
		file.SHA = result.Content.GetSHA()
		c.logger.Info("Pushed version file",
			"path", file.Path,
			"ref", file.Ref,
			"commit", result.Commit.GetSHA(),
			"message", message,
		)
	}
	return nil
}
