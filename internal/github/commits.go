package github

import (
	"context"
	"iter"

	"github.com/google/go-github/v67/github"

	"github.com/douhashi/verbump/internal/history"
)

const commitsPerPage = 100

// Commits はデフォルトブランチのコミットを新しい順に返す
// ページは必要になった時点で取得し、走査を打ち切ればそれ以降は取得しない
func (c *Client) Commits(ctx context.Context) iter.Seq2[history.Commit, error] {
	return func(yield func(history.Commit, error) bool) {
		opts := &github.CommitsListOptions{
			SHA:         c.defaultBranch,
			ListOptions: github.ListOptions{PerPage: commitsPerPage},
		}

		for {
			var commits []*github.RepositoryCommit
			var resp *github.Response
			err := c.withRetry(ctx, "list commits of "+c.defaultBranch, func() error {
				var err error
				commits, resp, err = c.repos.ListCommits(ctx, c.owner, c.repo, opts)
				return err
			})
			if err != nil {
				yield(history.Commit{}, err)
				return
			}

			for _, rc := range commits {
				commit := history.Commit{
					SHA:     rc.GetSHA(),
					Message: rc.GetCommit().GetMessage(),
				}
				if !yield(commit, nil) {
					return
				}
			}

			if resp == nil || resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}
