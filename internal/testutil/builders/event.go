package builders

import (
	"encoding/json"

	"github.com/google/go-github/v67/github"
)

// PullRequestEventBuilder builds pull_request webhook payloads for testing
type PullRequestEventBuilder struct {
	event *github.PullRequestEvent
}

// NewPullRequestEventBuilder creates a new PullRequestEventBuilder with sensible defaults
func NewPullRequestEventBuilder() *PullRequestEventBuilder {
	return &PullRequestEventBuilder{
		event: &github.PullRequestEvent{
			Action: github.String("opened"),
			Number: github.Int(1),
			PullRequest: &github.PullRequest{
				Number: github.Int(1),
				State:  github.String("open"),
				Title:  github.String("Default Pull Request"),
				Head:   &github.PullRequestBranch{Ref: github.String("feature/default")},
				Base:   &github.PullRequestBranch{Ref: github.String("main")},
				Labels: []*github.Label{},
			},
			Repo: &github.Repository{
				Name:          github.String("example"),
				FullName:      github.String("douhashi/example"),
				DefaultBranch: github.String("main"),
			},
		},
	}
}

// WithAction sets the event action
func (b *PullRequestEventBuilder) WithAction(action string) *PullRequestEventBuilder {
	b.event.Action = github.String(action)
	return b
}

// WithNumber sets the pull request number
func (b *PullRequestEventBuilder) WithNumber(number int) *PullRequestEventBuilder {
	b.event.Number = github.Int(number)
	b.event.PullRequest.Number = github.Int(number)
	return b
}

// WithHeadRef sets the head branch of the pull request
func (b *PullRequestEventBuilder) WithHeadRef(ref string) *PullRequestEventBuilder {
	b.event.PullRequest.Head.Ref = github.String(ref)
	return b
}

// WithLabels sets the labels attached to the pull request
func (b *PullRequestEventBuilder) WithLabels(labels ...string) *PullRequestEventBuilder {
	b.event.PullRequest.Labels = make([]*github.Label, len(labels))
	for i, label := range labels {
		b.event.PullRequest.Labels[i] = &github.Label{Name: github.String(label)}
	}
	return b
}

// WithLabel sets the label added or removed by a labeled/unlabeled event
func (b *PullRequestEventBuilder) WithLabel(label string) *PullRequestEventBuilder {
	b.event.Label = &github.Label{Name: github.String(label)}
	return b
}

// WithDefaultBranch sets the repository default branch
func (b *PullRequestEventBuilder) WithDefaultBranch(branch string) *PullRequestEventBuilder {
	b.event.Repo.DefaultBranch = github.String(branch)
	return b
}

// WithoutRepository drops the repository from the payload
func (b *PullRequestEventBuilder) WithoutRepository() *PullRequestEventBuilder {
	b.event.Repo = nil
	return b
}

// AsMerged marks the pull request as closed and merged
func (b *PullRequestEventBuilder) AsMerged() *PullRequestEventBuilder {
	b.event.Action = github.String("closed")
	b.event.PullRequest.State = github.String("closed")
	b.event.PullRequest.Merged = github.Bool(true)
	return b
}

// AsClosed marks the pull request as closed without merging
func (b *PullRequestEventBuilder) AsClosed() *PullRequestEventBuilder {
	b.event.Action = github.String("closed")
	b.event.PullRequest.State = github.String("closed")
	b.event.PullRequest.Merged = github.Bool(false)
	return b
}

// Build returns the constructed event
func (b *PullRequestEventBuilder) Build() *github.PullRequestEvent {
	return b.event
}

// Payload returns the event encoded as the JSON GitHub delivers
func (b *PullRequestEventBuilder) Payload() []byte {
	data, err := json.Marshal(b.event)
	if err != nil {
		panic(err)
	}
	return data
}
