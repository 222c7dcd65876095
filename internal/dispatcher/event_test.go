package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/douhashi/verbump/internal/reconciler"
	"github.com/douhashi/verbump/internal/testutil/builders"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		payload   []byte
		want      Event
	}{
		{
			name:      "opened",
			eventName: "pull_request",
			payload: builders.NewPullRequestEventBuilder().
				WithNumber(3).
				WithHeadRef("feature/a").
				Payload(),
			want: Event{
				Type:          Opened,
				Action:        "opened",
				PullRequest:   reconciler.PullRequest{Number: 3, HeadRef: "feature/a", Labels: []string{}},
				DefaultBranch: "main",
				Repository:    "douhashi/example",
			},
		},
		{
			name:      "labeled",
			eventName: "pull_request",
			payload: builders.NewPullRequestEventBuilder().
				WithAction("labeled").
				WithNumber(12).
				WithHeadRef("feature/b").
				WithLabels("bug", "minor-release").
				WithLabel("minor-release").
				Payload(),
			want: Event{
				Type:          Labeled,
				Action:        "labeled",
				PullRequest:   reconciler.PullRequest{Number: 12, HeadRef: "feature/b", Labels: []string{"bug", "minor-release"}},
				Label:         "minor-release",
				DefaultBranch: "main",
				Repository:    "douhashi/example",
			},
		},
		{
			name:      "unlabeled via pull_request_target",
			eventName: "pull_request_target",
			payload: builders.NewPullRequestEventBuilder().
				WithAction("unlabeled").
				WithNumber(4).
				WithHeadRef("fork-branch").
				WithLabel("revision-release").
				Payload(),
			want: Event{
				Type:          Unlabeled,
				Action:        "unlabeled",
				PullRequest:   reconciler.PullRequest{Number: 4, HeadRef: "fork-branch", Labels: []string{}},
				Label:         "revision-release",
				DefaultBranch: "main",
				Repository:    "douhashi/example",
			},
		},
		{
			name:      "merged",
			eventName: "pull_request",
			payload: builders.NewPullRequestEventBuilder().
				WithNumber(9).
				WithLabels("major-release").
				WithDefaultBranch("develop").
				AsMerged().
				Payload(),
			want: Event{
				Type:          Merged,
				Action:        "closed",
				PullRequest:   reconciler.PullRequest{Number: 9, HeadRef: "feature/default", Labels: []string{"major-release"}},
				DefaultBranch: "develop",
				Repository:    "douhashi/example",
			},
		},
		{
			name:      "closed without merge",
			eventName: "pull_request",
			payload:   builders.NewPullRequestEventBuilder().AsClosed().Payload(),
			want: Event{
				Type:          Ignored,
				Action:        "closed",
				PullRequest:   reconciler.PullRequest{Number: 1, HeadRef: "feature/default", Labels: []string{}},
				DefaultBranch: "main",
				Repository:    "douhashi/example",
			},
		},
		{
			name:      "synchronize is ignored",
			eventName: "pull_request",
			payload:   builders.NewPullRequestEventBuilder().WithAction("synchronize").WithoutRepository().Payload(),
			want: Event{
				Type:        Ignored,
				Action:      "synchronize",
				PullRequest: reconciler.PullRequest{Number: 1, HeadRef: "feature/default", Labels: []string{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.eventName, tt.payload)

			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseEvent_Errors(t *testing.T) {
	t.Run("異常系: pull_request以外のイベント", func(t *testing.T) {
		_, err := ParseEvent("push", []byte(`{}`))

		assert.ErrorIs(t, err, ErrUnsupportedEvent)
	})

	t.Run("異常系: 不正なJSON", func(t *testing.T) {
		_, err := ParseEvent("pull_request", []byte(`{`))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedEvent)
	})

	t.Run("異常系: pull_requestフィールドがない", func(t *testing.T) {
		_, err := ParseEvent("pull_request", []byte(`{"action":"opened"}`))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "has no pull_request")
	})
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name: "labeled",
			event: Event{
				Type:        Labeled,
				PullRequest: reconciler.PullRequest{Number: 12, HeadRef: "feature/b"},
				Label:       "minor-release",
				Repository:  "douhashi/example",
			},
			expected: "[labeled] PR #12 (douhashi/example) on feature/b: 'minor-release'",
		},
		{
			name: "merged",
			event: Event{
				Type:        Merged,
				PullRequest: reconciler.PullRequest{Number: 9, HeadRef: "feature/c"},
				Repository:  "douhashi/example",
			},
			expected: "[merged] PR #9 (douhashi/example) on feature/c",
		},
		{
			name: "ignored",
			event: Event{
				Type:        Ignored,
				Action:      "edited",
				PullRequest: reconciler.PullRequest{Number: 1},
				Repository:  "douhashi/example",
			},
			expected: "[ignored] PR #1 (douhashi/example): action 'edited'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.String())
		})
	}
}
