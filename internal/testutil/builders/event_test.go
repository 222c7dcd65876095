package builders

import (
	"encoding/json"
	"testing"

	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullRequestEventBuilder(t *testing.T) {
	t.Run("デフォルト値", func(t *testing.T) {
		event := NewPullRequestEventBuilder().Build()

		assert.Equal(t, "opened", event.GetAction())
		assert.Equal(t, 1, event.GetPullRequest().GetNumber())
		assert.Equal(t, "feature/default", event.GetPullRequest().GetHead().GetRef())
		assert.Equal(t, "main", event.GetRepo().GetDefaultBranch())
		assert.Empty(t, event.GetPullRequest().Labels)
	})

	t.Run("マージ済みイベント", func(t *testing.T) {
		event := NewPullRequestEventBuilder().
			WithNumber(7).
			WithLabels("bug", "minor-release").
			AsMerged().
			Build()

		assert.Equal(t, "closed", event.GetAction())
		assert.True(t, event.GetPullRequest().GetMerged())
		assert.Equal(t, 7, event.GetNumber())
		require.Len(t, event.GetPullRequest().Labels, 2)
		assert.Equal(t, "minor-release", event.GetPullRequest().Labels[1].GetName())
	})

	t.Run("ペイロードはJSONとして復元できる", func(t *testing.T) {
		payload := NewPullRequestEventBuilder().
			WithAction("labeled").
			WithLabel("major-release").
			Payload()

		var decoded github.PullRequestEvent
		require.NoError(t, json.Unmarshal(payload, &decoded))
		assert.Equal(t, "labeled", decoded.GetAction())
		assert.Equal(t, "major-release", decoded.GetLabel().GetName())
	})
}
