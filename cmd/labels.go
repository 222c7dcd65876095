package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/douhashi/verbump/internal/release"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "リリースラベルを作成する",
		Long:  `major-release, minor-release, revision-releaseのうちリポジトリに存在しないラベルを作成します。`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGitHubClient(appConfig, appLog)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := client.EnsureReleaseLabels(ctx); err != nil {
				return fmt.Errorf("failed to ensure release labels: %w", err)
			}

			for _, label := range release.ReleaseLabels() {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", label)
			}
			return nil
		},
	}
	return cmd
}
