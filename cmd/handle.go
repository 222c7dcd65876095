package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/douhashi/verbump/internal/dispatcher"
)

func newHandleCmd() *cobra.Command {
	var eventName, eventPath string

	cmd := &cobra.Command{
		Use:   "handle",
		Short: "プルリクエストイベントを処理する",
		Long: `GitHub Actionsが渡すpull_requestイベントを読み込み、
opened/labeled/unlabeled/マージに応じてラベル作成・バージョン更新・リリース作成を行います。

イベント名とペイロードのパスは既定でGITHUB_EVENT_NAMEとGITHUB_EVENT_PATHから取得します。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventName == "" {
				eventName = appConfig.Event.Name
			}
			if eventPath == "" {
				eventPath = appConfig.Event.Path
			}
			if eventName == "" || eventPath == "" {
				return errors.New("event name and payload path are required (GITHUB_EVENT_NAME, GITHUB_EVENT_PATH)")
			}

			payload, err := os.ReadFile(eventPath)
			if err != nil {
				return fmt.Errorf("failed to read event payload: %w", err)
			}

			event, err := dispatcher.ParseEvent(eventName, payload)
			if err != nil {
				return err
			}
			if event.Type == dispatcher.Ignored {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %s\n", event)
				return nil
			}

			client, err := newGitHubClient(appConfig, appLog)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			d := dispatcher.New(client, appLog, dispatcher.WithDefaultBranch(appConfig.Release.DefaultBranch))
			if err := d.Dispatch(ctx, event); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Handled: %s\n", event)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventName, "event-name", "", "イベント名 (pull_request, pull_request_target)")
	cmd.Flags().StringVar(&eventPath, "event-path", "", "イベントペイロード(JSON)のパス")

	return cmd
}
