package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/douhashi/verbump/internal/release"
)

func newNextCmd() *cobra.Command {
	var revert bool

	cmd := &cobra.Command{
		Use:   "next <version> <label>",
		Short: "ラベルを適用した次のバージョンを表示する",
		Long: `バージョンにリリースラベルを適用した結果を表示します。GitHubにはアクセスしません。

  verbump next 1.2.3 minor-release           # 1.3.0
  verbump next 1.2.4 revision-release --revert  # 1.2.3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := release.Parse(args[0])
			if err != nil {
				return err
			}
			vt, ok := release.FromLabel(args[1])
			if !ok {
				return fmt.Errorf("%q is not a release label (expected one of %v)", args[1], release.ReleaseLabels())
			}

			next, err := current.Bump(vt, !revert)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), next.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&revert, "revert", false, "ラベルを外した場合のバージョンを計算する")

	return cmd
}
