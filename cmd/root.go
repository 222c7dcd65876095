package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/douhashi/verbump/internal/config"
	"github.com/douhashi/verbump/internal/logger"
	"github.com/douhashi/verbump/internal/version"
)

var (
	cfgFile   string
	verbose   bool
	timeout   time.Duration
	rootCmd   *cobra.Command
	appLog    logger.Logger
	appConfig *config.Config
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd はすべてのサブコマンドを持つルートコマンドを作成する
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	// サブコマンドを追加
	cmd.AddCommand(newHandleCmd())
	cmd.AddCommand(newLabelsCmd())
	cmd.AddCommand(newNextCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verbump",
		Short: "リリースラベルでsetup.pyのバージョンを管理するGitHub Action",
		Long: `verbumpは、プルリクエストのリリースラベル(major-release, minor-release,
revision-release)に合わせてsetup.pyのバージョンを更新し、
マージ時にリリースを作成するGitHub Actionです。`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			// ロガーの初期化
			if verbose {
				os.Setenv("DEBUG", "true")
			}
			var err error
			appLog, err = logger.NewFromEnv(logger.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "処理全体のタイムアウト(例: 2m)。0は無制限")

	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	return cmd
}

// Execute はSIGINT/SIGTERMでキャンセルされるコンテキストでルートコマンドを実行する
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() error {
	appConfig = config.NewConfig()
	if _, err := appConfig.LoadOrDefault(cfgFile); err != nil {
		return err
	}
	return nil
}

// commandContext はコマンドのコンテキストに--timeoutを適用する
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
