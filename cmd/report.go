package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/douhashi/verbump/internal/github"
	"github.com/douhashi/verbump/internal/reconciler"
)

// permissionHint は認証・権限エラー時に添えるメッセージ
const permissionHint = "the token needs contents: write and pull-requests: write permissions"

// reportError はエラーを出力する。GitHub Actions上ではワークフローコマンドとして注釈を付ける
func reportError(w io.Writer, err error) {
	message := err.Error()
	if github.IsAuthenticationError(err) {
		message += "\n" + permissionHint
	}

	if os.Getenv("GITHUB_ACTIONS") != "true" {
		fmt.Fprintln(w, message)
		return
	}

	title := "verbump"
	if stage := reconciler.StageOf(err); stage != "" {
		title = fmt.Sprintf("verbump (%s)", stage)
	}
	fmt.Fprintf(w, "::error title=%s::%s\n", title, escapeWorkflowData(message))
}

// escapeWorkflowData はワークフローコマンドのメッセージ部分をエスケープする
func escapeWorkflowData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
