package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name               string
		args               []string
		wantErr            bool
		wantOutputContains []string
	}{
		{
			name:    "正常系: ヘルプ表示",
			args:    []string{"--help"},
			wantErr: false,
			wantOutputContains: []string{
				"verbump",
				"handle",
				"labels",
				"next",
			},
		},
		{
			name:    "正常系: バージョン表示",
			args:    []string{"--version"},
			wantErr: false,
			wantOutputContains: []string{
				"verbump version",
			},
		},
		{
			name:    "異常系: 不正なフラグ",
			args:    []string{"--invalid-flag"},
			wantErr: true,
		},
		{
			name:    "異常系: 存在しないサブコマンド",
			args:    []string{"bump"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// バッファを準備
			buf := new(bytes.Buffer)

			// テスト用のルートコマンドを作成
			rootCmd = NewRootCmd()
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs(tt.args)

			// コマンド実行
			err := rootCmd.Execute()

			// エラーチェック
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			// 出力内容チェック
			output := buf.String()
			for _, want := range tt.wantOutputContains {
				if !strings.Contains(output, want) {
					t.Errorf("Execute() output = %v, want to contain %v", output, want)
				}
			}
		})
	}
}
