package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// 这些变量在编译时通过 -ldflags 设置
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var versionShort bool

// versionCmd 版本信息命令
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), versionText())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "只输出版本号")
	rootCmd.AddCommand(versionCmd)
}

// versionText 完整版本信息
func versionText() string {
	return fmt.Sprintf("windy %s\nGit提交: %s\n构建时间: %s\nGo版本: %s\n平台: %s/%s\n",
		Version, GitCommit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
