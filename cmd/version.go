package cmd

import (
	"fmt"

	"github.com/haierkeys/fast-note-link-service/internal/app"

	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print out version info and exit. // 打印版本信息并退出。",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(app.Version)
			return
		}
		fmt.Printf("%s v%s ( Git:%s ) BuildTime:%s\n", app.Name, app.Version, app.GitTag, app.BuildTime)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print version number only")
	rootCmd.AddCommand(versionCmd)
}
