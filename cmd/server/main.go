package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd 根命令直接启动 HTTP 服务；status 子命令用于离线计算列车状态
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "controle-ferroviario",
		Short:         "列车运行台账服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")

	root.AddCommand(newStatusCmd())
	return root
}
