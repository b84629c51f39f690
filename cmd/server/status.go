package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campagnoli/controle-ferroviario/internal/service"
)

// newStatusCmd 按计划/实际时刻输出列车状态，规则与 /calculate-status 一致
//
//	controle-ferroviario status --scheduled 10:00 --actual 10:06
func newStatusCmd() *cobra.Command {
	var scheduled, actual string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "计算单个时刻的列车状态",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), service.CalculateStatus(scheduled, actual))
			return nil
		},
	}
	cmd.Flags().StringVar(&scheduled, "scheduled", "", "计划时刻 HH:MM")
	cmd.Flags().StringVar(&actual, "actual", "", "实际时刻 HH:MM")

	return cmd
}
