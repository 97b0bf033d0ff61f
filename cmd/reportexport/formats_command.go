package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuniancong/repair-report-tool/internal/export"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "列出导出格式及其可用性",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 4)
			for _, exp := range export.Registry() {
				status := "可用"
				if err := exp.Available(); err != nil {
					status = "不可用: " + err.Error()
				}
				rows = append(rows, []string{exp.Name(), exp.Ext(), status})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"格式", "扩展名", "状态"},
				rows,
			))
			return nil
		},
	}
}
