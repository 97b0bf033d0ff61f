package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuniancong/repair-report-tool/internal/export"
	"github.com/yuniancong/repair-report-tool/internal/report"
)

func newExportCommand() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "将项目导出为报告文档",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := export.ByName(format)
			if err != nil {
				return err
			}
			if err := exp.Available(); err != nil {
				return fmt.Errorf("%s 格式不可用: %w", exp.Name(), err)
			}

			proj, err := report.Load(args[0])
			if err != nil {
				return fmt.Errorf("载入项目: %w", err)
			}

			path := output
			if path == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				path = base + exp.Ext()
			} else if filepath.Ext(path) != exp.Ext() {
				path += exp.Ext()
			}

			if err := exp.Export(proj, path); err != nil {
				return fmt.Errorf("导出 %s: %w", exp.Name(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "excel", "导出格式 (excel, pdf, markdown)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件路径")
	return cmd
}
