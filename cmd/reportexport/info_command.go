package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yuniancong/repair-report-tool/internal/export"
	"github.com/yuniancong/repair-report-tool/internal/report"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.json>",
		Short: "显示项目文件摘要",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := report.Load(args[0])
			if err != nil {
				return fmt.Errorf("载入项目: %w", err)
			}

			title := proj.Title
			if title == "" {
				title = export.DefaultTitle
			}
			items, images := proj.Stats()

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"属性", "值"},
				[][]string{
					{"标题", title},
					{"创建时间", proj.CreatedTime.Format("2006-01-02 15:04:05")},
					{"格式版本", proj.Version},
					{"维修项目数", strconv.Itoa(items)},
					{"图片总数", strconv.Itoa(images)},
				},
			))

			rows := make([][]string, 0, len(proj.Items))
			for i, item := range proj.Items {
				missing := 0
				for _, path := range item.Images {
					if _, err := os.Stat(path); err != nil {
						missing++
					}
				}
				note := ""
				if missing > 0 {
					note = fmt.Sprintf("%d 张图片缺失", missing)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					item.Description,
					strconv.Itoa(len(item.Images)),
					note,
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"序号", "描述", "图片", "备注"},
					rows,
				))
			}
			return nil
		},
	}
}
