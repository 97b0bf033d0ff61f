package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reportexport",
		Short:         "维修报告项目文件的查看与导出",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newFormatsCommand())

	return rootCmd
}
