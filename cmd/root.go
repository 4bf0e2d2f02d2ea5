package cmd

import (
	"github.com/spf13/cobra"

	"taskman/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "taskman",
	Short: "Taskman - a task and project tracker",
	Long: `Taskman is a command-line tracker for tasks, projects and the
people working on them, backed by a local SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cli.RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.TaskCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
