package filo

import (
	"github.com/spf13/cobra"

	"github.com/eddybean/filo/internal/cli"
	"github.com/eddybean/filo/internal/command"
)

func newListSourceFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-source-files <dir>",
		Short: "List the filenames directly in a directory, for previewing what a ruleset would see",
		Args:  cobra.ExactArgs(1),
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			names, err := command.ListSourceFiles(args[0])
			if err != nil {
				return err
			}
			if len(names) == 0 {
				cmd.Println("No files found.")
				return nil
			}
			for _, name := range names {
				cmd.Println(name)
			}
			return nil
		}),
	}
}
