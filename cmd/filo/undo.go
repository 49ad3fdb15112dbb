package filo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eddybean/filo/internal/cli"
	"github.com/eddybean/filo/internal/command"
	"github.com/eddybean/filo/internal/engine"
)

func newUndoCommand() *cobra.Command {
	var (
		source, destination string
		fromResult          string
	)

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Reverse a previous transfer, by explicit paths or from a saved run's --save-result file",
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}

			if fromResult != "" {
				return undoFromResultFile(cmd, commands, fromResult)
			}

			if source == "" || destination == "" {
				return fmt.Errorf("pass both --source and --destination, or --from-result")
			}

			req := command.UndoRequest{SourcePath: source, DestinationPath: destination}
			if err := commands.UndoFile(req); err != nil {
				suggestion := cli.CommonErrorSuggestions{}.ForTransferOperation("undo", destination, err)
				return fmt.Errorf("%w\n\n%s", err, suggestion)
			}

			cmd.Printf("Restored %s to %s\n", destination, source)
			return nil
		}),
	}

	cmd.Flags().StringVar(&source, "source", "", "original path the file was moved or copied from")
	cmd.Flags().StringVar(&destination, "destination", "", "current path of the file to undo")
	cmd.Flags().StringVar(&fromResult, "from-result", "", "undo every succeeded transfer recorded in a JSON file written by 'filo run --save-result'")

	return cmd
}

func undoFromResultFile(cmd *cobra.Command, commands *command.Commands, path string) error {
	results, err := readResults(path)
	if err != nil {
		return err
	}

	var reqs []command.UndoRequest
	for _, result := range results {
		for _, succeeded := range result.Succeeded {
			if succeeded.DestinationPath == nil {
				continue
			}
			reqs = append(reqs, command.UndoRequest{
				SourcePath:      succeeded.SourcePath,
				DestinationPath: *succeeded.DestinationPath,
			})
		}
	}

	outcomes := commands.UndoAll(reqs)
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			cmd.Printf("  failed: %s: %v\n", outcome.Request.DestinationPath, outcome.Err)
			continue
		}
		cmd.Printf("  restored: %s -> %s\n", outcome.Request.DestinationPath, outcome.Request.SourcePath)
	}

	cmd.Printf("Undo complete: %d succeeded, %d failed\n", len(outcomes)-failed, failed)
	return nil
}

func writeResults(path string, results []engine.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readResults(path string) ([]engine.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file %s: %w", path, err)
	}
	var results []engine.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	return results, nil
}
