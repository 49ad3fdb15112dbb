package filo

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eddybean/filo/internal/cli"
	"github.com/eddybean/filo/internal/engine"
	"github.com/eddybean/filo/internal/progress"
)

func newRunCommand() *cobra.Command {
	var (
		all          bool
		saveResult   string
		progressJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run [ruleset-id]",
		Short: "Execute one ruleset, or every enabled ruleset with --all",
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("pass exactly one of a ruleset id or --all")
			}

			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}

			quiet, _ := cmd.Flags().GetBool("quiet")
			reporterFormat := "human"
			if progressJSON {
				reporterFormat = "json"
			}
			if quiet {
				reporterFormat = "silent"
			}
			reporter := progress.NewReporter(progress.Options{Format: reporterFormat, Writer: cmd.OutOrStdout()})

			cancel := &engine.AtomicFlag{}
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)
			go func() {
				if _, ok := <-sigChan; ok {
					cmd.PrintErrln("\nCancelling after the current file finishes...")
					cancel.Cancel()
				}
			}()

			onProgress := progress.Adapter(reporter)

			var results []engine.Result
			if all {
				results, err = commands.ExecuteAll(onProgress, cancel)
			} else {
				var result engine.Result
				result, err = commands.ExecuteRuleset(args[0], onProgress, cancel)
				results = []engine.Result{result}
			}
			if err != nil {
				return err
			}

			for _, result := range results {
				printResultSummary(cmd, result)
			}

			if saveResult != "" {
				if err := writeResults(saveResult, results); err != nil {
					return fmt.Errorf("saving result for later undo: %w", err)
				}
			}

			return nil
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "run every enabled ruleset, in persisted order")
	cmd.Flags().StringVar(&saveResult, "save-result", "", "write the execution result as JSON to this path, for a later 'filo undo'")
	cmd.Flags().BoolVar(&progressJSON, "progress-json", false, "emit progress as newline-delimited JSON instead of a terminal bar")

	return cmd
}

func printResultSummary(cmd *cobra.Command, result engine.Result) {
	cmd.Printf("\n%s (%s): %s\n", result.RulesetName, result.Action, result.Status)
	cmd.Printf("  succeeded: %d, skipped: %d, errors: %d\n",
		len(result.Succeeded), len(result.Skipped), len(result.Errors))

	for _, e := range result.Errors {
		reason := ""
		if e.Reason != nil {
			reason = *e.Reason
		}
		cmd.Printf("  error: %s: %s\n", e.Filename, reason)
	}
}
