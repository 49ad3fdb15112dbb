package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/eddybean/filo/internal/errors"
)

// HandleError processes errors consistently across all commands
func HandleError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	errorHandler := errors.NewErrorHandler(verbose, quiet)

	errorMessage := errorHandler.Handle(err)

	cmd.PrintErrln(errorMessage)

	os.Exit(errors.ExitCode(err))
}

// WithErrorHandling wraps a command function with consistent error handling
func WithErrorHandling(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := fn(cmd, args); err != nil {
			HandleError(cmd, err)
		}
	}
}

// CommonErrorSuggestions provides suggestions for common error scenarios
type CommonErrorSuggestions struct{}

// ForRulesetOperation suggests solutions for ruleset validation errors
func (s CommonErrorSuggestions) ForRulesetOperation(field string) string {
	switch field {
	case "source_dir", "destination_dir":
		return "Provide a non-empty path. Use --source/--destination or update the ruleset with 'filo ruleset add --id <id>'."
	case "filters":
		return "A ruleset needs at least one filter: --ext or --filename."
	case "destination_dir_template":
		return "A destination_dir containing {name} tokens requires a filename filter with match_type=regex carrying a matching named capture group."
	default:
		return "Use --help to see available options, or --verbose for more detailed output."
	}
}

// ForTransferOperation suggests solutions for transfer failures
func (s CommonErrorSuggestions) ForTransferOperation(operation, file string, err error) string {
	switch operation {
	case "move", "copy":
		return "Ensure the destination path is writable and has enough free space. Use --overwrite to replace existing files at the destination."
	case "undo":
		return "Undo requires the file to still be at its recorded destination and nothing at its original source path."
	default:
		return "Use --help to see available options, or --verbose for more detailed output."
	}
}

// ForConfigOperation suggests solutions for configuration errors
func (s CommonErrorSuggestions) ForConfigOperation(configFile string) string {
	return "Check YAML syntax, ensure required fields are present, and verify file permissions. " +
		"Run 'filo ruleset list' to confirm the rulesets file at " + configFile + " parses correctly."
}
