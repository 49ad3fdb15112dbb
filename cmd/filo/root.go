// Package filo wires the cobra command tree — ruleset management, ruleset
// execution, undo, and source-directory listing — onto internal/command's
// host adapter.
package filo

import (
	"github.com/spf13/cobra"

	"github.com/eddybean/filo/internal/command"
	"github.com/eddybean/filo/internal/config"
	"github.com/eddybean/filo/internal/rulesetstore"
)

// NewRootCommand creates the root command for filo.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filo",
		Short: "A rule-driven file organizer",
		Long: `filo organizes files by matching them against user-defined rulesets —
filters on extension, filename, and creation/modification time — then
moving or copying matches into a destination directory, optionally routed
by a filename-derived template.`,
		Version: "1.0.0",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("verbose", false, "Detailed output, including the error code for any failure")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress all output except errors")
	cmd.PersistentFlags().String("config", "", "Config file (default: searches ./.filo.yaml, ~/.config/filo/config.yaml, ...)")

	cmd.AddCommand(newRulesetCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newUndoCommand())
	cmd.AddCommand(newListSourceFilesCommand())

	return cmd
}

// loadCommands resolves the --config flag (falling back to the default
// search paths) and returns a Commands adapter backed by the resulting
// ruleset store path.
func loadCommands(cmd *cobra.Command) (*command.Commands, error) {
	configFile, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadConfigFromFile(configFile)
	} else {
		cfg, err = config.LoadConfigWithFallback(config.GetDefaultConfigPaths())
	}
	if err != nil {
		return nil, err
	}

	storePath := cfg.RulesetStore.Path
	if storePath == "" {
		storePath = rulesetstore.DefaultPath()
	}

	return command.New(storePath), nil
}
