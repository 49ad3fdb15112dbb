package filo

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddybean/filo/internal/cli"
	"github.com/eddybean/filo/internal/ruleset"
	"github.com/eddybean/filo/internal/validation"
)

func newRulesetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ruleset",
		Short: "Manage rulesets",
	}

	cmd.AddCommand(newRulesetListCommand())
	cmd.AddCommand(newRulesetAddCommand())
	cmd.AddCommand(newRulesetDeleteCommand())
	cmd.AddCommand(newRulesetReorderCommand())
	cmd.AddCommand(newRulesetImportCommand())
	cmd.AddCommand(newRulesetExportCommand())

	return cmd
}

func newRulesetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rulesets in persisted order",
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}

			rulesets, err := commands.GetRulesets()
			if err != nil {
				return err
			}

			if len(rulesets) == 0 {
				cmd.Println("No rulesets configured.")
				return nil
			}

			for i, r := range rulesets {
				status := "enabled"
				if !r.Enabled {
					status = "disabled"
				}
				cmd.Printf("%d. [%s] %s (%s)\n   id: %s\n   %s -> %s\n",
					i+1, status, r.Name, r.Action, r.ID, r.SourceDir, r.DestinationDir)
			}
			return nil
		}),
	}
}

func newRulesetAddCommand() *cobra.Command {
	var (
		id              string
		name            string
		sourceDir       string
		destinationDir  string
		action          string
		overwrite       bool
		enabled         bool
		extensions      []string
		filenamePattern string
		matchType       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update a ruleset (pass --id to update an existing one)",
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}

			r := ruleset.Ruleset{
				ID:             id,
				Name:           name,
				Enabled:        enabled,
				SourceDir:      sourceDir,
				DestinationDir: destinationDir,
				Action:         ruleset.Action(action),
				Overwrite:      overwrite,
				Filters: ruleset.Filters{
					Extensions: extensions,
				},
			}

			if filenamePattern != "" {
				r.Filters.Filename = &ruleset.FilenameFilter{
					Pattern:   filenamePattern,
					MatchType: ruleset.MatchType(matchType),
				}
			}

			newID, err := commands.SaveRuleset(r)
			if err != nil {
				suggestion := cli.CommonErrorSuggestions{}.ForRulesetOperation("filters")
				return fmt.Errorf("%w\n\n%s", err, suggestion)
			}

			cmd.Printf("Saved ruleset %q (id: %s)\n", r.Name, newID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "id of an existing ruleset to update")
	cmd.Flags().StringVar(&name, "name", "", "ruleset name")
	cmd.Flags().StringVar(&sourceDir, "source", "", "source directory to scan")
	cmd.Flags().StringVar(&destinationDir, "destination", "", "destination directory (may contain {name} template tokens)")
	cmd.Flags().StringVar(&action, "action", "move", "move or copy")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files at the destination")
	cmd.Flags().BoolVar(&enabled, "enabled", true, "whether this ruleset runs as part of 'filo run --all'")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "match files with one of these extensions (case-insensitive)")
	cmd.Flags().StringVar(&filenamePattern, "filename", "", "glob or regex pattern to match the filename")
	cmd.Flags().StringVar(&matchType, "match-type", "glob", "glob or regex, interpretation of --filename")

	return cmd
}

func newRulesetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ruleset by id",
		Args:  cobra.ExactArgs(1),
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}
			if err := commands.DeleteRuleset(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted ruleset %s\n", args[0])
			return nil
		}),
	}
}

func newRulesetReorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id> [id...]",
		Short: "Rewrite the persisted ruleset order to match the given ids",
		Args:  cobra.MinimumNArgs(1),
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}
			if err := commands.ReorderRulesets(args); err != nil {
				return err
			}
			cmd.Println("Reordered rulesets.")
			return nil
		}),
	}
}

func newRulesetImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load rulesets from a YAML file without modifying the current store",
		Args:  cobra.ExactArgs(1),
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}
			rulesets, err := commands.ImportRulesets(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%d ruleset(s) found in %s. Use 'filo ruleset add' to adopt them.\n", len(rulesets), args[0])
			return nil
		}),
	}
}

func newRulesetExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current rulesets to a YAML file",
		Args:  cobra.ExactArgs(1),
		Run: cli.WithErrorHandling(func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateYAMLExtension(args[0]); err != nil {
				return err
			}
			commands, err := loadCommands(cmd)
			if err != nil {
				return err
			}
			if err := commands.ExportRulesets(args[0]); err != nil {
				return err
			}
			cmd.Printf("Exported rulesets to %s\n", args[0])
			return nil
		}),
	}
}
