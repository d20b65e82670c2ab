package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckCmd creates the check command
func CheckCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <game_id> <referee_id>",
		Short: "Check scheduling conflicts for a (game, referee) pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Service.CheckConflicts(app.Ctx, args[0], args[1])
			if err != nil {
				return err
			}

			if result.HasConflict {
				fmt.Printf("\n✗ Hard conflicts found:\n")
				for _, c := range result.Conflicts {
					fmt.Printf("  - %s\n", c)
				}
			} else {
				fmt.Printf("\n✓ No hard conflicts\n")
			}

			if len(result.Warnings) > 0 {
				fmt.Printf("\nWarnings:\n")
				for _, w := range result.Warnings {
					fmt.Printf("  - %s\n", w)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
