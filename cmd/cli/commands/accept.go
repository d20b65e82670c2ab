package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AcceptCmd creates the accept command
func AcceptCmd(app *AppContext) *cobra.Command {
	var processedBy string

	cmd := &cobra.Command{
		Use:   "accept <suggestion_id>",
		Short: "Accept a pending suggestion, creating the assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignment, err := app.Service.AcceptSuggestion(app.Ctx, args[0], processedBy)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Assignment created!\n\n")
			fmt.Printf("Assignment ID: %s\n", assignment.ID)
			fmt.Printf("Game:          %s\n", assignment.GameID)
			fmt.Printf("Referee:       %s\n", assignment.RefereeID)
			fmt.Printf("Position:      %s\n", assignment.Position)
			fmt.Printf("Wage:          $%.2f\n\n", assignment.CalculatedWage)

			return nil
		},
	}

	cmd.Flags().StringVar(&processedBy, "by", "", "User id recorded as the processor")

	return cmd
}
