package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sportsync/refassign/pkg/core/suggest"
)

// SuggestCmd creates the suggest command
func SuggestCmd(app *AppContext) *cobra.Command {
	var (
		all          bool
		createdBy    string
		proximity    float64
		availability float64
		experience   float64
		performance  float64
	)

	cmd := &cobra.Command{
		Use:   "suggest [game_id...]",
		Short: "Generate ranked referee suggestions for games",
		Long: `Generates ranked referee suggestions for the given games (or all
unassigned games with --all), persists them, and prints each suggestion with
its confidence, component scores and reasoning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gameIDs := args
			if all {
				games, err := app.Database.GetUnassignedGames(app.Ctx)
				if err != nil {
					return fmt.Errorf("failed to list unassigned games: %w", err)
				}
				for _, g := range games {
					gameIDs = append(gameIDs, g.ID)
				}
			}
			if len(gameIDs) == 0 {
				return fmt.Errorf("no games given; pass game ids or --all")
			}

			var overrides *suggest.Weights
			if cmd.Flags().Changed("proximity") || cmd.Flags().Changed("availability") ||
				cmd.Flags().Changed("experience") || cmd.Flags().Changed("performance") {
				overrides = &suggest.Weights{
					Proximity:    proximity,
					Availability: availability,
					Experience:   experience,
					Performance:  performance,
				}
			}

			suggestions, err := app.Service.GenerateSuggestions(app.Ctx, gameIDs, overrides, createdBy)
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Println("No suggestions generated.")
				return nil
			}

			fmt.Printf("\n✓ Generated %d suggestions\n", len(suggestions))
			currentGame := ""
			for _, s := range suggestions {
				if s.GameID != currentGame {
					currentGame = s.GameID
					fmt.Printf("\nGame %s (%s):\n", s.GameID, s.Position)
				}
				fmt.Printf("  %.2f  referee %s  [%s]\n", s.Confidence, s.RefereeID, s.ID)
				fmt.Printf("        %s\n", s.Reasoning)
				if len(s.Warnings) > 0 {
					fmt.Printf("        warnings: %s\n", strings.Join(s.Warnings, "; "))
				}
			}
			fmt.Println()

			return nil
		},
	}

	defaults := suggest.DefaultWeights()
	cmd.Flags().BoolVar(&all, "all", false, "Generate for every unassigned game")
	cmd.Flags().StringVar(&createdBy, "by", "", "User id recorded as the suggestion creator")
	cmd.Flags().Float64Var(&proximity, "proximity", defaults.Proximity, "Proximity weight (0-1)")
	cmd.Flags().Float64Var(&availability, "availability", defaults.Availability, "Availability weight (0-1)")
	cmd.Flags().Float64Var(&experience, "experience", defaults.Experience, "Experience weight (0-1)")
	cmd.Flags().Float64Var(&performance, "performance", defaults.Performance, "Performance weight (0-1)")

	return cmd
}
