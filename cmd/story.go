package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagIndex int

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Narrate the full story for one of a coordinate's seeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		quietLogs()

		journey, err := buildJourney(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		resp, err := journey.ProcessLocation(cmd.Context(), flagLat, flagLng, nil, nil)
		if err != nil {
			return err
		}
		if flagIndex < 0 || flagIndex >= len(resp.Seeds) {
			return fmt.Errorf("--index %d out of range: %d seed(s) available", flagIndex, len(resp.Seeds))
		}

		story, err := journey.GetFullStory(cmd.Context(), resp.Seeds[flagIndex].ID)
		if err != nil {
			return err
		}
		renderStory(cmd.OutOrStdout(), story)
		return nil
	},
}

func init() {
	addCoordinateFlags(storyCmd)
	storyCmd.Flags().IntVar(&flagIndex, "index", 0, "which seed to narrate (0-based)")
	rootCmd.AddCommand(storyCmd)
}
