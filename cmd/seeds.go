package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagLat float64
	flagLng float64
)

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "List story seeds for a coordinate",
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
		renderSeeds(cmd.OutOrStdout(), resp)
		return nil
	},
}

func addCoordinateFlags(c *cobra.Command) {
	c.Flags().Float64Var(&flagLat, "lat", 0, "latitude in degrees")
	c.Flags().Float64Var(&flagLng, "lng", 0, "longitude in degrees")
	c.MarkFlagRequired("lat")
	c.MarkFlagRequired("lng")
}

func init() {
	addCoordinateFlags(seedsCmd)
	rootCmd.AddCommand(seedsCmd)
}
