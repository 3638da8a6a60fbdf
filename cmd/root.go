package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"location-stories/config"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "location-stories",
	Short: "Narrated stories about the places around a coordinate",
	Long: "location-stories discovers points of interest near a location, offers short story " +
		"seeds about them and narrates a full story for any seed on demand.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $XDG_CONFIG_HOME/location-stories/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show service logs for one-shot commands")
}

func Execute() error {
	return rootCmd.Execute()
}

// quietLogs silences service logging for one-shot commands unless --verbose is set
func quietLogs() {
	if !verbose {
		log.SetOutput(io.Discard)
	}
}
