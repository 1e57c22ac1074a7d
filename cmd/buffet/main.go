package main

import (
	"os"

	"buffet/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "buffet",
		Short:        "Buffet quantities and weekly meal planning",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to configuration file")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(seedCmd(&configFile))
	rootCmd.AddCommand(buffetCmd(&configFile))
	rootCmd.AddCommand(weekCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
