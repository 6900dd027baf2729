package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mehranjafarii/heat-simulation-fdm/calculator"
)

var rootCmd = &cobra.Command{
	Use:   "heatsim",
	Short: "Steady 2D heat conduction: four-node FDM solve plus RBF field reconstruction",
	Long: `
Solves the four-node finite-difference model of a plate heated from the top
and bottom, then reconstructs a smooth temperature field through the node
temperatures with Gaussian radial basis functions.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", calculator.DefaultConfigPath, "ini file with solver, limits and server settings")
}

func loadConfig(cmd *cobra.Command) (calculator.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return calculator.Config{}, err
	}
	cfg := calculator.LoadConfig(path)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return calculator.Config{}, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	return cfg, nil
}
