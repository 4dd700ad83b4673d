package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LaliPerez/registro-asistencia/internal/platform/config"
)

var rootCmd = &cobra.Command{
	Use:   "registro-asistencia",
	Short: "Training attendance sheet with signature capture",
	Long: `registro-asistencia serves a single screen where attendees of a
training session enter their details and sign. The collected sheet can be
downloaded as a PDF.`,
	SilenceUsage: true,
}

// Execute is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "path to the YAML config file")
}

// GetRootCmd is used by tests.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
