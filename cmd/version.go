package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LaliPerez/registro-asistencia/internal/platform/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the configured version",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "registro-asistencia %s (%s)\n", cfg.Version, cfg.Mode)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
