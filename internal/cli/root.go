// Package cli implements the chefood command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chefood",
	Short: "Find recipes you can cook with the ingredients you have",
	Long: "Matches the ingredients in your kitchen against a recipe catalog and shows what you can " +
		"cook now, or what you could cook with one or two more ingredients.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: chefood.yaml)")
}
