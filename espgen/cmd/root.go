// Package cmd provides the command-line interface for the ESP
// configuration generator.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "espgen",
	Short: "espgen resolves a declarative ESP tile topology into a " +
		"concrete SoC configuration.",
	Long: `espgen resolves a declarative ESP tile topology into a ` +
		`concrete SoC configuration: component identifiers, bus indices, ` +
		`address maps, interrupt lines, and bring-up orderings.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
