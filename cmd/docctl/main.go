package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/intriguedcoder/ai-document-generator/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z"
var Version = "0.0.0-dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docctl",
	Short: "Operator tools for the document generator",
	Long: `docctl works directly against the configured content store and model.

Commands:
  export   Render a stored project to docx, pptx or xlsx
  diff     Print the word diff between two text files
  outline  Ask the model for a section outline`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Init("development", level)
		logging.SetOutput(os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(outlineCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
