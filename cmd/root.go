package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden from the embedded VERSION file at startup.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "media-importer",
	Short:   "Import and organize photos and videos from a camera SD card by date",
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion re-applies Version to the root command after it was updated
// from the embedded VERSION file.
func ApplyVersion() {
	rootCmd.Version = Version
}
