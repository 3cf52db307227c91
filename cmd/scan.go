package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aamirsahmad/media-importer/internal"
)

var scanFormatFlag string

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Summarize the media on a card before importing",
	Long: `Scan a folder for photos and videos and print an inventory: file and byte
counts per kind, per-extension counts, and the capture-date span. Nothing is
copied or modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
		}

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}

		resolver, err := internal.NewDateResolver(conf.UseExifTool)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		defer resolver.Close()

		inv, err := internal.BuildInventory(folder, conf, resolver)
		if err != nil {
			return err
		}
		return internal.DisplayInventory(inv, scanFormatFlag, os.Stdout)
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanFormatFlag, "format", "table", "Output format: table, json")

	rootCmd.AddCommand(scanCmd)
}
