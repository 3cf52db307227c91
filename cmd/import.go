package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aamirsahmad/media-importer/internal"
)

var (
	sourceFlag      string
	videoSourceFlag string
	dryRunFlag      bool
	verboseFlag     bool
	useExifTool     bool
)

var importCmd = &cobra.Command{
	Use:   "import [destination]",
	Short: "Import media from an SD card into a date-organized tree",
	Long: `Copy photos and videos from an SD card (or any folder) into a destination
tree organized as YEAR/MONTH/DAY/{pictures,videos}, skipping files already
present at the destination. Without --source the SD card is auto-detected
from the platform's usual mount points.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destination := args[0]

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}

		source := sourceFlag
		videoSource := videoSourceFlag
		if source == "" {
			fmt.Println("Searching for SD card...")
			card := internal.FindSDCard()
			if card.DCIM == "" {
				color.Red("Error: Could not find SD card DCIM folder.")
				fmt.Println("Please specify source manually with --source")
				fmt.Println("\nCommon locations:")
				fmt.Println("  Photos: /Volumes/YOUR_SD_CARD/DCIM")
				fmt.Println("  Videos: /Volumes/YOUR_SD_CARD/PRIVATE/M4ROOT/CLIP")
				fmt.Println("  Linux:  /media/$USER/YOUR_SD_CARD/...")
				return fmt.Errorf("no SD card found")
			}
			source = card.DCIM
			if videoSource == "" {
				videoSource = card.Clip
			}
		}

		logger, err := internal.NewLogger("media-importer.log")
		if err != nil {
			return err
		}
		defer logger.Close()

		resolver, err := internal.NewDateResolver(useExifTool || conf.UseExifTool)
		if err != nil {
			color.Yellow("Warning: %v", err)
		}
		defer resolver.Close()

		reporter := internal.NewReporter(verboseFlag)
		importer := internal.NewImporter(source, videoSource, destination, dryRunFlag,
			conf, resolver, reporter, logger)

		if err := importer.Run(); err != nil {
			color.New(color.FgRed, color.Bold).Println("\n✗ Import failed!")
			return err
		}
		color.New(color.FgGreen, color.Bold).Println("\n✓ Import completed successfully!")
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source directory for photos (DCIM folder); auto-detected when omitted")
	importCmd.Flags().StringVar(&videoSourceFlag, "video-source", "", "Source directory for videos (PRIVATE/M4ROOT/CLIP)")
	importCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Show what would be copied without actually copying")
	importCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	importCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Force use of the exiftool binary for metadata")

	rootCmd.AddCommand(importCmd)
}
