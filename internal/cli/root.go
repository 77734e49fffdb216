package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hearth",
	Short: "Shared ephemeral state for the house",
	Long:  "Hearth is the small server behind the house. It keeps what visitors leave for each other (seeds, echoes, footprints) and forgets all of it when it stops.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pulseCmd)
	rootCmd.AddCommand(echoesCmd)
	rootCmd.AddCommand(plantCmd)
}
