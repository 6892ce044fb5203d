package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of onair-fancontrol",
	Long:  `All software has versions. This is onair-fancontrol's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("0.3.1")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
