package device

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "device",
	Short: "Storage device related commands",
}
