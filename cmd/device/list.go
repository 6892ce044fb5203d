package device

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/CameraRick/onAir-fanControl/cmd/global"
	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current state of all monitored devices",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err = configuration.Validate(); err != nil {
			ui.Fatal(err.Error())
		}

		config := configuration.CurrentConfig
		prober := telemetry.NewSmartctlProber(config.Telemetry.SmartctlBinary, config.Telemetry.ProbeTimeout)
		snapshots := telemetry.NewFileSnapshot(config.Telemetry.SnapshotPath)
		collector := telemetry.NewCollector(prober, snapshots)

		readings := collector.Collect(context.Background(), config.Telemetry.Devices)
		sort.Slice(readings, func(i, j int) bool {
			return readings[i].Device < readings[j].Device
		})

		rows := make([][]string, 0, len(readings))
		for _, reading := range readings {
			temp := "-"
			if reading.HasTemperature() {
				temp = fmt.Sprintf("%.1f", *reading.Temperature)
			}
			rows = append(rows, []string{
				reading.Device,
				string(reading.Media),
				string(reading.PowerState),
				temp,
				string(reading.Source),
			})
		}

		tab := table.Table{
			Headers: []string{"Device", "Media", "State", "Temp (°C)", "Source"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
