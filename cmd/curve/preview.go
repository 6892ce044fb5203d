package curve

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/CameraRick/onAir-fanControl/cmd/global"
	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/curve"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the configured fan curve to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err = configuration.Validate(); err != nil {
			ui.Fatal(err.Error())
		}

		curveConf := configuration.CurrentConfig.Curve
		fanCurve, err := curve.New(curveConf)
		if err != nil {
			return err
		}

		// print table
		rows := make([][]string, 0, len(curveConf.Points))
		for _, point := range curveConf.Points {
			rows = append(rows, []string{
				fmt.Sprintf("%.1f", point.Temp),
				strconv.Itoa(point.Duty),
			})
		}
		tab := table.Table{
			Headers: []string{"Temp (°C)", "Duty (%)"},
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
		ui.Printfln("Mode: %s", fanCurve.Mode())
		ui.Printfln(buf.String())

		values, err := fanCurve.Sample()
		if err != nil {
			return err
		}

		caption := "Duty (%) / Temp (°C)"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(previewCmd)
}
