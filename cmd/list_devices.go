package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/achilleasa/clconform/log"
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List available opencl devices.
func ListDevices(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	platforms, err := device.GetPlatformInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("\nSystem provides %d opencl platform(s)\n\n", len(platforms)))

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Platform", "Device", "Type", "Version", "Profile", "FP16", "FP64", "Speed"})
	for pIdx, platformInfo := range platforms {
		for _, dev := range platformInfo.Devices {
			table.Append([]string{
				fmt.Sprintf("%02d %s", pIdx, platformInfo.Name),
				dev.Name,
				dev.Type.String(),
				dev.Version().String(),
				dev.Profile(),
				fmt.Sprintf("%t", dev.SupportsHalf()),
				fmt.Sprintf("%t", dev.SupportsDouble()),
				fmt.Sprintf("%d GFlops", dev.Speed),
			})
		}
	}
	table.Render()

	if cfg.Level() <= log.Info || ctx.GlobalBool("v") || ctx.GlobalBool("vv") {
		for _, platformInfo := range platforms {
			buf.WriteString("\n" + platformInfo.String())
			for _, dev := range platformInfo.Devices {
				buf.WriteString(fmt.Sprintf("%s extensions:\n  %s\n", dev.Name, strings.Join(dev.Extensions(), "\n  ")))
			}
		}
	}

	logger.Notice(buf.String())
	return nil
}
