package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/achilleasa/clconform/arginfo"
	"github.com/achilleasa/clconform/config"
	"github.com/achilleasa/clconform/harness"
	"github.com/achilleasa/clconform/mathfunc"
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli"
)

// Run the kernel argument info suites.
func RunArgInfo(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return runSuites(cfg, arginfo.Suites(cfg.ArgInfoOptions()))
}

// Run the math function suites.
func RunMath(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	suites, err := mathfunc.Suites(cfg.MathOptions(), cfg.Math.Functions...)
	if err != nil {
		return err
	}
	return runSuites(cfg, suites)
}

// Run every enabled suite.
func RunAll(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	var suites []harness.Suite
	if cfg.ArgInfo.Enabled {
		suites = append(suites, arginfo.Suites(cfg.ArgInfoOptions())...)
	}
	if cfg.Math.Enabled {
		mathSuites, err := mathfunc.Suites(cfg.MathOptions(), cfg.Math.Functions...)
		if err != nil {
			return err
		}
		suites = append(suites, mathSuites...)
	}
	if len(suites) == 0 {
		return errors.New("all suites are disabled by the configuration")
	}

	return runSuites(cfg, suites)
}

func runSuites(cfg *config.Config, suites []harness.Suite) error {
	devType, err := cfg.DeviceType()
	if err != nil {
		return err
	}

	devices, err := device.SelectDevices(devType, cfg.Devices.Match, cfg.Devices.Blacklist...)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return device.ErrNoDevices
	}

	logger.Noticef("running %d suite(s) on %d device(s)", len(suites), len(devices))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := progressbar.NewOptions(
		len(suites)*len(devices),
		progressbar.OptionSetDescription("suites"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	results, err := harness.Run(runCtx, devices, suites, func(res harness.Result) {
		bar.Describe(res.Suite)
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	displayResults(results)
	summary := harness.Summarize(results)
	displaySummary(summary)

	if err != nil {
		return err
	}
	if !summary.OK() {
		return cli.NewExitError("conformance failures detected", 1)
	}
	return nil
}
