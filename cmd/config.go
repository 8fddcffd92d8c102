package cmd

import (
	"os"

	"github.com/achilleasa/clconform/config"
	"github.com/urfave/cli"
)

// Load the configuration file passed with --config, or the defaults, and
// apply any command line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Defaults()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet("type") {
		cfg.Devices.Type = ctx.String("type")
	}
	if ctx.IsSet("device") {
		cfg.Devices.Match = ctx.String("device")
	}
	if blacklist := ctx.StringSlice("blacklist"); len(blacklist) != 0 {
		cfg.Devices.Blacklist = append(cfg.Devices.Blacklist, blacklist...)
	}

	if ctx.IsSet("max-args") {
		cfg.ArgInfo.MaxArgs = ctx.Int("max-args")
	}
	if ctx.IsSet("pipes") {
		cfg.ArgInfo.Pipes = ctx.Bool("pipes")
	}

	if ctx.IsSet("elements") {
		cfg.Math.Elements = ctx.Int("elements")
	}
	if ctx.IsSet("iterations") {
		cfg.Math.Iterations = ctx.Int("iterations")
	}
	if ctx.IsSet("seed") {
		cfg.Math.Seed = ctx.Uint64("seed")
	}
	if funcs := ctx.StringSlice("func"); len(funcs) != 0 {
		cfg.Math.Functions = funcs
	}
	if precisions := ctx.StringSlice("precision"); len(precisions) != 0 {
		cfg.Math.Precisions = precisions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setupLogging(ctx, cfg.Level())
	return cfg, nil
}

// Print the effective configuration.
func DumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.Write(os.Stdout)
}
