package config

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/achilleasa/clconform/arginfo"
	"github.com/achilleasa/clconform/log"
	"github.com/achilleasa/clconform/mathfunc"
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/pkg/errors"
)

// Device selection settings.
type Devices struct {
	// One of cpu, gpu or all.
	Type string `toml:"type"`

	// Only select devices whose name contains this value.
	Match string `toml:"match"`

	// Skip devices whose name contains any of these values.
	Blacklist []string `toml:"blacklist"`
}

// Argument info suite settings.
type ArgInfo struct {
	Enabled bool `toml:"enabled"`

	// Max arguments per generated kernel.
	MaxArgs int `toml:"max-args"`

	// Run the pipe argument suite.
	Pipes bool `toml:"pipes"`
}

// Math function suite settings.
type Math struct {
	Enabled    bool   `toml:"enabled"`
	Elements   int    `toml:"elements"`
	Iterations int    `toml:"iterations"`
	Seed       uint64 `toml:"seed"`

	// Restrict the run to these functions; all catalog functions if empty.
	Functions []string `toml:"functions"`

	// Restrict the run to these precisions (half, float or double); all
	// the device supports if empty.
	Precisions []string `toml:"precisions"`
}

// The tool configuration.
type Config struct {
	LogLevel string  `toml:"log-level"`
	Devices  Devices `toml:"devices"`
	ArgInfo  ArgInfo `toml:"arginfo"`
	Math     Math    `toml:"math"`
}

// Get the default configuration.
func Defaults() *Config {
	return &Config{
		LogLevel: "notice",
		Devices: Devices{
			Type: "all",
		},
		ArgInfo: ArgInfo{
			Enabled: true,
			MaxArgs: arginfo.DefaultMaxArgs,
		},
		Math: Math{
			Enabled:    true,
			Elements:   mathfunc.DefaultElements,
			Iterations: mathfunc.DefaultIterations,
			Seed:       1,
		},
	}
}

// Load a TOML config file on top of the defaults. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "config: could not parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, errors.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: invalid settings in %s", path)
	}
	return cfg, nil
}

// Check the settings for consistency.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if _, err := c.DeviceType(); err != nil {
		return err
	}

	if c.ArgInfo.MaxArgs < 1 {
		return errors.Errorf("arginfo.max-args must be positive; got %d", c.ArgInfo.MaxArgs)
	}

	if c.Math.Elements < 1 {
		return errors.Errorf("math.elements must be positive; got %d", c.Math.Elements)
	}
	if c.Math.Iterations < 1 {
		return errors.Errorf("math.iterations must be positive; got %d", c.Math.Iterations)
	}
	for _, name := range c.Math.Functions {
		if _, exists := mathfunc.Lookup(name); !exists {
			return errors.Errorf("math.functions: unknown function %q", name)
		}
	}
	if _, err := c.precisions(); err != nil {
		return err
	}

	return nil
}

// Get the parsed device type mask.
func (c *Config) DeviceType() (device.DeviceType, error) {
	return device.ParseDeviceType(c.Devices.Type)
}

// Get the parsed log level.
func (c *Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// Get the argument info suite options.
func (c *Config) ArgInfoOptions() arginfo.Options {
	return arginfo.Options{
		MaxArgs: c.ArgInfo.MaxArgs,
		Pipes:   c.ArgInfo.Pipes,
	}
}

// Get the math runner options.
func (c *Config) MathOptions() mathfunc.Options {
	precisions, _ := c.precisions()
	return mathfunc.Options{
		Elements:   c.Math.Elements,
		Iterations: c.Math.Iterations,
		Seed:       c.Math.Seed,
		Precisions: precisions,
	}
}

func (c *Config) precisions() ([]mathfunc.Precision, error) {
	var precisions []mathfunc.Precision
	for _, name := range c.Math.Precisions {
		p, err := mathfunc.ParsePrecision(name)
		if err != nil {
			return nil, errors.Wrap(err, "math.precisions")
		}
		precisions = append(precisions, p)
	}
	return precisions, nil
}

// Write the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
