package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/clconform/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	deviceFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "type, t",
			Value: "all",
			Usage: "opencl device type to test (cpu, gpu or all)",
		},
		cli.StringFlag{
			Name:  "device, d",
			Usage: "only test devices whose names contain this value",
		},
		cli.StringSliceFlag{
			Name:  "blacklist, b",
			Value: &cli.StringSlice{},
			Usage: "blacklist opencl device whose names contain this value",
		},
	}

	argInfoFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "max-args",
			Value: 128,
			Usage: "max number of arguments per generated kernel",
		},
		cli.BoolFlag{
			Name:  "pipes",
			Usage: "also test pipe arguments on devices that support them",
		},
	}

	mathFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "elements, n",
			Value: 1 << 14,
			Usage: "number of inputs per kernel execution",
		},
		cli.IntFlag{
			Name:  "iterations, i",
			Value: 1,
			Usage: "kernel executions per function and precision",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "seed for the input generator",
		},
		cli.StringSliceFlag{
			Name:  "func, f",
			Value: &cli.StringSlice{},
			Usage: "only test the named math function",
		},
		cli.StringSliceFlag{
			Name:  "precision, p",
			Value: &cli.StringSlice{},
			Usage: "only test this precision (half, float or double)",
		},
	}

	app := cli.NewApp()
	app.Name = "clconform"
	app.Usage = "check opencl runtimes for conformance"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a TOML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
		{
			Name:  "arginfo",
			Usage: "check the kernel argument metadata reported by the runtime",
			Description: `
Generate kernels covering every combination of address space, access and type
qualifier for the scalar, vector, image, sampler and pipe argument types, build
them with -cl-kernel-arg-info and compare the metadata reported by
clGetKernelArgInfo against the declarations.`,
			Flags:  append(append([]cli.Flag{}, deviceFlags...), argInfoFlags...),
			Action: cmd.RunArgInfo,
		},
		{
			Name:  "math",
			Usage: "check the accuracy of the floating point math builtins",
			Description: `
Evaluate the math builtins on random inputs and special values and compare the
device results against a host reference within the ulp bounds of each function.`,
			Flags:  append(append([]cli.Flag{}, deviceFlags...), mathFlags...),
			Action: cmd.RunMath,
		},
		{
			Name:   "run",
			Usage:  "run every enabled suite",
			Flags:  append(append(append([]cli.Flag{}, deviceFlags...), argInfoFlags...), mathFlags...),
			Action: cmd.RunAll,
		},
		{
			Name:   "dump-config",
			Usage:  "print the effective configuration as TOML",
			Action: cmd.DumpConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}
