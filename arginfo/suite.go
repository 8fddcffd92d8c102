package arginfo

import (
	"context"

	"github.com/achilleasa/clconform/harness"
	"github.com/achilleasa/clconform/opencl/device"
)

// Suite options.
type Options struct {
	// Max arguments per generated kernel; DefaultMaxArgs if zero.
	MaxArgs int

	// Run the pipe suite on devices that support pipes.
	Pipes bool
}

// A named group of argument info cases.
type Suite struct {
	name    string
	maxArgs int

	// Returns a non-empty reason if the suite does not apply to env.
	skip func(env Env) string

	run func(ctx context.Context, v *Verifier, env Env) (Tally, error)
}

// Get the suite name.
func (s *Suite) Name() string {
	return "arginfo/" + s.name
}

// Run the suite on an initialized device.
func (s *Suite) Run(ctx context.Context, dev *device.Device) harness.Result {
	res := harness.Result{Device: dev.Name, Suite: s.Name()}

	env, err := EnvFromDevice(dev, s.maxArgs)
	if err != nil {
		res.Err = err
		return res
	}

	if skipReason := s.skipReason(env); skipReason != "" {
		res.Skipped = skipReason
		return res
	}

	tally, err := s.RunEnv(ctx, DeviceBuilder(dev), env)
	res.Checks, res.Failures, res.Err = tally.Checks, tally.Failures, err
	return res
}

// Run the suite against the supplied builder. Returns an empty tally if
// the suite does not apply to env.
func (s *Suite) RunEnv(ctx context.Context, builder Builder, env Env) (Tally, error) {
	if s.skipReason(env) != "" {
		return Tally{}, nil
	}
	return s.run(ctx, NewVerifier(builder, env.BuildOptions()), env)
}

func (s *Suite) skipReason(env Env) string {
	if s.skip == nil {
		return ""
	}
	return s.skip(env)
}

// Verify a list of cases. An opencl failure counts against the case that
// triggered it and the remaining cases still run.
func verifyCases(ctx context.Context, v *Verifier, cases []Case) (Tally, error) {
	var tally Tally
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		caseTally, err := v.Verify(c)
		tally.Add(caseTally)
		if err != nil {
			tally.Failures++
			logger.Errorf("%v", err)
		}
	}
	return tally, nil
}

func casesSuite(name string, maxArgs int, skip func(Env) string, gen func(Env) []Case) *Suite {
	return &Suite{
		name:    name,
		maxArgs: maxArgs,
		skip:    skip,
		run: func(ctx context.Context, v *Verifier, env Env) (Tally, error) {
			return verifyCases(ctx, v, gen(env))
		},
	}
}

func requireImages(env Env) string {
	if !env.Images {
		return "device does not support images"
	}
	return ""
}

// Scalar and vector arguments in every address space.
func ScalarVectorSuite(opts Options) *Suite {
	return casesSuite("scalar-vector", opts.MaxArgs, nil, ScalarVectorCases)
}

// Image arguments with every access qualifier.
func ImageSuite(opts Options) *Suite {
	return casesSuite("images", opts.MaxArgs, requireImages, ImageCases)
}

// A single sampler argument.
func SamplerSuite(opts Options) *Suite {
	return casesSuite("sampler", opts.MaxArgs, requireImages, SamplerCases)
}

// Pipe arguments of every data type.
func PipeSuite(opts Options) *Suite {
	return casesSuite("pipes", opts.MaxArgs, func(env Env) string {
		if !env.Pipes {
			return "device does not support pipes"
		}
		return ""
	}, PipeCases)
}

// Hand-written programs including one with multiple kernels.
func StaticSuite(opts Options) *Suite {
	return casesSuite("static", opts.MaxArgs, nil, StaticCases)
}

// Argument name size and size-only queries.
func BoundarySuite(opts Options) *Suite {
	return &Suite{
		name:    "boundary",
		maxArgs: opts.MaxArgs,
		run: func(ctx context.Context, v *Verifier, env Env) (Tally, error) {
			tally, err := v.VerifyBoundary(BoundaryCase())
			if err != nil {
				tally.Failures++
				logger.Errorf("%v", err)
			}
			return tally, nil
		},
	}
}

// Get the argument info suites selected by opts.
func Suites(opts Options) []harness.Suite {
	suites := []harness.Suite{
		ScalarVectorSuite(opts),
		ImageSuite(opts),
		SamplerSuite(opts),
		BoundarySuite(opts),
		StaticSuite(opts),
	}
	if opts.Pipes {
		suites = append(suites, PipeSuite(opts))
	}
	return suites
}
