package harness

import (
	"context"
	"sync"
	"time"

	"github.com/achilleasa/clconform/log"
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var logger = log.New("harness")

// A group of conformance checks that runs against a single device.
type Suite interface {
	Name() string
	Run(ctx context.Context, dev *device.Device) Result
}

// The outcome of running a suite on a device.
type Result struct {
	Device string
	Suite  string

	Checks   int
	Failures int

	// If set, the suite did not apply to the device.
	Skipped string

	Duration time.Duration

	// Set if the suite could not complete.
	Err error
}

// Return true if the suite reported failures or could not complete.
func (r Result) Failed() bool {
	return r.Failures > 0 || r.Err != nil
}

// Invoked each time a suite completes. Calls are serialized.
type DoneFunc func(Result)

// The device lifecycle Run drives. Suites receive the underlying device.
type target interface {
	Name() string
	Init() error
	Close()
	Device() *device.Device
}

type clTarget struct {
	dev *device.Device
}

func (t clTarget) Name() string           { return t.dev.Name }
func (t clTarget) Init() error            { return t.dev.Init() }
func (t clTarget) Close()                 { t.dev.Close() }
func (t clTarget) Device() *device.Device { return t.dev }

// Run each suite sequentially on every device. Devices are processed in
// parallel; each one is initialized before its first suite runs and closed
// once its last suite completes. A device that fails to initialize gets a
// failed result for every suite and does not affect the other devices.
// Results are returned in device order and then in suite order. An error
// is only returned if ctx is cancelled before all suites complete.
func Run(ctx context.Context, devices []*device.Device, suites []Suite, onDone DoneFunc) ([]Result, error) {
	if len(devices) == 0 {
		return nil, device.ErrNoDevices
	}

	targets := make([]target, len(devices))
	for i, dev := range devices {
		targets[i] = clTarget{dev: dev}
	}
	return runTargets(ctx, targets, suites, onDone)
}

func runTargets(ctx context.Context, targets []target, suites []Suite, onDone DoneFunc) ([]Result, error) {
	var (
		mu            sync.Mutex
		deviceResults = make([][]Result, len(targets))
	)

	record := func(devIndex int, res Result) {
		logResult(res)

		mu.Lock()
		defer mu.Unlock()
		deviceResults[devIndex] = append(deviceResults[devIndex], res)
		if onDone != nil {
			onDone(res)
		}
	}

	var g errgroup.Group
	for devIndex, tgt := range targets {
		g.Go(func() error {
			if err := tgt.Init(); err != nil {
				err = errors.Wrapf(err, "harness: initializing device %s", tgt.Name())
				for _, suite := range suites {
					record(devIndex, Result{Device: tgt.Name(), Suite: suite.Name(), Err: err})
				}
				return nil
			}
			defer tgt.Close()

			dev := tgt.Device()
			logger.Noticef("running %d suite(s) on %s (OpenCL %s, %s)", len(suites), tgt.Name(), dev.Version(), dev.Profile())
			for _, suite := range suites {
				if err := ctx.Err(); err != nil {
					return err
				}

				tick := time.Now()
				res := suite.Run(ctx, dev)
				res.Device = tgt.Name()
				res.Suite = suite.Name()
				res.Duration = time.Since(tick)
				record(devIndex, res)
			}
			return nil
		})
	}

	err := g.Wait()

	var results []Result
	for _, list := range deviceResults {
		results = append(results, list...)
	}
	return results, err
}

func logResult(res Result) {
	switch {
	case res.Skipped != "":
		logger.Infof("[%s] %s: skipped (%s)", res.Device, res.Suite, res.Skipped)
	case res.Err != nil:
		logger.Errorf("[%s] %s: %v", res.Device, res.Suite, res.Err)
	case res.Failures > 0:
		logger.Errorf("[%s] %s: %d of %d check(s) failed", res.Device, res.Suite, res.Failures, res.Checks)
	default:
		logger.Infof("[%s] %s: all %d check(s) passed in %s", res.Device, res.Suite, res.Checks, res.Duration)
	}
}
