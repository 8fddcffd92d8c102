package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/achilleasa/clconform/arginfo"
	"github.com/achilleasa/clconform/log"
	"github.com/achilleasa/clconform/mathfunc"
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clconform.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	devType, err := cfg.DeviceType()
	require.NoError(t, err)
	assert.Equal(t, device.AllDevices, devType)
	assert.Equal(t, log.Notice, cfg.Level())
	assert.Equal(t, arginfo.Options{MaxArgs: arginfo.DefaultMaxArgs}, cfg.ArgInfoOptions())
	assert.Equal(t, mathfunc.DefaultElements, cfg.MathOptions().Elements)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log-level = "debug"

[devices]
type = "gpu"
blacklist = ["Iris", "llvmpipe"]

[arginfo]
max-args = 64
pipes = true

[math]
elements = 4096
seed = 99
functions = ["fma", "ceil"]
precisions = ["float", "double"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, log.Debug, cfg.Level())
	devType, err := cfg.DeviceType()
	require.NoError(t, err)
	assert.Equal(t, device.GpuDevice, devType)
	assert.Equal(t, []string{"Iris", "llvmpipe"}, cfg.Devices.Blacklist)

	assert.Equal(t, arginfo.Options{MaxArgs: 64, Pipes: true}, cfg.ArgInfoOptions())
	assert.True(t, cfg.ArgInfo.Enabled, "unset keys keep their defaults")

	assert.Equal(t, mathfunc.Options{
		Elements:   4096,
		Iterations: mathfunc.DefaultIterations,
		Seed:       99,
		Precisions: []mathfunc.Precision{mathfunc.Single, mathfunc.Double},
	}, cfg.MathOptions())
	assert.Equal(t, []string{"fma", "ceil"}, cfg.Math.Functions)
}

func TestLoadErrors(t *testing.T) {
	specs := []struct {
		descr string
		data  string
	}{
		{"syntax", `log-level = `},
		{"unknown key", "[math]\nthreads = 4\n"},
		{"bad level", `log-level = "loud"`},
		{"bad device type", "[devices]\ntype = \"fpga\"\n"},
		{"bad max args", "[arginfo]\nmax-args = 0\n"},
		{"bad elements", "[math]\nelements = -1\n"},
		{"bad iterations", "[math]\niterations = 0\n"},
		{"unknown function", "[math]\nfunctions = [\"sin\"]\n"},
		{"unknown precision", "[math]\nprecisions = [\"quad\"]\n"},
	}

	for specIndex, spec := range specs {
		_, err := Load(writeConfig(t, spec.data))
		assert.Error(t, err, "spec %d: %s", specIndex, spec.descr)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Defaults().Write(&buf))

	out := buf.String()
	assert.Contains(t, out, `log-level = "notice"`)
	assert.Contains(t, out, "[arginfo]")
	assert.Contains(t, out, "max-args = 128")
	assert.Contains(t, out, "[math]")

	// The dumped defaults load back unchanged
	cfg, err := Load(writeConfig(t, out))
	require.NoError(t, err)
	assert.Equal(t, Defaults().MathOptions(), cfg.MathOptions())
}
