package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batben/batben/pkg/powerinfo"
	"github.com/batben/batben/pkg/sleep"
	"github.com/batben/batben/pkg/workload"
)

func TestNewFileDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: new(string)},
		{name: "whitespace", content: func() *string { s := "  \n\t"; return &s }()},
		{name: "empty object", content: func() *string { s := "{}"; return &s }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "batben.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			f, err := NewFile(path)
			require.NoError(t, err)

			assert.Equal(t, 60*time.Second, f.Duration())
			assert.Equal(t, powerinfo.ReaderSysfs, f.Reader())
			assert.Equal(t, powerinfo.DefaultUPowerDevice, f.UPowerDevice())
			assert.Equal(t, sleep.MethodRTCWake, f.SleepMethod())
			assert.Equal(t, "freeze", f.SleepMode())
			assert.Equal(t, workload.NameQuick, f.Workload())
			assert.Equal(t, workload.DefaultParams(), f.WorkloadParams())
		})
	}
}

func TestNewFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batben.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "durationSeconds": 600,
  "reader": "upower-cli",
  "sleepMethod": "logind",
  "workload": "dev",
  "memorySizeMB": 16,
  "netRate": 2.5,
  "devNetwork": true
}`), 0644))

	f, err := NewFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, f.Duration())
	assert.Equal(t, powerinfo.ReaderUPowerCLI, f.Reader())
	assert.Equal(t, sleep.MethodLogind, f.SleepMethod())
	assert.Equal(t, workload.NameDev, f.Workload())

	p := f.WorkloadParams()
	assert.Equal(t, 16, p.MemorySizeMB)
	assert.Equal(t, 2.5, p.NetRate)
	assert.True(t, p.DevNetwork)
	assert.Equal(t, workload.DefaultParams().CPUPrimeLimit, p.CPUPrimeLimit)
}

func TestNewFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batben.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"durationSeconds": "a minute"}`), 0644))

	_, err := NewFile(path)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batben.json")

	f := NewFileFromConfig(DefaultRawFileConfig(), path)
	require.NoError(t, f.Save())

	loaded, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Raw(), loaded.Raw())
	assert.Equal(t, DefaultRawFileConfig(), loaded.Raw())
}

func TestLogrusFields(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	fields := f.LogrusFields()
	assert.Equal(t, powerinfo.ReaderSysfs, fields["reader"])
	assert.Equal(t, 60*time.Second, fields["duration"])
}
