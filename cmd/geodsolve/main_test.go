package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazylynx/geodesy/internal/config"
)

func TestRun_Standard(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("40.6 -73.8 49.01666667 2.55\n")
	err := run(context.Background(), []string{"-p", "0", "-log-level", "error"}, in, &out)
	require.NoError(t, err)
	assert.Equal(t, "53.47022 111.59367 5853226\n", out.String())
}

func TestRun_FullRecordOnSphere(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("0 0 0 90\n")
	args := []string{"-a", "6371000", "-flat", "0", "-f", "-p", "0", "-log-level", "error"}
	require.NoError(t, run(context.Background(), args, in, &out))

	fields := strings.Fields(out.String())
	require.Len(t, fields, 12)
	// A quarter of the equator.
	assert.Equal(t, "10007543", fields[6])
	assert.Equal(t, "90.00000", fields[7])
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  precision: 1
workers: 2
logging:
  level: error
`), 0o600))

	var out bytes.Buffer
	in := strings.NewReader("# comment\n0 0 0 1\nbad line\n")
	require.NoError(t, run(context.Background(), []string{"-config", path}, in, &out))
	assert.Equal(t, "90.000000 90.000000 111319.5\nERROR want 4 fields, got 2\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-a", "-1"}, strings.NewReader(""), &out)
	assert.ErrorContains(t, err, "invalid ellipsoid")

	err = run(context.Background(), []string{"extra"}, strings.NewReader(""), &out)
	assert.ErrorContains(t, err, "unexpected arguments")

	err = run(context.Background(), []string{"-h"}, strings.NewReader(""), &out)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	err = run(context.Background(), []string{"-config", "/nonexistent/geodsolve.yaml"}, strings.NewReader(""), &out)
	assert.ErrorContains(t, err, "failed to read config")
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, strings.NewReader(""), &out))
	assert.True(t, strings.HasPrefix(out.String(), "geodsolve dev"))
}

func TestApplyFlags(t *testing.T) {
	f, err := parseFlags([]string{"-flat", "298.257223563", "-workers", "9", "-u", "-metrics-port", "9100"})
	require.NoError(t, err)

	cfg := config.Default()
	f.apply(&cfg)
	assert.Equal(t, 0.0, cfg.Ellipsoid.Flattening)
	assert.Equal(t, 298.257223563, cfg.Ellipsoid.InverseFlattening)
	assert.Equal(t, 9, cfg.Workers)
	assert.True(t, cfg.Output.LongUnroll)
	assert.Equal(t, 9100, cfg.Metrics.Port)
	// Flags not given leave the config alone.
	assert.Equal(t, 3, cfg.Output.Precision)
	assert.False(t, cfg.Output.Full)
	require.NoError(t, cfg.Validate())
}
