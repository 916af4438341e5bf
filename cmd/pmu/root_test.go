package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MartinBloedorn/pmu/params"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("conf", defaultConf, "")
	cmd.Flags().StringArray("set", nil, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadParams(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// no pmu.conf in the working directory
	p, err := loadParams(testCmd(t, "--set", "precision=2", "--set", "fcu_path=a.gcode"))
	require.NoError(t, err)
	assert.Equal(t, 2, p.Precision)
	assert.Equal(t, "a.gcode", p.Extra["fcu_path"])

	_, err = loadParams(testCmd(t, "--conf", "missing.conf"))
	assert.Error(t, err)

	_, err = loadParams(testCmd(t, "--set", "precision"))
	assert.Error(t, err)

	conf := filepath.Join(dir, "board.conf")
	require.NoError(t, os.WriteFile(conf, []byte("maxiter = 50\n"), 0644))
	p, err = loadParams(testCmd(t, "--conf", conf, "--set", "maxiter=60"))
	require.NoError(t, err)
	assert.Equal(t, 60, p.MaxIter)
}

func TestPathArg(t *testing.T) {
	p := params.Default()
	require.NoError(t, p.Set("hmap_path", "probe.csv"))

	v, err := pathArg([]string{"a.gcode"}, 0, p, "fcu_path")
	require.NoError(t, err)
	assert.Equal(t, "a.gcode", v)

	v, err = pathArg(nil, 1, p, "hmap_path")
	require.NoError(t, err)
	assert.Equal(t, "probe.csv", v)

	_, err = pathArg(nil, 0, p, "fcu_path")
	assert.Error(t, err)
}
