package params

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conf = `
# board setup
base = boards/rev2
excellon_path = $(base)/board.drl
fcu_path = $(base)/F_Cu.gcode   # front copper

precision = 3
probe_lims = [0, 60, 0, 40]
probe_tick = [4, 3]
mirrorax = 0
mirrorval = 30
`

func TestReadConf(t *testing.T) {
	p := Default()
	require.NoError(t, ReadConf(strings.NewReader(conf), &p))

	assert.Equal(t, 3, p.Precision)
	assert.Equal(t, []float64{0, 60, 0, 40}, p.ProbeLims)
	assert.Equal(t, []int{4, 3}, p.ProbeTick)
	assert.Equal(t, "x", p.MirrorAx)
	assert.Equal(t, 30.0, p.MirrorVal)
	assert.Equal(t, "boards/rev2/board.drl", p.Extra["excellon_path"])
	assert.Equal(t, "boards/rev2/F_Cu.gcode", p.Extra["fcu_path"])
}

func TestReadConf_Errors(t *testing.T) {
	p := Default()
	err := ReadConf(strings.NewReader("a = 1\nb = $(missing)/x\n"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "$(missing)")

	p = Default()
	err = ReadConf(strings.NewReader("precision = -2\n"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Equal(t, 4, p.Precision)
}

func TestReadConf_ExpandsParams(t *testing.T) {
	p := Default()
	require.NoError(t, ReadConf(strings.NewReader("label = p$(precision)\n"), &p))
	assert.Equal(t, "p4", p.Extra["label"])
}

func TestReadYAML(t *testing.T) {
	p := Default()
	err := ReadYAML(strings.NewReader(`
precision: 2
drlscope: 4.5
probe_lims: [-10, 10, -5, 5]
probe_tick: [3, 3]
initialcoord: [0, 0, 2]
hmap_path: out/hmap.csv
`), &p)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Precision)
	assert.Equal(t, 4.5, p.DrlScope)
	assert.Equal(t, []float64{-10, 10, -5, 5}, p.ProbeLims)
	assert.Equal(t, []int{3, 3}, p.ProbeTick)
	assert.Equal(t, []float64{0, 0, 2}, p.InitialCoord)
	assert.Equal(t, "out/hmap.csv", p.Extra["hmap_path"])

	p = Default()
	assert.NoError(t, ReadYAML(strings.NewReader(""), &p))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	confPath := filepath.Join(dir, "pmu.conf")
	require.NoError(t, os.WriteFile(confPath, []byte(conf), 0o644))
	p, err := Load(confPath)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, p.ProbeTick)

	yamlPath := filepath.Join(dir, "pmu.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("maxiter: 40\n"), 0o644))
	p, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 40, p.MaxIter)

	_, err = Load(filepath.Join(dir, "missing.conf"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("precision: [1, 2]\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yml")
}
