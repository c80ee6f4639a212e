package cmd

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptuner/ptuner/tuning"
)

func TestLoadOrDefaultConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadOrDefaultConfig("")
	require.NoError(t, err)
	assert.Equal(t, tuning.DefaultConfig(), *cfg)
}

func TestLoadOrDefaultConfig_ReadsAndValidatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
allowed_containers: ["LinkedCells"]
allowed_cell_size_factors: [1.0]
allowed_traversals: ["LCC08"]
allowed_data_layouts: ["AoS"]
allowed_newton3_options: ["Enabled"]
relative_optimum_range: 1.2
max_phases_without_test: 5
`), 0o644))

	cfg, err := loadOrDefaultConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []tuning.Container{tuning.LinkedCells}, cfg.AllowedContainers)
}

func TestLoadOrDefaultConfig_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`relative_optimum_range: 0.1`), 0o644))

	_, err := loadOrDefaultConfig(path)
	assert.Error(t, err)
}

func TestSyntheticCost_LinkedCellsCheaperThanOtherContainers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lc := tuning.Configuration{Container: tuning.LinkedCells, DataLayout: tuning.AoS, Newton3: tuning.Newton3Disabled}
	ds := tuning.Configuration{Container: tuning.DirectSum, DataLayout: tuning.AoS, Newton3: tuning.Newton3Disabled}

	// Average over several draws to smooth the +/-5% noise term.
	var lcTotal, dsTotal float64
	for i := 0; i < 100; i++ {
		lcTotal += syntheticCost(lc, 1000, rng)
		dsTotal += syntheticCost(ds, 1000, rng)
	}
	assert.Less(t, lcTotal, dsTotal)
}

func TestSyntheticCost_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := tuning.Configuration{Container: tuning.DirectSum, DataLayout: tuning.AoS, Newton3: tuning.Newton3Disabled}
	for i := 0; i < 50; i++ {
		assert.GreaterOrEqual(t, syntheticCost(c, 10, rng), 0.0)
	}
}

func TestValidateCmd_ReportsSearchSpaceSize(t *testing.T) {
	configPath = ""
	var buf bytes.Buffer
	validateCmd.SetOut(&buf)

	err := validateCmd.RunE(validateCmd, nil)
	require.NoError(t, err)
	// DefaultConfig: 22 compatible container/traversal pairs x 2 layouts x 2 newton3 options.
	assert.Contains(t, buf.String(), "88 configurations")
}
