package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_String(t *testing.T) {
	assert.Equal(t, "LinkedCells", LinkedCells.String())
	assert.Equal(t, "DirectSum", DirectSum.String())
}

func TestTraversal_String_UnknownValue(t *testing.T) {
	var t1 Traversal = 999
	assert.Contains(t, t1.String(), "Traversal(999)")
}

func TestCompatibleTraversals_DirectSum(t *testing.T) {
	ts := CompatibleTraversals(DirectSum)
	if len(ts) != 1 || ts[0] != DSSequential {
		t.Fatalf("DirectSum compatible traversals = %v, want [DSSequential]", ts)
	}
}

func TestCompatibleTraversals_ReturnsDefensiveCopy(t *testing.T) {
	ts := CompatibleTraversals(LinkedCells)
	ts[0] = OTC01 // mutate the returned copy

	again := CompatibleTraversals(LinkedCells)
	assert.NotEqual(t, OTC01, again[0], "mutating the returned slice must not affect the oracle's internal table")
}

func TestIsTraversalCompatible(t *testing.T) {
	tests := []struct {
		container  Container
		traversal  Traversal
		compatible bool
	}{
		{LinkedCells, LCC08, true},
		{LinkedCells, DSSequential, false},
		{DirectSum, DSSequential, true},
		{Octree, VLListIteration, false},
		{Octree, OTC18, true},
	}
	for _, tt := range tests {
		got := IsTraversalCompatible(tt.container, tt.traversal)
		if got != tt.compatible {
			t.Errorf("IsTraversalCompatible(%s, %s) = %v, want %v", tt.container, tt.traversal, got, tt.compatible)
		}
	}
}

func TestAllContainersAndTraversals_CoverCompatibilityTable(t *testing.T) {
	// Every container in the compatibility table must also appear in
	// AllContainers, and every traversal it maps to must appear in
	// AllTraversals -- otherwise Config validation and the table disagree.
	all := make(map[Container]bool)
	for _, c := range AllContainers() {
		all[c] = true
	}
	allTraversals := make(map[Traversal]bool)
	for _, tr := range AllTraversals() {
		allTraversals[tr] = true
	}
	for container, traversals := range compatibleTraversals {
		assert.True(t, all[container], "container %s missing from AllContainers", container)
		for _, tr := range traversals {
			assert.True(t, allTraversals[tr], "traversal %s missing from AllTraversals", tr)
		}
	}
}

func TestParseContainer_RoundTrip(t *testing.T) {
	for _, c := range AllContainers() {
		parsed, err := ParseContainer(c.String())
		if err != nil {
			t.Fatalf("ParseContainer(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("ParseContainer(%q) = %v, want %v", c.String(), parsed, c)
		}
	}
}

func TestParseTraversal_Unknown(t *testing.T) {
	_, err := ParseTraversal("not-a-traversal")
	assert.Error(t, err)
}

func TestNewton3Option_YAMLRoundTrip(t *testing.T) {
	n, err := ParseNewton3Option("Enabled")
	require.NoError(t, err)
	assert.Equal(t, Newton3Enabled, n)

	rendered, err := n.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "Enabled", rendered)
}
