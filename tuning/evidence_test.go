package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvidenceStore_RecordAndLatestCost(t *testing.T) {
	es := NewEvidenceStore()
	c := baseConfiguration()

	_, ok := es.LatestCost(c)
	assert.False(t, ok, "fresh store should have no latest cost")

	es.Record(c, 1, 100)
	cost, ok := es.LatestCost(c)
	assert.True(t, ok)
	assert.Equal(t, float64(100), cost)
}

func TestEvidenceStore_HistoryOf_StrictlyIncreasingPhases(t *testing.T) {
	es := NewEvidenceStore()
	c := baseConfiguration()

	es.Record(c, 1, 100)
	es.Record(c, 2, 150)
	es.Record(c, 3, 120)

	hist := es.HistoryOf(c)
	want := []Evidence{{Phase: 1, Cost: 100}, {Phase: 2, Cost: 150}, {Phase: 3, Cost: 120}}
	assert.Equal(t, want, hist)

	for i := 1; i < len(hist); i++ {
		assert.Greater(t, hist[i].Phase, hist[i-1].Phase)
	}
}

func TestEvidenceStore_HistoryOf_ReturnsDefensiveCopy(t *testing.T) {
	es := NewEvidenceStore()
	c := baseConfiguration()
	es.Record(c, 1, 100)

	hist := es.HistoryOf(c)
	hist[0].Cost = 999

	assert.Equal(t, float64(100), es.HistoryOf(c)[0].Cost)
}

func TestEvidenceStore_ClearCurrentPhase_PreservesHistory(t *testing.T) {
	es := NewEvidenceStore()
	c := baseConfiguration()
	es.Record(c, 1, 100)

	es.ClearCurrentPhase()

	_, ok := es.LatestCost(c)
	assert.False(t, ok)
	assert.Len(t, es.HistoryOf(c), 1)
}

func TestEvidenceStore_ClearAll_RemovesHistoryToo(t *testing.T) {
	es := NewEvidenceStore()
	c := baseConfiguration()
	es.Record(c, 1, 100)

	es.ClearAll()

	assert.Empty(t, es.HistoryOf(c))
	_, ok := es.LatestCost(c)
	assert.False(t, ok)
}

func TestEvidenceStore_LatestByConfig_TracksMultipleConfigs(t *testing.T) {
	es := NewEvidenceStore()
	a := baseConfiguration()
	b := baseConfiguration()
	b.Newton3 = Newton3Disabled

	es.Record(a, 1, 100)
	es.Record(b, 1, 200)

	latest := es.LatestByConfig()
	assert.Equal(t, map[Configuration]float64{a: 100, b: 200}, latest)
}

func TestEvidenceStore_forget_RemovesBothViews(t *testing.T) {
	es := NewEvidenceStore()
	c := baseConfiguration()
	es.Record(c, 1, 100)

	es.forget(c)

	assert.Empty(t, es.HistoryOf(c))
	_, ok := es.LatestCost(c)
	assert.False(t, ok)
}
