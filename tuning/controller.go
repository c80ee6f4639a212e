package tuning

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Controller is the state machine that drives a tuning phase: it yields the
// next configuration to measure, accepts measurements, detects phase
// completion, selects the phase-optimum, advances the phase counter, and
// responds to newton3-option invalidation and explicit reset.
//
// Controller is single-threaded and cooperative: it owns its SearchSpace,
// EvidenceStore, prediction cache, and cursor for the lifetime of the tuning
// session, and exposes no suspension points. It must not be used
// concurrently from multiple goroutines; RemoveN3Option and Reset may be
// called between Tune/AddEvidence pairs but never concurrently with them.
type Controller struct {
	space     *SearchSpace
	store     *EvidenceStore
	predictor Predictor

	relativeOptimumRange float64
	maxPhasesWithoutTest int

	phase  int
	cursor int // index into active; valid configuration lives at active[cursor]

	active      []Configuration
	projections map[Configuration]float64

	lastOptimum     Configuration
	haveLastOptimum bool
}

// NewController builds a Controller from a validated Config, constructing
// its SearchSpace via NewSearchSpace and positioning it at the start of
// phase 0.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: invalid config: %w", err)
	}
	space, err := NewSearchSpace(cfg)
	if err != nil {
		return nil, err
	}
	return newControllerFromSpace(space, cfg.RelativeOptimumRange, cfg.MaxPhasesWithoutTest)
}

// NewControllerFromConfigurations builds a Controller directly from a set of
// configurations, bypassing Config entirely. Primarily a testing seam.
func NewControllerFromConfigurations(configs []Configuration, relativeOptimumRange float64, maxPhasesWithoutTest int) (*Controller, error) {
	space, err := NewSearchSpaceFromConfigurations(configs)
	if err != nil {
		return nil, err
	}
	return newControllerFromSpace(space, relativeOptimumRange, maxPhasesWithoutTest)
}

func newControllerFromSpace(space *SearchSpace, relativeOptimumRange float64, maxPhasesWithoutTest int) (*Controller, error) {
	c := &Controller{
		space:                 space,
		store:                 NewEvidenceStore(),
		predictor:             LinearPredictor{},
		relativeOptimumRange:  relativeOptimumRange,
		maxPhasesWithoutTest:  maxPhasesWithoutTest,
	}
	if err := c.beginPhase(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetPredictor overrides the prediction method. Passing nil restores
// LinearPredictor. Has no effect on the ActiveSet already derived for the
// current phase; it takes effect starting with the next beginPhase.
func (c *Controller) SetPredictor(p Predictor) {
	if p == nil {
		p = LinearPredictor{}
	}
	c.predictor = p
}

// beginPhase implements the PhaseBegin state: compute ActiveSet via the
// Predictor, set CurrentCursor to the first element of SearchSpace that is
// in ActiveSet, clear LatestByConfig, clear Prediction.
func (c *Controller) beginPhase() error {
	c.store.ClearCurrentPhase()

	result := deriveActiveSet(c.space, c.store, c.predictor, c.phase, c.relativeOptimumRange, c.maxPhasesWithoutTest)
	if len(result.active) == 0 {
		return ErrNoCandidates{Phase: c.phase}
	}
	c.active = result.active
	c.projections = result.projections
	c.cursor = 0

	logrus.Debugf("tuning: phase %d active set size %d (of %d)", c.phase, len(c.active), c.space.Len())
	return nil
}

// CurrentConfiguration returns the configuration the outer simulation should
// execute next. Always valid while the search space is non-empty.
func (c *Controller) CurrentConfiguration() Configuration {
	return c.active[c.cursor]
}

// AddEvidence records cost for the current configuration at the current
// phase. Returns ErrNegativeCost if cost is negative.
func (c *Controller) AddEvidence(cost float64) error {
	if cost < 0 {
		return ErrNegativeCost{Config: c.CurrentConfiguration(), Cost: cost}
	}
	c.store.Record(c.CurrentConfiguration(), c.phase, cost)
	return nil
}

// Tune advances the Controller. It returns true while more configurations
// in the current phase's ActiveSet remain to be measured, and false once the
// phase is finalized and a new selected optimum is installed for the next
// phase. The caller must invoke AddEvidence exactly once per configuration
// between consecutive true-returning Tune calls.
func (c *Controller) Tune() (bool, error) {
	if c.cursor+1 < len(c.active) {
		c.cursor++
		return true, nil
	}

	if err := c.selectOptimal(); err != nil {
		return false, err
	}
	c.phase++
	if err := c.beginPhase(); err != nil {
		return false, err
	}
	return false, nil
}

// selectOptimal implements PhaseEnd's phase-optimum selection: argmin over
// LatestByConfig by cost, ties broken by Configuration.Less. A trivial
// search space selects its only configuration even when it was not measured.
func (c *Controller) selectOptimal() error {
	latest := c.store.LatestByConfig()
	if len(latest) == 0 {
		if c.space.Len() != 1 {
			return ErrNoMeasurements{Phase: c.phase}
		}
		c.lastOptimum = c.space.Configurations()[0]
		c.haveLastOptimum = true
		return nil
	}

	var best Configuration
	bestCost := 0.0
	first := true
	for config, cost := range latest {
		if !c.space.Contains(config) {
			return ErrUnknownConfiguration{Config: config}
		}
		if first || cost < bestCost || (cost == bestCost && config.Less(best)) {
			best = config
			bestCost = cost
			first = false
		}
	}

	c.lastOptimum = best
	c.haveLastOptimum = true
	logrus.Infof("tuning: phase %d selected configuration %s (cost %g)", c.phase, best, bestCost)
	return nil
}

// LastSelectedOptimum returns the configuration chosen at the most recent
// PhaseEnd, and whether a selection has happened yet.
func (c *Controller) LastSelectedOptimum() (Configuration, bool) {
	return c.lastOptimum, c.haveLastOptimum
}

// RemoveN3Option deletes every SearchSpace configuration using newton3 and,
// if CurrentCursor pointed at a deleted configuration, advances it to the
// next surviving active configuration. Returns ErrEmptyAfterInvalidation if
// the search space becomes empty.
func (c *Controller) RemoveN3Option(newton3 Newton3Option) error {
	var current Configuration
	haveCurrent := c.cursor < len(c.active)
	if haveCurrent {
		current = c.active[c.cursor]
	}

	removed := c.space.removeIf(func(cfg Configuration) bool { return cfg.Newton3 == newton3 })
	for _, cfg := range removed {
		c.store.forget(cfg)
	}

	if c.space.Len() == 0 {
		return ErrEmptyAfterInvalidation{Newton3: newton3}
	}

	oldActive := c.active
	oldCursor := c.cursor
	newActive := oldActive[:0:0]
	removedBeforeCursor := 0
	for i, cfg := range oldActive {
		if cfg.Newton3 == newton3 {
			if haveCurrent && i < oldCursor {
				removedBeforeCursor++
			}
			continue
		}
		newActive = append(newActive, cfg)
	}
	c.active = newActive

	if len(c.active) == 0 {
		// Every active candidate used the removed option: re-derive from
		// the shrunk search space so the phase can continue.
		result := deriveActiveSet(c.space, c.store, c.predictor, c.phase, c.relativeOptimumRange, c.maxPhasesWithoutTest)
		if len(result.active) == 0 {
			return ErrNoCandidates{Phase: c.phase}
		}
		c.active = result.active
		c.projections = result.projections
		c.cursor = 0
		return nil
	}

	if !haveCurrent {
		return nil
	}

	if current.Newton3 != newton3 {
		// Current configuration survived: its index merely shifted left by
		// however many removed elements preceded it.
		c.cursor = oldCursor - removedBeforeCursor
		return nil
	}

	// Current configuration was itself removed: the next surviving element
	// now occupies its old slot, shifted left the same way. If nothing
	// survived at or after that slot, restart from the first surviving
	// active configuration rather than leaving the cursor out of bounds.
	newCursor := oldCursor - removedBeforeCursor
	if newCursor >= len(c.active) {
		newCursor = 0
	}
	c.cursor = newCursor
	return nil
}

// Reset starts a fresh phase using accumulated history: clears the current
// phase's measurements and predictions, recomputes the active set, and
// repositions the cursor. Unlike Tune's phase-end path, Reset does not
// advance the phase counter or touch recorded history. Calling Reset twice
// in a row is equivalent to calling it once: both calls recompute the same
// active set from the same, untouched history.
func (c *Controller) Reset() error {
	return c.beginPhase()
}

// SearchSpaceIsTrivial reports whether the search space has exactly one
// element.
func (c *Controller) SearchSpaceIsTrivial() bool {
	return c.space.Len() == 1
}

// SearchSpaceIsEmpty reports whether the search space has no elements.
func (c *Controller) SearchSpaceIsEmpty() bool {
	return c.space.Len() == 0
}

// AllowedContainers returns the containers represented in the current
// search space.
func (c *Controller) AllowedContainers() []Container {
	return c.space.AllowedContainers()
}

// Phase returns the current PhaseNumber.
func (c *Controller) Phase() int {
	return c.phase
}

// LastActiveSet returns the active set derived for the current phase. A
// diagnostic and testing accessor.
func (c *Controller) LastActiveSet() []Configuration {
	out := make([]Configuration, len(c.active))
	copy(out, c.active)
	return out
}

// LastPrediction returns the projected-cost map computed for the current
// phase. Empty during cold phases (0, 1) or a trivial search space, since
// no prediction was performed. A diagnostic and testing accessor.
func (c *Controller) LastPrediction() map[Configuration]float64 {
	out := make(map[Configuration]float64, len(c.projections))
	for k, v := range c.projections {
		out[k] = v
	}
	return out
}
