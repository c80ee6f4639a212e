package tuning

// Predictor is the one-method strategy interface for projecting a
// configuration's cost at an upcoming phase from its measurement history.
// LinearPredictor is the only mandated implementation; the interface exists
// so alternative methods can be added without touching the Controller.
type Predictor interface {
	// Predict projects config's cost at currentPhase from history, which is
	// sorted by phase (EvidenceStore.HistoryOf's contract). ok is false when
	// history has fewer than two entries and no projection can be made.
	Predict(history []Evidence, currentPhase int) (cost float64, ok bool)
}

// LinearPredictor implements linear extrapolation from the two most recent
// evidences: projecting t2 + (t2-t1)/(p2-p1) * (currentPhase - p2), clamped
// at zero.
type LinearPredictor struct{}

// Predict implements Predictor.
func (LinearPredictor) Predict(history []Evidence, currentPhase int) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}
	p2 := history[len(history)-1]
	p1 := history[len(history)-2]
	if p2.Phase == p1.Phase {
		// Guards a zero-division; EvidenceStore's invariant (strictly
		// increasing phases) should make this unreachable.
		return 0, false
	}
	slope := (p2.Cost - p1.Cost) / float64(p2.Phase-p1.Phase)
	projected := p2.Cost + slope*float64(currentPhase-p2.Phase)
	if projected < 0 {
		projected = 0
	}
	return projected, true
}

// activeSetResult bundles the derived active set with the projections that
// produced it, so the Controller can expose LastPrediction for diagnostics
// without recomputing.
type activeSetResult struct {
	active      []Configuration
	projections map[Configuration]float64
}

// deriveActiveSet implements active-set derivation: cold phases (0 or 1)
// and trivial search spaces measure everything; otherwise a configuration
// is admitted when its projection is within relativeOptimumRange of the
// minimum projection, when it has fewer than two historical evidences, or
// when it has not been measured for at least maxPhasesWithoutTest phases.
func deriveActiveSet(
	space *SearchSpace,
	store *EvidenceStore,
	predictor Predictor,
	currentPhase int,
	relativeOptimumRange float64,
	maxPhasesWithoutTest int,
) activeSetResult {
	configs := space.Configurations()

	if len(configs) == 1 || currentPhase == 0 || currentPhase == 1 {
		return activeSetResult{active: configs, projections: map[Configuration]float64{}}
	}

	projections := make(map[Configuration]float64, len(configs))
	fewHistory := make(map[Configuration]bool, len(configs))
	stale := make(map[Configuration]bool, len(configs))

	for _, c := range configs {
		hist := store.HistoryOf(c)
		if len(hist) < 2 {
			fewHistory[c] = true
			continue
		}
		projected, ok := predictor.Predict(hist, currentPhase)
		if !ok {
			fewHistory[c] = true
			continue
		}
		projections[c] = projected
		lastPhase := hist[len(hist)-1].Phase
		if currentPhase-lastPhase >= maxPhasesWithoutTest {
			stale[c] = true
		}
	}

	minProjected := minValue(projections)

	var active []Configuration
	for _, c := range configs {
		switch {
		case fewHistory[c]:
			active = append(active, c)
		case stale[c]:
			active = append(active, c)
		case minProjected >= 0 && projections[c] <= minProjected*relativeOptimumRange:
			active = append(active, c)
		}
	}

	return activeSetResult{active: active, projections: projections}
}

func minValue(projections map[Configuration]float64) float64 {
	min := -1.0
	first := true
	for _, v := range projections {
		if first || v < min {
			min = v
			first = false
		}
	}
	if first {
		return -1.0
	}
	return min
}
