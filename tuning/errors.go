package tuning

import "fmt"

// ErrNoValidConfigurations is returned by NewSearchSpace when the Cartesian
// product of allowed options, after pruning by CompatibleTraversals, is
// empty.
type ErrNoValidConfigurations struct{}

func (e ErrNoValidConfigurations) Error() string {
	return "tuning: no valid configurations could be constructed from the allowed option sets"
}

// ErrUnknownConfiguration is returned when evidence is reported for a
// Configuration that is not (or no longer) a member of the SearchSpace. It
// is a programmer error on the caller's side, not a tuning-progress failure.
type ErrUnknownConfiguration struct {
	Config Configuration
}

func (e ErrUnknownConfiguration) Error() string {
	return fmt.Sprintf("tuning: configuration %s is not a member of the search space", e.Config)
}

// ErrNoCandidates is returned when active-set derivation yields an empty
// set at the start of a phase.
type ErrNoCandidates struct {
	Phase int
}

func (e ErrNoCandidates) Error() string {
	return fmt.Sprintf("tuning: phase %d has no active candidates", e.Phase)
}

// ErrNoMeasurements is returned at phase end when no configuration received
// evidence during the phase and the search space has more than one
// configuration. It signals a contract violation by the outer
// driver: Tune was exhausted without a single AddEvidence call.
type ErrNoMeasurements struct {
	Phase int
}

func (e ErrNoMeasurements) Error() string {
	return fmt.Sprintf("tuning: phase %d ended with no measurements recorded", e.Phase)
}

// ErrEmptyAfterInvalidation is returned when RemoveN3Option deletes the last
// configurations using a Newton3Option and leaves the SearchSpace empty.
type ErrEmptyAfterInvalidation struct {
	Newton3 Newton3Option
}

func (e ErrEmptyAfterInvalidation) Error() string {
	return fmt.Sprintf("tuning: removing newton3 option %s emptied the search space", e.Newton3)
}

// ErrNegativeCost is returned when AddEvidence is called with a negative
// cost. Costs are measured wall-clock durations and cannot be negative.
type ErrNegativeCost struct {
	Config Configuration
	Cost   float64
}

func (e ErrNegativeCost) Error() string {
	return fmt.Sprintf("tuning: negative cost %g reported for configuration %s", e.Cost, e.Config)
}
