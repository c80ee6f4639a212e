package tuning

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// SearchSpace is an ordered set of Configurations, populated once at
// construction and thereafter only shrunk by RemoveN3Option. The order is
// the Configuration.Less total order; building a search space twice from
// the same option sets yields equal search spaces, order included.
type SearchSpace struct {
	ordered []Configuration
	member  map[Configuration]bool
}

// NewSearchSpace builds the initial SearchSpace from a validated Config: for
// each allowed container, it intersects the allowed traversals with
// CompatibleTraversals(container), then takes the Cartesian product with
// cell-size factors, data layouts, and newton3 options. Returns
// ErrNoValidConfigurations if the result is empty.
func NewSearchSpace(cfg Config) (*SearchSpace, error) {
	ss := &SearchSpace{member: make(map[Configuration]bool)}

	for _, container := range cfg.AllowedContainers {
		applicable := intersectTraversals(cfg.AllowedTraversals, CompatibleTraversals(container))
		for _, cellSizeFactor := range cfg.AllowedCellSizeFactors {
			for _, traversal := range applicable {
				for _, layout := range cfg.AllowedDataLayouts {
					for _, n3 := range cfg.AllowedNewton3Options {
						ss.add(Configuration{
							Container:      container,
							CellSizeFactor: cellSizeFactor,
							Traversal:      traversal,
							DataLayout:     layout,
							Newton3:        n3,
						})
					}
				}
			}
		}
	}

	if len(ss.ordered) == 0 {
		return nil, ErrNoValidConfigurations{}
	}

	sort.Slice(ss.ordered, func(i, j int) bool { return ss.ordered[i].Less(ss.ordered[j]) })

	logrus.Debugf("tuning: search space built with %d configurations", len(ss.ordered))
	return ss, nil
}

// NewSearchSpaceFromConfigurations builds a SearchSpace directly from a set
// of configurations, bypassing option-set intersection. Primarily a testing
// seam; assumes every configuration is already valid.
func NewSearchSpaceFromConfigurations(configs []Configuration) (*SearchSpace, error) {
	ss := &SearchSpace{member: make(map[Configuration]bool)}
	for _, c := range configs {
		ss.add(c)
	}
	if len(ss.ordered) == 0 {
		return nil, ErrNoValidConfigurations{}
	}
	sort.Slice(ss.ordered, func(i, j int) bool { return ss.ordered[i].Less(ss.ordered[j]) })
	return ss, nil
}

func (ss *SearchSpace) add(c Configuration) {
	if ss.member[c] {
		return
	}
	ss.member[c] = true
	ss.ordered = append(ss.ordered, c)
}

// Len returns the number of configurations currently in the search space.
func (ss *SearchSpace) Len() int {
	return len(ss.ordered)
}

// Contains reports whether c is a member of the search space.
func (ss *SearchSpace) Contains(c Configuration) bool {
	return ss.member[c]
}

// Configurations returns the search space's configurations in their total
// order. The returned slice is a defensive copy.
func (ss *SearchSpace) Configurations() []Configuration {
	out := make([]Configuration, len(ss.ordered))
	copy(out, ss.ordered)
	return out
}

// AllowedContainers returns the set of containers represented in the search
// space, derived by scanning it. Order matches Container's declaration
// order, not insertion order.
func (ss *SearchSpace) AllowedContainers() []Container {
	seen := make(map[Container]bool)
	for _, c := range ss.ordered {
		seen[c.Container] = true
	}
	var out []Container
	for _, c := range AllContainers() {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// removeIf deletes every configuration for which predicate returns true and
// returns the removed configurations. Does not expose the underlying slice
// across the mutation, so callers can't observe a half-filtered state.
func (ss *SearchSpace) removeIf(predicate func(Configuration) bool) []Configuration {
	kept := ss.ordered[:0:0]
	var removed []Configuration
	for _, c := range ss.ordered {
		if predicate(c) {
			removed = append(removed, c)
			delete(ss.member, c)
		} else {
			kept = append(kept, c)
		}
	}
	ss.ordered = kept
	return removed
}

func intersectTraversals(allowed, compatible []Traversal) []Traversal {
	compatSet := make(map[Traversal]bool, len(compatible))
	for _, t := range compatible {
		compatSet[t] = true
	}
	var out []Traversal
	for _, t := range allowed {
		if compatSet[t] {
			out = append(out, t)
		}
	}
	return out
}
