// Package tuning implements the online auto-tuning core for a
// pairwise-interaction particle simulation: it chooses, from a discrete
// configuration space, the combination of container, cell-size factor,
// traversal, data layout, and Newton-3 option that minimizes measured
// wall-clock cost for the current workload.
//
// # Reading Guide
//
//   - options.go: the closed enumerations and the CompatibleTraversals
//     capability oracle.
//   - configuration.go: the Configuration 5-tuple and its ordering.
//   - searchspace.go: SearchSpace construction from allowed option sets.
//   - evidence.go: per-configuration, per-phase measurement storage.
//   - predictor.go: linear extrapolation and active-set derivation.
//   - controller.go: the tune/addEvidence state machine.
//
// The package owns no goroutines and performs no I/O beyond structured
// logging; everything it does runs synchronously on the caller's thread. The
// caller drives it with a loop of the shape:
//
//	for {
//	    cfg := ctrl.CurrentConfiguration()
//	    cost := measure(cfg) // run one traversal, elsewhere
//	    ctrl.AddEvidence(cost)
//	    more, err := ctrl.Tune()
//	    if err != nil {
//	        return err
//	    }
//	    if !more {
//	        break // phase finalized, new optimum installed
//	    }
//	}
package tuning
