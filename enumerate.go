// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// IndexedCandidate pairs one abstract event structure with the
// constraints accumulated while building it and the contiguous index
// §6 assigns in generation order.
type IndexedCandidate struct {
	Index       int
	Constraints []Constraint
	Structure   EventStructure
}

// GlommedResult is §6's glommed_event_structures output.
type GlommedResult struct {
	Structures []IndexedCandidate
	TooFar     bool
}

// GlommedEventStructures is §6's first external entry point: it runs
// the instruction driver (§4.1) across every thread's start point and
// relabels (§4.2) each resulting abstract event structure.
func GlommedEventStructures(sem Semantics, test Test, cfg Config) (GlommedResult, error) {
	candidates, tooFar, err := RunDriverWithConfig(sem, test, cfg)
	if err != nil {
		return GlommedResult{}, err
	}

	structures := make([]IndexedCandidate, len(candidates))
	for i, c := range candidates {
		structures[i] = IndexedCandidate{
			Index:       i,
			Constraints: c.Constraints,
			Structure:   Relabel(c.Structure),
		}
	}
	return GlommedResult{Structures: structures, TooFar: tooFar}, nil
}

// CalculateRFWithConstraints is §6's second external entry point and
// §4.7's "driver entry": it runs §4.3 → §4.4 → §4.5 over one abstract
// structure, folding each delivered concrete execution (and each
// loop-limit reject) into accumulator via the caller's callbacks.
func CalculateRFWithConstraints[Acc any](
	test Test,
	structure EventStructure,
	constraints []Constraint,
	solver Solver,
	cfg Config,
	onConcrete func(ConcreteExecution, Acc) Acc,
	onLoopExceeded func(Acc) Acc,
	accumulator Acc,
) Acc {
	regEs, rf, residual, ok := ResolveRegisterRF(structure, test.Initial, constraints, solver)
	if !ok {
		return accumulator
	}

	for _, mc := range EnumerateMemoryRF(regEs, rf, residual, test.Initial, cfg, solver) {
		if len(mc.Residual) > 0 {
			accumulator = whenUnsolved(mc, cfg, onLoopExceeded, accumulator)
			continue
		}
		if cfg.Optace && !CheckRFMap(mc.Structure, mc.RF) {
			continue
		}
		for _, concrete := range Finalize(mc.Structure, mc.RF, test, cfg) {
			accumulator = onConcrete(concrete, accumulator)
		}
	}
	return accumulator
}

// whenUnsolved implements §4.4/§9's when_unsolved branch: a residual
// made entirely of Unroll sentinels is a loop-limit reject; any other
// residual means the rfmap is asserted cyclic (a debug-only check, to
// avoid masking an upstream collaborator bug) and silently dropped.
func whenUnsolved[Acc any](mc MemRFCandidate, cfg Config, onLoopExceeded func(Acc) Acc, accumulator Acc) Acc {
	if AllUnroll(mc.Residual) {
		for _, c := range mc.Residual {
			cfg.warnUnrollingTooDeep(c.Label)
		}
		return onLoopExceeded(accumulator)
	}
	if cfg.Debug.RFM && !RFMapIsCyclic(mc.Structure, mc.RF) {
		invariantViolation("when_unsolved residual is not Unroll-only and rfmap is not cyclic")
	}
	return accumulator
}
