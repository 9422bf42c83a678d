// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// MemRFCandidate is one surviving branch of the memory-RF Cartesian
// product: a substituted event structure, its extended RFMap, and
// whatever constraints the solver could not yet discharge (§4.4).
type MemRFCandidate struct {
	Structure EventStructure
	RF        RFMap
	Residual  []Constraint
}

func memoryLoads(es EventStructure) []Event {
	var out []Event
	for _, e := range es.Events {
		if e.Kind == EventMemRead {
			out = append(out, e)
		}
	}
	return out
}

func memoryStores(es EventStructure) []Event {
	var out []Event
	for _, e := range es.Events {
		if e.Kind == EventMemWrite || e.Kind == EventInitWrite {
			out = append(out, e)
		}
	}
	return out
}

func locsCompatible(r, w Event) bool {
	if r.Loc == nil || w.Loc == nil {
		return true
	}
	if r.Loc.IsDetermined() && w.Loc.IsDetermined() {
		return r.Loc.Equal(*w.Loc)
	}
	return true
}

// reachable reports whether to is reachable from from within rel, the
// BFS §4.4's optace back-reference check and §4.6's cycle checks both
// need over the (small) intra-causality graph.
func reachable(rel Relation, from, to EventID) bool {
	if from == to {
		return false
	}
	visited := map[EventID]bool{from: true}
	queue := []EventID{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range rel[cur] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

func resolveInitValue(loc Location, initial InitialState) (int64, bool) {
	if loc.Kind == LocGlobal {
		return initial.GlobalValue(loc.Name), true
	}
	return 0, false
}

// memConstraintsFor builds the equality constraint(s) for one load
// reading from target, and reports a direct contradiction — both sides
// already determined and unequal — that lets the caller skip the
// solver entirely for this tuple (§4.4 point 3).
func memConstraintsFor(r Event, target RFTarget, es EventStructure, initial InitialState) ([]Constraint, bool) {
	readVar, isVar := "", false
	if r.ReadVal != nil {
		readVar, isVar = r.ReadVal.Name()
	}

	if target.Kind == RFInit {
		if r.Loc == nil {
			return nil, false
		}
		if initVal, ok := resolveInitValue(*r.Loc, initial); ok {
			if !isVar {
				if rv, _ := r.ReadVal.Int(); rv != initVal {
					return nil, true
				}
				return nil, false
			}
			return []Constraint{AssignEqual(readVar, Const(initVal))}, false
		}
		if isVar {
			return []Constraint{ReadInit(readVar, *r.Loc)}, false
		}
		return nil, false
	}

	w, ok := es.EventByID(target.Store)
	if !ok || w.WriteVal == nil {
		return nil, false
	}

	var cons []Constraint
	writeVar, writeIsVar := w.WriteVal.Name()
	switch {
	case isVar:
		// read value still symbolic: bind it to whatever the store holds,
		// determined or not (§4.4 step 1's read=write equality).
		cons = append(cons, AssignEqual(readVar, *w.WriteVal))
	case writeIsVar:
		// write value still symbolic but the read is already determined:
		// the equality runs the other way, binding the store's variable.
		cons = append(cons, AssignEqual(writeVar, *r.ReadVal))
	default:
		rv, _ := r.ReadVal.Int()
		wv, _ := w.WriteVal.Int()
		if rv != wv {
			return nil, true
		}
	}

	if loc, contradiction := locEqualityConstraint(r, w); contradiction {
		return nil, true
	} else if loc != nil {
		cons = append(cons, *loc)
	}
	return cons, false
}

// locEqualityConstraint builds the "store location equals load location"
// constraint of §4.4 step 1 when both sides are LocDeref addresses and
// at least one is still symbolic (no constraint is built for any other
// pair of location kinds); it reports a direct contradiction when both sides
// are determined and differ (locsCompatible already screened this
// tuple, so this only ever fires for a determined/undetermined pair
// whose addresses happen to already agree or disagree once resolved).
func locEqualityConstraint(r, w Event) (*Constraint, bool) {
	if r.Loc == nil || w.Loc == nil || r.Loc.Kind != LocDeref || w.Loc.Kind != LocDeref {
		return nil, false
	}
	if r.Loc.IsDetermined() && w.Loc.IsDetermined() {
		if !r.Loc.Addr.Equal(w.Loc.Addr) {
			return nil, true
		}
		return nil, false
	}
	if wVar, ok := w.Loc.Addr.Name(); ok {
		c := AssignEqual(wVar, r.Loc.Addr)
		return &c, false
	}
	if rVar, ok := r.Loc.Addr.Name(); ok {
		c := AssignEqual(rVar, w.Loc.Addr)
		return &c, false
	}
	return nil, false
}

// EnumerateMemoryRF enumerates the Cartesian product of per-load
// compatible-store candidates, solving the resulting constraint set
// for each tuple (§4.4). Direct contradictions are pruned before the
// solver is invoked; NoSolns tuples are dropped; everything else is
// returned for §4.7 to route between §4.5 (residual empty) and
// when_unsolved (residual non-empty).
func EnumerateMemoryRF(es EventStructure, rf RFMap, incoming []Constraint, initial InitialState, cfg Config, solver Solver) []MemRFCandidate {
	loads := memoryLoads(es)
	stores := memoryStores(es)
	poIico := es.PoIico()

	choices := make([][]RFTarget, len(loads))
	for i, r := range loads {
		var opts []RFTarget
		if !cfg.InitWrites {
			opts = append(opts, FromInit())
		}
		for _, w := range stores {
			if w.ID == r.ID || !locsCompatible(r, w) {
				continue
			}
			if cfg.Optace && reachable(poIico, r.ID, w.ID) {
				continue
			}
			opts = append(opts, FromStore(w.ID))
		}
		choices[i] = opts
	}

	var out []MemRFCandidate
	var rec func(i int, rfAcc RFMap, consAcc []Constraint)
	rec = func(i int, rfAcc RFMap, consAcc []Constraint) {
		if i == len(loads) {
			result := solver.Solve(consAcc, initial)
			if !result.Ok {
				return
			}
			out = append(out, MemRFCandidate{
				Structure: es.Substitute(result.Sigma),
				RF:        rfAcc,
				Residual:  result.Residual,
			})
			return
		}
		r := loads[i]
		for _, target := range choices[i] {
			cons, contradiction := memConstraintsFor(r, target, es, initial)
			if contradiction {
				continue
			}
			nextRF := rfAcc.With(LoadKey(r.ID), target)
			nextCons := append(append([]Constraint{}, consAcc...), cons...)
			rec(i+1, nextRF, nextCons)
		}
	}
	rec(0, rf, append([]Constraint{}, incoming...))
	return out
}
