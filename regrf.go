// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// ResolveRegisterRF builds the unique register reads-from for es,
// emits the resulting equality constraints, and solves them (§4.3).
//
// "Strictly before" is taken over program-order index within a thread,
// which §4.3 relies on being a total order for same-thread same-
// register writes (an invariant of the semantics module, asserted by
// requireTotalRegisterOrder).
func ResolveRegisterRF(es EventStructure, initial InitialState, incoming []Constraint, solver Solver) (EventStructure, RFMap, []Constraint, bool) {
	requireTotalRegisterOrder(es)
	for _, e := range es.Events {
		requireLocation(e)
	}

	rf := NewRFMap()
	constraints := append([]Constraint{}, incoming...)

	lastWriteTo := func(thread int, loc Location, beforePO int) (Event, bool) {
		var best Event
		found := false
		for _, e := range es.Events {
			if e.Kind != EventRegWrite || e.Thread != thread {
				continue
			}
			if e.Loc == nil || !e.Loc.Equal(loc) {
				continue
			}
			if e.PO >= beforePO {
				continue
			}
			if !found || e.PO > best.PO {
				best, found = e, true
			}
		}
		return best, found
	}

	lastWriteOverall := func(thread int, loc Location) (Event, bool) {
		return lastWriteTo(thread, loc, 1<<30)
	}

	for _, r := range es.Events {
		if r.Kind != EventRegRead || r.Loc == nil {
			continue
		}
		var readVar string
		var isVar bool
		if r.ReadVal != nil {
			readVar, isVar = r.ReadVal.Name()
		}

		if w, ok := lastWriteTo(r.Thread, *r.Loc, r.PO); ok {
			rf = rf.With(LoadKey(r.ID), FromStore(w.ID))
			if isVar && w.WriteVal != nil {
				constraints = append(constraints, AssignEqual(readVar, *w.WriteVal))
			}
			continue
		}

		rf = rf.With(LoadKey(r.ID), FromInit())
		if isVar {
			initVal := initial.RegisterValue(r.Thread, r.Loc.Name)
			constraints = append(constraints, AssignEqual(readVar, Const(initVal)))
		}
	}

	seenLoc := map[Location]bool{}
	for _, e := range es.Events {
		if e.Kind != EventRegWrite || e.Loc == nil || seenLoc[*e.Loc] {
			continue
		}
		seenLoc[*e.Loc] = true
		if w, ok := lastWriteOverall(e.Thread, *e.Loc); ok {
			rf = rf.With(FinalKey(*e.Loc), FromStore(w.ID))
		}
	}

	result := solver.Solve(constraints, initial)
	if !result.Ok {
		return EventStructure{}, nil, nil, false
	}
	return es.Substitute(result.Sigma), rf, result.Residual, true
}
