// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "sort"

// sortedLocations returns the keys of byLoc sorted by string rendering,
// giving the final-store Cartesian product a fixed iteration order
// (§5 "stable iteration... by location identifier").
func sortedLocations(byLoc map[Location][]Event) []Location {
	out := make([]Location, 0, len(byLoc))
	for loc := range byLoc {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func sortedEvents(es []Event) []Event {
	out := append([]Event{}, es...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// observedFilter returns a predicate selecting locations named in the
// test's observation clause, when ObservedFinalsOnly is set.
func observedFilter(test Test, cfg Config) func(Location) bool {
	if !cfg.ObservedFinalsOnly {
		return func(Location) bool { return true }
	}
	allowed := map[string]bool{}
	for _, o := range test.Observed {
		allowed[o] = true
	}
	return func(l Location) bool { return l.Kind == LocGlobal && allowed[l.Name] }
}

// candidateFinalStores is the per-location final-store candidate set of
// §4.5: under Optace, stores not strictly before any other same-
// location store (the maximal elements of po_iico restricted to that
// location); otherwise every store to that location.
func candidateFinalStores(stores []Event, poIico Relation, optace bool) []Event {
	if !optace {
		return sortedEvents(stores)
	}
	var maximal []Event
	for _, s := range stores {
		isMax := true
		for _, other := range stores {
			if other.ID != s.ID && reachable(poIico, s.ID, other.ID) {
				isMax = false
				break
			}
		}
		if isMax {
			maximal = append(maximal, s)
		}
	}
	return sortedEvents(maximal)
}

// Finalize runs §4.5 on one surviving (structure, RFMap) tuple,
// enumerating every compatible final-store selection and delivering a
// ConcreteExecution for each one that survives the filter, speedcheck,
// and coherence-acyclicity checks.
func Finalize(es EventStructure, rf RFMap, test Test, cfg Config) []ConcreteExecution {
	poIico := es.PoIico()
	stores := memoryStores(es)
	loads := memoryLoads(es)

	byLoc := map[Location][]Event{}
	for _, s := range stores {
		if s.Loc != nil {
			byLoc[*s.Loc] = append(byLoc[*s.Loc], s)
		}
	}

	loadOnly := map[Location]bool{}
	for _, r := range loads {
		if r.Loc == nil {
			continue
		}
		if _, has := byLoc[*r.Loc]; !has {
			loadOnly[*r.Loc] = true
		}
	}

	keep := observedFilter(test, cfg)
	locs := sortedLocations(byLoc)
	var filteredLocs []Location
	for _, l := range locs {
		if keep(l) {
			filteredLocs = append(filteredLocs, l)
		}
	}
	for l := range loadOnly {
		if !keep(l) {
			delete(loadOnly, l)
		}
	}

	candSets := make([][]Event, len(filteredLocs))
	for i, loc := range filteredLocs {
		candSets[i] = candidateFinalStores(byLoc[loc], poIico, cfg.Optace)
	}

	var out []ConcreteExecution
	chosen := make([]Event, len(filteredLocs))
	var rec func(i int)
	rec = func(i int) {
		if i == len(filteredLocs) {
			if c, ok := buildConcrete(es, rf, test, cfg, filteredLocs, chosen, loadOnly, poIico); ok {
				out = append(out, c)
			}
			return
		}
		for _, s := range candSets[i] {
			chosen[i] = s
			rec(i + 1)
		}
	}
	rec(0)
	return out
}

func buildConcrete(es EventStructure, rf RFMap, test Test, cfg Config, locs []Location, chosen []Event, loadOnly map[Location]bool, poIico Relation) (ConcreteExecution, bool) {
	finalRF := rf
	for i, loc := range locs {
		finalRF = finalRF.With(FinalKey(loc), FromStore(chosen[i].ID))
	}
	for loc := range loadOnly {
		finalRF = finalRF.With(FinalKey(loc), FromInit())
	}
	for _, loc := range locs {
		requireFinalLocationEntry(finalRF, loc)
	}
	for loc := range loadOnly {
		requireFinalLocationEntry(finalRF, loc)
	}

	finalState := map[string]int64{}
	for k, v := range test.Initial.Globals {
		finalState[k] = v
	}
	for i, loc := range locs {
		if loc.Kind != LocGlobal {
			continue
		}
		w := chosen[i]
		if w.WriteVal != nil {
			if v, ok := w.WriteVal.Int(); ok {
				finalState[loc.Name] = v
			}
		}
	}

	if cfg.CheckFilter && test.Filter != nil && !test.Filter(finalState) {
		return ConcreteExecution{}, false
	}
	if cfg.SpeedCheck != SpeedOff && test.OutcomePredicate != nil && !test.OutcomePredicate(finalState) {
		return ConcreteExecution{}, false
	}

	lastStoreVbf := NewRelation()
	for i, loc := range locs {
		w := chosen[i]
		for _, s := range byLocation(es, loc) {
			if s.ID != w.ID {
				lastStoreVbf.Add(s.ID, w.ID)
			}
		}
		for _, r := range memoryLoads(es) {
			if r.Loc != nil && r.Loc.Equal(loc) && r.ID != w.ID {
				lastStoreVbf.Add(r.ID, w.ID)
			}
		}
	}

	pco := NewRelation()
	if cfg.InitWrites {
		for _, loc := range locs {
			var initW *Event
			group := byLocation(es, loc)
			for i := range group {
				if group[i].Kind == EventInitWrite {
					initW = &group[i]
					break
				}
			}
			if initW != nil {
				for _, w := range group {
					if w.ID != initW.ID {
						pco.Add(initW.ID, w.ID)
					}
				}
			}
		}
	}
	if cfg.Optace {
		ppoloc := buildPpoLoc(es, poIico)
		conflict := false
		for from, tos := range ppoloc {
			for to := range tos {
				wFrom, hasFrom := storeReadBy(es, finalRF, from)
				wTo, hasTo := storeReadBy(es, finalRF, to)
				if hasFrom && hasTo && wFrom != wTo {
					if reachable(pco, wTo, wFrom) {
						conflict = true
					}
					pco.Add(wFrom, wTo)
				}
			}
		}
		if conflict {
			return ConcreteExecution{}, false
		}
	}
	for from, tos := range lastStoreVbf {
		f, ok := es.EventByID(from)
		if !ok || !f.IsStore() {
			continue
		}
		for to := range tos {
			pco.Add(from, to)
		}
	}
	if HasCycle(pco) {
		return ConcreteExecution{}, false
	}

	return ConcreteExecution{
		Structure:       es,
		RF:              finalRF,
		FinalState:      finalState,
		PoIico:          poIico,
		PpoLoc:          buildPpoLoc(es, poIico),
		StoreLoadVbf:    buildStoreLoadVbf(finalRF),
		InitLoadVbf:     buildInitLoadVbf(es, finalRF),
		AtomicLoadStore: buildAtomicLoadStore(es, poIico),
		LastStoreVbf:    lastStoreVbf,
		Pco:             pco,
	}, true
}

func byLocation(es EventStructure, loc Location) []Event {
	var out []Event
	for _, e := range es.Events {
		if e.IsStore() && e.Loc != nil && e.Loc.Equal(loc) {
			out = append(out, e)
		}
	}
	return out
}

// storeReadBy returns the store a load reads from, via the RFMap.
func storeReadBy(es EventStructure, rf RFMap, load EventID) (EventID, bool) {
	target, ok := rf.Lookup(LoadKey(load))
	if !ok || target.Kind != RFStore {
		return 0, false
	}
	return target.Store, true
}

// buildPpoLoc is §4.5's ppoloc: pairs of memory events sharing a
// location, ordered by po_iico.
func buildPpoLoc(es EventStructure, poIico Relation) Relation {
	out := NewRelation()
	for from, tos := range poIico {
		e1, ok1 := es.EventByID(from)
		if !ok1 || !e1.IsMemoryEvent() || e1.Loc == nil {
			continue
		}
		for to := range tos {
			e2, ok2 := es.EventByID(to)
			if !ok2 || !e2.IsMemoryEvent() || e2.Loc == nil {
				continue
			}
			if e1.Loc.Equal(*e2.Loc) {
				out.Add(from, to)
			}
		}
	}
	return out
}

// buildStoreLoadVbf is §4.5's store_load_vbf.
func buildStoreLoadVbf(rf RFMap) Relation {
	out := NewRelation()
	for key, target := range rf {
		if key.Kind == RFKeyLoad && target.Kind == RFStore {
			out.Add(target.Store, key.Load)
		}
	}
	return out
}

// buildInitLoadVbf is §4.5's init_load_vbf.
func buildInitLoadVbf(es EventStructure, rf RFMap) Relation {
	out := NewRelation()
	for key, target := range rf {
		if key.Kind != RFKeyLoad || target.Kind != RFInit {
			continue
		}
		r, ok := es.EventByID(key.Load)
		if !ok || r.Loc == nil {
			continue
		}
		for _, w := range byLocation(es, *r.Loc) {
			out.Add(r.ID, w.ID)
		}
	}
	return out
}

// buildAtomicLoadStore is §4.5's atomic_load_store: same-location
// atomic read/write pairs in po_iico order with no intervening atomic
// event. AtomicMarker events (standing in for combined RMW/CAS events)
// are excluded per §4.5.
func buildAtomicLoadStore(es EventStructure, poIico Relation) Relation {
	out := NewRelation()
	var atomics []Event
	for _, e := range es.Events {
		if e.Kind == EventAtomicMarker {
			continue
		}
		if e.HasAnnotation(AnnoAtomic) && e.Loc != nil {
			atomics = append(atomics, e)
		}
	}
	for _, r := range atomics {
		if !r.IsLoad() {
			continue
		}
		for _, w := range atomics {
			if !w.IsStore() || !w.Loc.Equal(*r.Loc) {
				continue
			}
			if !reachable(poIico, r.ID, w.ID) {
				continue
			}
			intervening := false
			for _, m := range atomics {
				if m.ID == r.ID || m.ID == w.ID || !m.Loc.Equal(*r.Loc) {
					continue
				}
				if reachable(poIico, r.ID, m.ID) && reachable(poIico, m.ID, w.ID) {
					intervening = true
					break
				}
			}
			if !intervening {
				out.Add(r.ID, w.ID)
			}
		}
	}
	return out
}
