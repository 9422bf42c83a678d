// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Cycle detection is hand-rolled (Tarjan's SCC) rather than delegated
// to a graph library: the graphs here are the handful of events in one
// candidate execution, and §9 calls out "Tarjan or Kosaraju SCC over a
// small directed graph" as the intended implementation shape rather
// than a general-purpose graph dependency.

type tarjanState struct {
	rel     Relation
	index   map[EventID]int
	low     map[EventID]int
	onStack map[EventID]bool
	stack   []EventID
	counter int
	sccs    [][]EventID
}

func tarjanSCC(rel Relation, nodes []EventID) [][]EventID {
	st := &tarjanState{
		rel:     rel,
		index:   map[EventID]int{},
		low:     map[EventID]int{},
		onStack: map[EventID]bool{},
	}
	for _, n := range nodes {
		if _, seen := st.index[n]; !seen {
			st.strongConnect(n)
		}
	}
	return st.sccs
}

func (st *tarjanState) strongConnect(v EventID) {
	st.index[v] = st.counter
	st.low[v] = st.counter
	st.counter++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for w := range st.rel[v] {
		if _, seen := st.index[w]; !seen {
			st.strongConnect(w)
			if st.low[w] < st.low[v] {
				st.low[v] = st.low[w]
			}
		} else if st.onStack[w] {
			if st.index[w] < st.low[v] {
				st.low[v] = st.index[w]
			}
		}
	}

	if st.low[v] == st.index[v] {
		var comp []EventID
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		st.sccs = append(st.sccs, comp)
	}
}

func relationNodes(rels ...Relation) []EventID {
	seen := map[EventID]bool{}
	var out []EventID
	for _, rel := range rels {
		for from, tos := range rel {
			if !seen[from] {
				seen[from] = true
				out = append(out, from)
			}
			for to := range tos {
				if !seen[to] {
					seen[to] = true
					out = append(out, to)
				}
			}
		}
	}
	return out
}

// HasCycle reports whether rel contains a cycle: either a self-loop or
// a strongly-connected component with more than one member.
func HasCycle(rel Relation) bool {
	for from, tos := range rel {
		if tos[from] {
			return true
		}
	}
	for _, comp := range tarjanSCC(rel, relationNodes(rel)) {
		if len(comp) > 1 {
			return true
		}
	}
	return false
}

// RFMapIsCyclic is §4.6's rfmap_is_cyclic: the union of intra-causality
// and {(w,r) | RFMap(Load r) = Store w} is checked for cycles. Used
// only in the when_unsolved debug assertion (§4.4, §9).
func RFMapIsCyclic(es EventStructure, rf RFMap) bool {
	rel := es.PoIico()
	for key, target := range rf {
		if key.Kind != RFKeyLoad || target.Kind != RFStore {
			continue
		}
		rel.Add(target.Store, key.Load)
	}
	return HasCycle(rel)
}

// CheckRFMap is §4.6's check_rfmap, run only when Optace is enabled:
// for every memory load→store edge, reject if a store to the same
// location intervenes between them in po_iico; for every init-read,
// reject if a store to the same location precedes the load on its own
// thread.
func CheckRFMap(es EventStructure, rf RFMap) bool {
	poIico := es.PoIico()
	for key, target := range rf {
		if key.Kind != RFKeyLoad {
			continue
		}
		r, ok := es.EventByID(key.Load)
		if !ok || r.Loc == nil {
			continue
		}

		switch target.Kind {
		case RFStore:
			w, ok := es.EventByID(target.Store)
			if !ok {
				continue
			}
			for _, s := range es.MemoryEvents() {
				if !s.IsStore() || s.ID == w.ID || s.Loc == nil || !s.Loc.Equal(*r.Loc) {
					continue
				}
				if reachable(poIico, w.ID, s.ID) && reachable(poIico, s.ID, r.ID) {
					return false
				}
			}
		case RFInit:
			for _, s := range es.MemoryEvents() {
				if !s.IsStore() || s.Thread != r.Thread || s.Loc == nil || !s.Loc.Equal(*r.Loc) {
					continue
				}
				if reachable(poIico, s.ID, r.ID) {
					return false
				}
			}
		}
	}
	return true
}
