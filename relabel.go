// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Relabel canonicalizes event identifiers so memory events occupy the
// contiguous prefix 0..n_mem-1 and every other event follows after
// (§4.2). Running it twice is a no-op: the second pass observes ids
// already in canonical order and returns the identical bijection.
func Relabel(es EventStructure) EventStructure {
	mapping := make(map[EventID]EventID, len(es.Events))

	memCount := EventID(0)
	for _, e := range es.Events {
		if e.IsMemoryEvent() {
			memCount++
		}
	}

	nextMem := EventID(0)
	nextOther := memCount
	newEvents := make([]Event, len(es.Events))
	for i, e := range es.Events {
		var id EventID
		if e.IsMemoryEvent() {
			id = nextMem
			nextMem++
		} else {
			id = nextOther
			nextOther++
		}
		mapping[e.ID] = id
		e.ID = id
		newEvents[i] = e
	}

	return EventStructure{
		Events:  newEvents,
		DataDep: relabelRelation(es.DataDep, mapping),
		CtrlDep: relabelRelation(es.CtrlDep, mapping),
		Threads: es.Threads,
	}
}

func relabelRelation(r Relation, mapping map[EventID]EventID) Relation {
	out := NewRelation()
	for from, tos := range r {
		nf, ok := mapping[from]
		if !ok {
			nf = from
		}
		for to := range tos {
			nt, ok := mapping[to]
			if !ok {
				nt = to
			}
			out.Add(nf, nt)
		}
	}
	return out
}
