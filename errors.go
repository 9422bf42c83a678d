// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "fmt"

// invariantViolation panics on the internal-invariant-violation class
// of error from §7: bugs in a collaborator or this core, never a
// candidate-level rejection.
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("litmuscore: invariant violation: "+format, args...))
}

// requireLocation asserts the §7 "missing location on a memory event"
// invariant.
func requireLocation(e Event) {
	if e.IsMemoryEvent() && e.Loc == nil {
		invariantViolation("memory event %d has no location", e.ID)
	}
}

// requireTotalRegisterOrder asserts §4.3's invariant that register
// writes to the same register on the same thread are totally ordered
// by program order — two distinct writes must never share a PO index.
func requireTotalRegisterOrder(es EventStructure) {
	type regPO struct {
		loc Location
		po  int
	}
	seen := map[regPO]EventID{}
	for _, e := range es.Events {
		if e.Kind != EventRegWrite || e.Loc == nil {
			continue
		}
		key := regPO{loc: *e.Loc, po: e.PO}
		if prior, ok := seen[key]; ok && prior != e.ID {
			invariantViolation("register writes %d and %d share PO %d on thread %d", prior, e.ID, e.PO, e.Thread)
		}
		seen[key] = e.ID
	}
}

// requireFinalLocationEntry asserts §7's "absent RFMap entry for a
// declared final location" invariant once a ConcreteExecution is
// assembled.
func requireFinalLocationEntry(rf RFMap, loc Location) {
	if _, ok := rf.Lookup(FinalKey(loc)); !ok {
		invariantViolation("no RFMap entry for declared final location %s", loc)
	}
}
