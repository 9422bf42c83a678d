// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// The monadic composer of §2/§9 is implemented here as "a vector of
// partial candidates" (the strategy §9 names as an alternative to
// forcing the generic Cont/Eff machinery to encode top-level
// nondeterminism): each partial trace is a Candidate, and parallel
// composition/choice/sequencing are plain slice transformers over
// []Candidate. The Eff substrate in cont.go/effect.go is still used
// underneath one candidate's single-trace instruction fold (Reader for
// its environment, State for its event-id allocator, Writer for the
// events and constraints it emits) — composition of candidates themselves is not
// forced through it.

// visitMap is the path-local label→visit-count map of §9. Copied on
// every CondJump fork so sibling branches never share counters.
type visitMap map[string]int

func (v visitMap) clone() visitMap {
	out := make(visitMap, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

func (v visitMap) bump(label string) (visitMap, int) {
	next := v.clone()
	next[label]++
	return next, next[label]
}

// Candidate is one partial (or, once out of §4.1, complete) abstract
// trace: the event structure built so far, the constraints accumulated
// along it, the next free event id, the path-local visit counters, and
// whether this trace was abandoned by the unroll bound.
type Candidate struct {
	Structure   EventStructure
	Constraints []Constraint
	NextID      EventID
	PO          int
	Visits      visitMap
	// LastEvent is the most recently emitted event id per thread, used
	// to thread program-order edges into DataDep as new events arrive.
	LastEvent map[int]EventID
	TooFar    bool
}

// unit is the composer's identity candidate: no events, no constraints,
// a fresh visit map.
func unit(threads []int) Candidate {
	return Candidate{Structure: NewEventStructure(threads), Visits: visitMap{}, LastEvent: map[int]EventID{}}
}

// forkCandidate returns a copy of c with every mutable reference type
// (relations, visit map, last-event map) deep-copied, so the two sides
// of a CondJump fork never alias each other's state (§3, §9).
func forkCandidate(c Candidate) Candidate {
	c.Visits = c.Visits.clone()
	c.Structure.DataDep = c.Structure.DataDep.Clone()
	c.Structure.CtrlDep = c.Structure.CtrlDep.Clone()
	last := make(map[int]EventID, len(c.LastEvent))
	for k, v := range c.LastEvent {
		last[k] = v
	}
	c.LastEvent = last
	events := make([]Event, len(c.Structure.Events))
	copy(events, c.Structure.Events)
	c.Structure.Events = events
	return c
}

// withEvent returns a copy of c with e appended, NextID advanced, and
// a program-order edge recorded from the previous event on e's thread
// (if any) into DataDep — the union of DataDep and CtrlDep is po_iico
// (§4.5), which must already carry full per-thread ordering.
func (c Candidate) withEvent(e Event) Candidate {
	events := make([]Event, len(c.Structure.Events)+1)
	copy(events, c.Structure.Events)
	events[len(events)-1] = e
	c.Structure.Events = events
	c.NextID++

	dataDep := c.Structure.DataDep.Clone()
	if prev, ok := c.LastEvent[e.Thread]; ok {
		dataDep.Add(prev, e.ID)
	}
	c.Structure.DataDep = dataDep

	last := make(map[int]EventID, len(c.LastEvent)+1)
	for k, v := range c.LastEvent {
		last[k] = v
	}
	last[e.Thread] = e.ID
	c.LastEvent = last

	return c
}

// withConstraint returns a copy of c with constraint appended.
func (c Candidate) withConstraint(con Constraint) Candidate {
	cs := make([]Constraint, len(c.Constraints)+1)
	copy(cs, c.Constraints)
	cs[len(cs)-1] = con
	c.Constraints = cs
	return c
}

// parallel composes the partial candidates of two independently-run
// threads into the cross product, merging their event structures
// (disjoint thread sets; mergeCandidates shifts b's event ids past a's
// NextID so they never collide).
func parallel(a, b []Candidate) []Candidate {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]Candidate, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			out = append(out, mergeCandidates(ca, cb))
		}
	}
	return out
}

// shiftCandidate returns a copy of c with every event id it carries —
// Event.ID, the LastEvent bookkeeping, and every DataDep/CtrlDep edge —
// raised by offset. Two candidates folded independently (one per
// thread, each starting its own NextID at 0) allocate overlapping id
// ranges; shiftCandidate is what mergeCandidates uses to make one
// side's range disjoint from the other's before the event slices are
// concatenated and the relations unioned.
func shiftCandidate(c Candidate, offset EventID) Candidate {
	if offset == 0 {
		return c
	}
	events := make([]Event, len(c.Structure.Events))
	for i, e := range c.Structure.Events {
		e.ID += offset
		events[i] = e
	}
	c.Structure.Events = events
	c.Structure.DataDep = shiftRelation(c.Structure.DataDep, offset)
	c.Structure.CtrlDep = shiftRelation(c.Structure.CtrlDep, offset)

	last := make(map[int]EventID, len(c.LastEvent))
	for thread, id := range c.LastEvent {
		last[thread] = id + offset
	}
	c.LastEvent = last
	c.NextID += offset
	return c
}

func shiftRelation(r Relation, offset EventID) Relation {
	out := make(Relation, len(r))
	for from, tos := range r {
		next := make(map[EventID]bool, len(tos))
		for to := range tos {
			next[to+offset] = true
		}
		out[from+offset] = next
	}
	return out
}

func mergeCandidates(a, b Candidate) Candidate {
	b = shiftCandidate(b, a.NextID)

	events := make([]Event, 0, len(a.Structure.Events)+len(b.Structure.Events))
	events = append(events, a.Structure.Events...)
	events = append(events, b.Structure.Events...)

	threads := append([]int{}, a.Structure.Threads...)
	for _, t := range b.Structure.Threads {
		found := false
		for _, at := range threads {
			if at == t {
				found = true
				break
			}
		}
		if !found {
			threads = append(threads, t)
		}
	}

	merged := Candidate{
		Structure: EventStructure{
			Events:  events,
			DataDep: a.Structure.DataDep.Union(b.Structure.DataDep),
			CtrlDep: a.Structure.CtrlDep.Union(b.Structure.CtrlDep),
			Threads: threads,
		},
		Constraints: append(append([]Constraint{}, a.Constraints...), b.Constraints...),
		NextID:      b.NextID,
		Visits:      mergeVisits(a.Visits, b.Visits),
		LastEvent:   mergeLastEvent(a.LastEvent, b.LastEvent),
		TooFar:      a.TooFar || b.TooFar,
	}
	return merged
}

// mergeLastEvent unions two per-thread last-event maps. a and b always
// carry disjoint thread sets (each thread is folded by exactly one
// foldThread call before parallel composes the results), so there is
// never a key collision to resolve; b's ids have already been shifted
// by shiftCandidate by the time this runs.
func mergeLastEvent(a, b map[int]EventID) map[int]EventID {
	out := make(map[int]EventID, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeVisits(a, b visitMap) visitMap {
	out := a.clone()
	for k, v := range b {
		if v > out[k] {
			out[k] = v
		}
	}
	return out
}

// sequenceThen threads each candidate in cs through next, flattening
// the results — the candidate-level analogue of Bind/Then on Cont.
func sequenceThen(cs []Candidate, next func(Candidate) []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		out = append(out, next(c)...)
	}
	return out
}

// choice forks c into its true and false continuations (§4.1
// CondJump): both branches are explored, each carrying an independent
// copy of the visit map, and the solver later discards whichever side
// a contradictory constraint makes infeasible.
func choice(c Candidate, guard SymVal, onTrue, onFalse func(Candidate) []Candidate) []Candidate {
	trueVar, isVar := guard.Name()
	trueC := forkCandidate(c)
	falseC := forkCandidate(c)
	if isVar {
		trueC = trueC.withConstraint(AssignEqual(trueVar, Const(1)))
		falseC = falseC.withConstraint(AssignEqual(trueVar, Const(0)))
	}
	out := make([]Candidate, 0)
	out = append(out, onTrue(trueC)...)
	out = append(out, onFalse(falseC)...)
	return out
}

// tooFar marks c as abandoned by the unroll bound and attaches the
// Unroll(label) sentinel constraint (§4.1, §3).
func tooFar(c Candidate, label string) Candidate {
	c.TooFar = true
	return c.withConstraint(Unroll(label))
}

// initwrites composes one EventInitWrite event per observed location
// in parallel with cs, when the option is enabled (§4.1, §6).
func initwrites(cs []Candidate, threads []int, locs []string, enabled bool) []Candidate {
	if !enabled || len(locs) == 0 {
		return cs
	}
	seed := unit(threads)
	for _, loc := range locs {
		l := GlobalLoc(loc)
		wv := Const(0)
		e := NewEvent(seed.NextID, -1, -1, EventInitWrite)
		e.Loc = &l
		e.WriteVal = &wv
		seed = seed.withEvent(e)
	}
	return parallel([]Candidate{seed}, cs)
}

// getOutputs projects the composer's internal candidates to the
// (constraints, event-structure) pairs §6's external contract names.
func getOutputs(cs []Candidate) []struct {
	Constraints []Constraint
	Structure   EventStructure
} {
	out := make([]struct {
		Constraints []Constraint
		Structure   EventStructure
	}, len(cs))
	for i, c := range cs {
		out[i] = struct {
			Constraints []Constraint
			Structure   EventStructure
		}{Constraints: c.Constraints, Structure: c.Structure}
	}
	return out
}
