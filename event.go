// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// EventKind enumerates the occurrences the instruction-set semantics
// module may attach to a program-order slot (§3).
type EventKind uint8

const (
	EventMemRead EventKind = iota
	EventMemWrite
	EventRegRead
	EventRegWrite
	EventBarrier
	EventAtomicMarker
	EventInitWrite
)

// IsMemory reports whether k occupies the memory-event id prefix after
// relabelling (§4.2): reads, writes, atomic markers and init-writes all
// address a (possibly symbolic) memory location; register events and
// barriers do not.
func (k EventKind) IsMemory() bool {
	switch k {
	case EventMemRead, EventMemWrite, EventAtomicMarker, EventInitWrite:
		return true
	default:
		return false
	}
}

// Annotation marks instruction-set-specific flags on an event, e.g.
// acquire/release/exclusive ordering on the instruction set that
// produced it (§3). The core reads only AnnoAtomic (atomic_load_store,
// finalize.go); the rest it carries through to the axiomatic-model
// evaluator.
type Annotation string

const (
	AnnoAcquire  Annotation = "acquire"
	AnnoRelease  Annotation = "release"
	AnnoExclusive Annotation = "exclusive"
	AnnoAtomic    Annotation = "atomic"
)

// EventID identifies one event within an EventStructure. Before
// relabelling ids are assigned by the instruction driver in creation
// order; after relabelling (§4.2) memory events occupy 0..n_mem-1.
type EventID int

// Event is one atomic occurrence in a candidate execution.
type Event struct {
	ID     EventID
	Thread int
	PO     int // program-order index within Thread
	Kind   EventKind

	Loc      *Location // nil when Kind carries no location
	ReadVal  *SymVal   // nil unless Kind reads a value
	WriteVal *SymVal   // nil unless Kind writes a value

	Annotations map[Annotation]bool
}

// NewEvent builds an Event with an empty annotation set.
func NewEvent(id EventID, thread, po int, kind EventKind) Event {
	return Event{ID: id, Thread: thread, PO: po, Kind: kind, Annotations: map[Annotation]bool{}}
}

// HasAnnotation reports whether a is set on e.
func (e Event) HasAnnotation(a Annotation) bool { return e.Annotations[a] }

// WithAnnotation returns a copy of e with a added to its annotation set.
func (e Event) WithAnnotation(a Annotation) Event {
	out := e.Annotations
	next := make(map[Annotation]bool, len(out)+1)
	for k, v := range out {
		next[k] = v
	}
	next[a] = true
	e.Annotations = next
	return e
}

// IsMemoryEvent reports whether e addresses a memory location.
func (e Event) IsMemoryEvent() bool { return e.Kind.IsMemory() }

// IsLoad reports whether e is a read of any kind (memory or register).
func (e Event) IsLoad() bool { return e.Kind == EventMemRead || e.Kind == EventRegRead }

// IsStore reports whether e is a write of any kind (memory, register,
// or an init-write).
func (e Event) IsStore() bool {
	return e.Kind == EventMemWrite || e.Kind == EventRegWrite || e.Kind == EventInitWrite
}

// Substitute applies sigma to e's location and value atoms, returning
// a fresh Event (events are never mutated in place, §3 "Lifecycles").
func (e Event) Substitute(sigma map[string]int64) Event {
	if e.Loc != nil {
		l := e.Loc.Substitute(sigma)
		e.Loc = &l
	}
	if e.ReadVal != nil {
		v := e.ReadVal.Substitute(sigma)
		e.ReadVal = &v
	}
	if e.WriteVal != nil {
		v := e.WriteVal.Substitute(sigma)
		e.WriteVal = &v
	}
	return e
}

// Relation is a set of ordered event-id pairs, e.g. intra-causality or
// a derived relation such as po_iico or pco (§3, §4.5).
type Relation map[EventID]map[EventID]bool

// NewRelation builds an empty Relation.
func NewRelation() Relation { return Relation{} }

// Add inserts the edge from→to.
func (r Relation) Add(from, to EventID) {
	if r[from] == nil {
		r[from] = map[EventID]bool{}
	}
	r[from][to] = true
}

// Has reports whether the edge from→to is present.
func (r Relation) Has(from, to EventID) bool { return r[from][to] }

// Clone returns a deep-enough copy of r: a mutation via Add on the
// clone never affects r. Needed wherever a candidate trace forks
// (§4.1 CondJump) and both branches must observe an independent
// relation from that point on.
func (r Relation) Clone() Relation {
	out := make(Relation, len(r))
	for from, tos := range r {
		next := make(map[EventID]bool, len(tos))
		for to := range tos {
			next[to] = true
		}
		out[from] = next
	}
	return out
}

// Union returns a new Relation containing every edge of r and other.
func (r Relation) Union(other Relation) Relation {
	out := NewRelation()
	for from, tos := range r {
		for to := range tos {
			out.Add(from, to)
		}
	}
	for from, tos := range other {
		for to := range tos {
			out.Add(from, to)
		}
	}
	return out
}

// Edges returns every (from, to) pair in r, in no particular order;
// callers that need determinism sort the result themselves.
func (r Relation) Edges() [][2]EventID {
	out := make([][2]EventID, 0, len(r))
	for from, tos := range r {
		for to := range tos {
			out = append(out, [2]EventID{from, to})
		}
	}
	return out
}

// EventStructure is a set of events plus the two intra-thread relations
// and participating thread list (§3).
type EventStructure struct {
	Events  []Event
	DataDep Relation // intra-causality-data
	CtrlDep Relation // intra-causality-control
	Threads []int
}

// NewEventStructure builds an empty structure over the given threads.
func NewEventStructure(threads []int) EventStructure {
	return EventStructure{DataDep: NewRelation(), CtrlDep: NewRelation(), Threads: threads}
}

// EventByID returns the event with the given id, or false if absent.
func (es EventStructure) EventByID(id EventID) (Event, bool) {
	for _, e := range es.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// MemoryEvents returns the subsequence of es.Events that are memory
// events, preserving relative order.
func (es EventStructure) MemoryEvents() []Event {
	out := make([]Event, 0, len(es.Events))
	for _, e := range es.Events {
		if e.IsMemoryEvent() {
			out = append(out, e)
		}
	}
	return out
}

// PoIico returns the union of DataDep and CtrlDep (§4.5).
func (es EventStructure) PoIico() Relation {
	return es.DataDep.Union(es.CtrlDep)
}

// Substitute applies sigma to every event in es, returning a fresh
// structure; relations are keyed by event id, which substitution never
// changes, so they are carried over unmodified.
func (es EventStructure) Substitute(sigma map[string]int64) EventStructure {
	events := make([]Event, len(es.Events))
	for i, e := range es.Events {
		events[i] = e.Substitute(sigma)
	}
	es.Events = events
	return es
}
