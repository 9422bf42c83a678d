// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "testing"

func runAll(t *testing.T, test Test, cfg Config) ([]ConcreteExecution, bool, int) {
	t.Helper()
	glom, err := GlommedEventStructures(fixtureSemantics{}, test, cfg)
	if err != nil {
		t.Fatalf("GlommedEventStructures: %v", err)
	}
	var concretes []ConcreteExecution
	loopExceeded := 0
	for _, ic := range glom.Structures {
		concretes = CalculateRFWithConstraints(
			test, ic.Structure, ic.Constraints, fixtureSolver{}, cfg,
			func(c ConcreteExecution, acc []ConcreteExecution) []ConcreteExecution {
				return append(acc, c)
			},
			func(acc []ConcreteExecution) []ConcreteExecution {
				loopExceeded++
				return acc
			},
			concretes,
		)
	}
	return concretes, glom.TooFar, loopExceeded
}

// S1 — single-thread straight-line.
func TestScenarioSingleThreadStraightLine(t *testing.T) {
	prog := map[string]CodeBlock{
		"t0": block("t0",
			instr(0, fixtureInstr{kind: "W", loc: "x", val: 1}),
			instr(1, fixtureInstr{kind: "R", loc: "x", varName: "r1"}),
		),
	}
	test := Test{
		Name:        "S1",
		Program:     prog,
		StartPoints: []StartPoint{{Thread: 0, Entry: prog["t0"]}},
		Initial:     InitialState{Globals: map[string]int64{"x": 0}},
	}

	cfg := DefaultConfig()
	cfg.Optace = true
	concretes, tooFar, _ := runAll(t, test, cfg)
	if tooFar {
		t.Fatalf("expected too_far=false")
	}
	if len(concretes) != 1 {
		t.Fatalf("expected exactly 1 concrete execution, got %d", len(concretes))
	}
	c := concretes[0]
	if v, ok := c.FinalValue("x"); !ok || v != 1 {
		t.Fatalf("expected final x=1, got %v (ok=%v)", v, ok)
	}
	var read *Event
	for i, e := range c.Structure.Events {
		if e.Kind == EventMemRead {
			read = &c.Structure.Events[i]
		}
	}
	if read == nil {
		t.Fatalf("no read event found")
	}
	if rv, ok := read.ReadVal.Int(); !ok || rv != 1 {
		t.Fatalf("expected r1=1, got %v (ok=%v)", rv, ok)
	}
}

// S2 — classic message-passing: expect at least the four canonical
// (r1, r2) combinations among delivered concretes.
func TestScenarioMessagePassing(t *testing.T) {
	prog := map[string]CodeBlock{
		"t0": block("t0",
			instr(0, fixtureInstr{kind: "W", loc: "x", val: 1}),
			instr(1, fixtureInstr{kind: "W", loc: "y", val: 1}),
		),
		"t1": block("t1",
			instr(0, fixtureInstr{kind: "R", loc: "y", varName: "r1"}),
			instr(1, fixtureInstr{kind: "R", loc: "x", varName: "r2"}),
		),
	}
	test := Test{
		Name:    "S2",
		Program: prog,
		StartPoints: []StartPoint{
			{Thread: 0, Entry: prog["t0"]},
			{Thread: 1, Entry: prog["t1"]},
		},
		Initial: InitialState{Globals: map[string]int64{"x": 0, "y": 0}},
	}

	concretes, _, _ := runAll(t, test, DefaultConfig())
	seen := map[[2]int64]bool{}
	for _, c := range concretes {
		var r1, r2 int64
		for _, e := range c.Structure.Events {
			if e.Kind != EventMemRead || e.Loc == nil || e.ReadVal == nil {
				continue
			}
			v, ok := e.ReadVal.Int()
			if !ok {
				continue
			}
			switch e.Loc.Name {
			case "y":
				r1 = v
			case "x":
				r2 = v
			}
		}
		seen[[2]int64{r1, r2}] = true
	}
	for _, want := range [][2]int64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		if !seen[want] {
			t.Errorf("missing expected (r1,r2)=%v among delivered concretes", want)
		}
	}
}

// S3 — self-loop with unroll=2: exactly two iterations materialize,
// the third back-jump is truncated, too_far is set, and on-loop-
// exceeded fires.
func TestScenarioSelfLoopUnrollBound(t *testing.T) {
	prog := map[string]CodeBlock{
		"L": block("L",
			instr(0, fixtureInstr{kind: "R", loc: "x", varName: "r1"}, "L"),
			instr(1, fixtureInstr{kind: "Jump", target: "L"}),
		),
	}
	test := Test{
		Name:        "S3",
		Program:     prog,
		StartPoints: []StartPoint{{Thread: 0, Entry: prog["L"]}},
		Initial:     InitialState{Globals: map[string]int64{"x": 0}},
	}

	cfg := DefaultConfig()
	cfg.Unroll = 2
	concretes, tooFar, loopExceeded := runAll(t, test, cfg)
	if !tooFar {
		t.Fatalf("expected too_far=true")
	}
	if loopExceeded < 1 {
		t.Fatalf("expected on-loop-exceeded to fire at least once, got %d", loopExceeded)
	}
	_ = concretes
}

// unroll=0 boundary: any back-jump immediately yields tooFar.
func TestUnrollZeroImmediateTooFar(t *testing.T) {
	prog := map[string]CodeBlock{
		"L": block("L",
			instr(0, fixtureInstr{kind: "R", loc: "x", varName: "r1"}, "L"),
			instr(1, fixtureInstr{kind: "Jump", target: "L"}),
		),
	}
	test := Test{
		Name:        "unroll0",
		Program:     prog,
		StartPoints: []StartPoint{{Thread: 0, Entry: prog["L"]}},
		Initial:     InitialState{Globals: map[string]int64{"x": 0}},
	}
	_, tooFar, loopExceeded := runAll(t, test, DefaultConfig())
	if !tooFar {
		t.Fatalf("expected too_far=true with unroll=0")
	}
	if loopExceeded < 1 {
		t.Fatalf("expected on-loop-exceeded with unroll=0")
	}
}

// Empty thread list with initwrites=true produces exactly one concrete
// with only init-write events.
func TestInitWritesOnlyEmptyThreads(t *testing.T) {
	test := Test{
		Name:    "initwrites-only",
		Program: map[string]CodeBlock{},
		Initial: InitialState{Globals: map[string]int64{"x": 5}},
		Observed: []string{"x"},
	}
	cfg := DefaultConfig()
	cfg.InitWrites = true

	glom, err := GlommedEventStructures(fixtureSemantics{}, test, cfg)
	if err != nil {
		t.Fatalf("GlommedEventStructures: %v", err)
	}
	if len(glom.Structures) != 1 {
		t.Fatalf("expected exactly 1 abstract structure, got %d", len(glom.Structures))
	}
	es := glom.Structures[0].Structure
	for _, e := range es.Events {
		if e.Kind != EventInitWrite {
			t.Fatalf("expected only init-write events, found %v", e.Kind)
		}
	}

	concretes, _, _ := runAll(t, test, cfg)
	if len(concretes) != 1 {
		t.Fatalf("expected exactly 1 concrete execution, got %d", len(concretes))
	}
}

// jump to an undefined label is a fatal user-visible error.
func TestUndefinedLabelIsFatal(t *testing.T) {
	prog := map[string]CodeBlock{
		"t0": block("t0", instr(0, fixtureInstr{kind: "Jump", target: "nowhere"})),
	}
	test := Test{
		Program:     prog,
		StartPoints: []StartPoint{{Thread: 0, Entry: prog["t0"]}},
	}
	_, err := GlommedEventStructures(fixtureSemantics{}, test, DefaultConfig())
	if err == nil {
		t.Fatalf("expected an error for jump to undefined label")
	}
}

// S4 — uniproc violation candidate: a thread stores to x then reads it
// back; with optace=true, check_rfmap prunes "reads from Init" because
// the store intervenes, leaving only "reads from the store" (§4.6).
func TestScenarioUniprocViolationPruned(t *testing.T) {
	prog := map[string]CodeBlock{
		"t0": block("t0",
			instr(0, fixtureInstr{kind: "W", loc: "x", val: 1}),
			instr(1, fixtureInstr{kind: "R", loc: "x", varName: "r1"}),
		),
	}
	test := Test{
		Name:        "S4",
		Program:     prog,
		StartPoints: []StartPoint{{Thread: 0, Entry: prog["t0"]}},
		Initial:     InitialState{Globals: map[string]int64{"x": 0}},
	}

	cfg := DefaultConfig()
	cfg.Optace = true
	concretes, tooFar, _ := runAll(t, test, cfg)
	if tooFar {
		t.Fatalf("expected too_far=false")
	}
	if len(concretes) != 1 {
		t.Fatalf("expected exactly 1 surviving concrete, got %d", len(concretes))
	}
	var read *Event
	for i, e := range concretes[0].Structure.Events {
		if e.Kind == EventMemRead {
			read = &concretes[0].Structure.Events[i]
		}
	}
	if read == nil {
		t.Fatalf("no read event found")
	}
	target, ok := concretes[0].RF.Lookup(LoadKey(read.ID))
	if !ok || target.Kind != RFStore {
		t.Fatalf("expected the surviving read to source from the store, got %+v (ok=%v)", target, ok)
	}
}

// S5 — coherence cycle: two threads each issue two ordered reads of x;
// two other threads each contribute one store. The reads-from tuple
// that would force w1 before w2 on one thread and w2 before w1 on the
// other is a coherence cycle and must never appear among delivered
// concretes (§4.5 step 5-6, §8 invariant 3).
func TestScenarioCoherenceCycleRejected(t *testing.T) {
	prog := map[string]CodeBlock{
		"w1": block("w1", instr(0, fixtureInstr{kind: "W", loc: "x", val: 1})),
		"w2": block("w2", instr(0, fixtureInstr{kind: "W", loc: "x", val: 2})),
		"ra": block("ra",
			instr(0, fixtureInstr{kind: "R", loc: "x", varName: "ra1"}),
			instr(1, fixtureInstr{kind: "R", loc: "x", varName: "ra2"}),
		),
		"rb": block("rb",
			instr(0, fixtureInstr{kind: "R", loc: "x", varName: "rb1"}),
			instr(1, fixtureInstr{kind: "R", loc: "x", varName: "rb2"}),
		),
	}
	test := Test{
		Name:    "S5",
		Program: prog,
		StartPoints: []StartPoint{
			{Thread: 0, Entry: prog["w1"]},
			{Thread: 1, Entry: prog["w2"]},
			{Thread: 2, Entry: prog["ra"]},
			{Thread: 3, Entry: prog["rb"]},
		},
		Initial: InitialState{Globals: map[string]int64{"x": 0}},
	}

	cfg := DefaultConfig()
	cfg.Optace = true
	concretes, _, _ := runAll(t, test, cfg)

	if len(concretes) == 0 {
		t.Fatalf("expected at least one surviving concrete execution")
	}
	for _, c := range concretes {
		if HasCycle(c.Pco) {
			t.Fatalf("delivered concrete has a cyclic pco: %+v", c.Pco)
		}
	}
}

// S6 — filter rejection.
func TestScenarioFilterRejection(t *testing.T) {
	prog := map[string]CodeBlock{
		"t0": block("t0", instr(0, fixtureInstr{kind: "R", loc: "x", varName: "r1"})),
	}
	test := Test{
		Program:     prog,
		StartPoints: []StartPoint{{Thread: 0, Entry: prog["t0"]}},
		Initial:     InitialState{Globals: map[string]int64{"x": 1}},
		Filter: func(final map[string]int64) bool {
			return final["x"] == 0
		},
	}
	cfg := DefaultConfig()
	cfg.CheckFilter = true
	concretes, _, _ := runAll(t, test, cfg)
	if len(concretes) != 0 {
		t.Fatalf("expected filter to reject all concretes, got %d", len(concretes))
	}
}
