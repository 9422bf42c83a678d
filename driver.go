// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "fmt"

// DriverEnv is the read-only per-thread environment instruction
// semantics observe via Ask (§4.1): which thread is executing and the
// test's initial store snapshot.
type DriverEnv struct {
	Thread  int
	Initial InitialState
}

// DriverEmission is one item a semantics fragment Tells while folding
// one instruction: either a new event or a new constraint (§9's Writer
// accumulation of per-instruction output).
type DriverEmission struct {
	Event      *Event
	Constraint *Constraint
}

// EmitEvent mints a fresh event id from the driver's State effect,
// stamps it onto ev, Tells the result, and returns the id — the
// primitive instruction semantics use to attach an event to the trace
// they are building.
func EmitEvent(ev Event) Eff[EventID] {
	return GetState[EventID, EventID](func(next EventID) Eff[EventID] {
		ev.ID = next
		emission := DriverEmission{Event: &ev}
		return PutState[EventID, EventID](next+1, TellWriter[DriverEmission, EventID](emission, Pure[EventID](next)))
	})
}

// EmitConstraint Tells a constraint without allocating an event id —
// the primitive for Assign/Unroll/ReadInit attachments.
func EmitConstraint(c Constraint) Eff[struct{}] {
	return TellWriter[DriverEmission, struct{}](DriverEmission{Constraint: &c}, Pure[struct{}](struct{}{}))
}

// AskDriverEnv reads the current thread/initial-state environment.
func AskDriverEnv() Eff[DriverEnv] {
	return Perform[Ask[DriverEnv], DriverEnv](Ask[DriverEnv]{})
}

func blockAddr(block CodeBlock) int {
	if len(block.Instructions) == 0 {
		return 0
	}
	return block.Instructions[0].Addr
}

// walkResult is the outcome of folding over one contiguous run of
// instructions: the surviving candidates it produced (traces abandoned
// by the unroll bound are still present, marked TooFar, per §4.1) and
// whether any trace along the way was truncated.
type walkResult struct {
	Candidates []Candidate
	TooFar     bool
}

func mergeWalk(a, b walkResult) walkResult {
	return walkResult{
		Candidates: append(append([]Candidate{}, a.Candidates...), b.Candidates...),
		TooFar:     a.TooFar || b.TooFar,
	}
}

// applyEmissions folds a fragment's Written emissions into c. Events go
// through withEvent so each new event is also threaded into DataDep as
// a program-order successor of the last event on its thread (po_iico,
// §4.5, must carry full per-thread ordering, not just explicit data/
// control edges).
func applyEmissions(c Candidate, emissions []DriverEmission) Candidate {
	for _, em := range emissions {
		if em.Event != nil {
			c = c.withEvent(*em.Event)
		}
		if em.Constraint != nil {
			c = c.withConstraint(*em.Constraint)
		}
	}
	return c
}

// runInstruction drives one instruction's semantics fragment to
// completion, combining the Reader (environment), State (event-id
// allocator) and Writer (emitted events/constraints) effects it may
// use, plus the Error effect for any internal Throw the semantics
// module itself chooses to raise (§6 collaborator contract).
func runInstruction(sem Semantics, ctx InstrContext, env DriverEnv, nextID EventID) DriverResult[BranchVerdict, EventID, DriverEmission] {
	frag := sem.BuildSemantics(ctx)
	return RunDriverEffects[DriverEnv, EventID, DriverEmission, BranchVerdict](env, nextID, frag)
}

// walkBlock folds over block starting at idx, following Next verdicts
// in place and delegating Jump/CondJump verdicts to resolveJump /
// resolveCondJump (§4.1).
func walkBlock(sem Semantics, test Test, cfg Config, env DriverEnv, thread int, block CodeBlock, idx int, c Candidate) (walkResult, error) {
	for idx < len(block.Instructions) {
		instr := block.Instructions[idx]
		label := ""
		if len(instr.Labels) > 0 {
			label = instr.Labels[0]
		}
		ctx := InstrContext{
			PO:          c.PO,
			Thread:      thread,
			Instruction: instr,
			UnrollCount: c.Visits[label],
			Labels:      instr.Labels,
		}
		dr := runInstruction(sem, ctx, env, c.NextID)
		if errLabel, isErr := dr.Value.GetLeft(); isErr {
			return walkResult{}, fmt.Errorf("litmuscore: %s", errLabel)
		}
		verdict, _ := dr.Value.GetRight()
		c = applyEmissions(c, dr.Written)
		c.NextID = dr.Visits
		c.PO++

		switch verdict.Kind {
		case BranchNext:
			idx++
			continue
		case BranchJump:
			return resolveJump(sem, test, cfg, env, thread, c, instr.Addr, verdict.Label)
		case BranchCondJump:
			return resolveCondJump(sem, test, cfg, env, thread, c, instr, idx, block, verdict)
		}
	}
	return walkResult{Candidates: []Candidate{c}}, nil
}

// resolveJump validates the target label, applies the back-jump /
// unroll-bound rule, and either abandons the trace (tagging it TooFar)
// or continues walking the target block (§4.1).
func resolveJump(sem Semantics, test Test, cfg Config, env DriverEnv, thread int, c Candidate, fromAddr int, label string) (walkResult, error) {
	block, ok := test.Program[label]
	if !ok {
		return walkResult{}, fmt.Errorf("litmuscore: jump to undefined label %q", label)
	}
	if blockAddr(block) <= fromAddr {
		next, count := c.Visits.bump(label)
		c.Visits = next
		if count > cfg.Unroll {
			cfg.warnLoopLimit(label, cfg.Unroll)
			return walkResult{Candidates: []Candidate{tooFar(c, label)}, TooFar: true}, nil
		}
	}
	return walkBlock(sem, test, cfg, env, thread, block, 0, c)
}

// resolveCondJump forks c on the (possibly symbolic) guard and explores
// both the jump and fall-through continuations (§4.1).
func resolveCondJump(sem Semantics, test Test, cfg Config, env DriverEnv, thread int, c Candidate, instr Instruction, idx int, block CodeBlock, verdict BranchVerdict) (walkResult, error) {
	trueC := forkCandidate(c)
	falseC := forkCandidate(c)
	if name, isVar := verdict.Guard.Name(); isVar {
		trueC = trueC.withConstraint(AssignEqual(name, Const(1)))
		falseC = falseC.withConstraint(AssignEqual(name, Const(0)))
	}

	trueRes, err := resolveJump(sem, test, cfg, env, thread, trueC, instr.Addr, verdict.Label)
	if err != nil {
		return walkResult{}, err
	}
	falseRes, err := walkBlock(sem, test, cfg, env, thread, block, idx+1, falseC)
	if err != nil {
		return walkResult{}, err
	}
	return mergeWalk(trueRes, falseRes), nil
}

// foldThread executes §4.1 for a single thread's start point, returning
// the (constraint-set, event-structure) candidates it reaches.
func foldThread(sem Semantics, test Test, cfg Config, sp StartPoint) (walkResult, error) {
	env := DriverEnv{Thread: sp.Thread, Initial: test.Initial}
	start := unit([]int{sp.Thread})
	return walkBlock(sem, test, cfg, env, sp.Thread, sp.Entry, 0, start)
}

// RunDriver executes §4.1 across every thread's start point, composing
// the per-thread results in parallel, and — when cfg.InitWrites is set
// — seeding one EventInitWrite per observed location.
func RunDriver(sem Semantics, test Test) (candidates []Candidate, tooFar bool, err error) {
	return RunDriverWithConfig(sem, test, DefaultConfig())
}

// RunDriverWithConfig is RunDriver parameterized by cfg.
func RunDriverWithConfig(sem Semantics, test Test, cfg Config) (candidates []Candidate, tooFar bool, err error) {
	var threads []int
	composed := []Candidate{unit(nil)}
	for _, sp := range test.StartPoints {
		threads = append(threads, sp.Thread)
		res, ferr := foldThread(sem, test, cfg, sp)
		if ferr != nil {
			return nil, false, ferr
		}
		tooFar = tooFar || res.TooFar
		composed = parallel(composed, res.Candidates)
	}
	composed = initwrites(composed, threads, test.Observed, cfg.InitWrites)
	return composed, tooFar, nil
}
