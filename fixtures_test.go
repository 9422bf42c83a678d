// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "fmt"

// fixtureInstr is the minimal instruction encoding the reference
// semantics below understands: write/read a register or global, jump,
// or conditionally jump on a fresh guard variable.
type fixtureInstr struct {
	kind    string // "W", "R", "Jump", "CondJump"
	reg     bool   // true: loc names a register of the executing thread
	loc     string
	val     int64  // W: constant written
	varName string // R: name bound to the symbolic value read
	guard   string // CondJump: guard variable name
	target  string // Jump/CondJump: target label
}

func instr(addr int, op fixtureInstr, labels ...string) Instruction {
	return Instruction{Addr: addr, Op: op, Labels: labels}
}

// fixtureSemantics is a reference instruction-set collaborator: it
// builds one memory/register event per W/R instruction and reports the
// matching BranchVerdict, entirely through EmitEvent and Pure so it
// exercises the same effect substrate a real semantics module would.
type fixtureSemantics struct{}

func (fixtureSemantics) BuildSemantics(ctx InstrContext) Fragment {
	ins, ok := ctx.Instruction.Op.(fixtureInstr)
	if !ok {
		return Pure(Next())
	}

	locOf := func() Location {
		if ins.reg {
			return RegisterLoc(ctx.Thread, ins.loc)
		}
		return GlobalLoc(ins.loc)
	}

	switch ins.kind {
	case "W":
		loc := locOf()
		wv := Const(ins.val)
		kind := EventMemWrite
		if ins.reg {
			kind = EventRegWrite
		}
		ev := NewEvent(0, ctx.Thread, ctx.PO, kind)
		ev.Loc = &loc
		ev.WriteVal = &wv
		return Bind(EmitEvent(ev), func(EventID) Fragment { return Pure(Next()) })
	case "R":
		loc := locOf()
		varName := ins.varName
		if ctx.UnrollCount > 0 {
			varName = fmt.Sprintf("%s_%d", ins.varName, ctx.UnrollCount)
		}
		rv := Var(varName)
		kind := EventMemRead
		if ins.reg {
			kind = EventRegRead
		}
		ev := NewEvent(0, ctx.Thread, ctx.PO, kind)
		ev.Loc = &loc
		ev.ReadVal = &rv
		return Bind(EmitEvent(ev), func(EventID) Fragment { return Pure(Next()) })
	case "Jump":
		return Pure(Jump(ins.target))
	case "CondJump":
		return Pure(CondJump(Var(ins.guard), ins.target))
	default:
		return Pure(Next())
	}
}

// fixtureSolver is a small fixed-point unifier sufficient for the
// Assign/ReadInit/Unroll constraint shapes the core emits.
type fixtureSolver struct{}

func resolveExpr(e Expr, sigma map[string]int64, initial InitialState) (int64, bool) {
	if e.Atom != nil {
		if v, ok := e.Atom.Int(); ok {
			return v, true
		}
		if name, ok := e.Atom.Name(); ok {
			if v, has := sigma[name]; has {
				return v, true
			}
		}
		return 0, false
	}
	if e.InitRead != nil && e.InitRead.Kind == LocGlobal {
		return initial.GlobalValue(e.InitRead.Name), true
	}
	return 0, false
}

func (fixtureSolver) Solve(constraints []Constraint, initial InitialState) SolveResult {
	sigma := map[string]int64{}
	pending := append([]Constraint{}, constraints...)

	for {
		changed := false
		var next []Constraint
		for _, c := range pending {
			switch c.Kind {
			case ConstraintUnroll:
				next = append(next, c)
			case ConstraintAssign:
				val, ok := resolveExpr(c.Expr, sigma, initial)
				if !ok {
					next = append(next, c)
					continue
				}
				if existing, has := sigma[c.Var]; has {
					if existing != val {
						return NoSolns()
					}
				} else {
					sigma[c.Var] = val
					changed = true
				}
			case ConstraintReadInit:
				if c.ReadLoc.Kind != LocGlobal {
					next = append(next, c)
					continue
				}
				v := initial.GlobalValue(c.ReadLoc.Name)
				if existing, has := sigma[c.ReadVar]; has {
					if existing != v {
						return NoSolns()
					}
				} else {
					sigma[c.ReadVar] = v
					changed = true
				}
			}
		}
		pending = next
		if !changed {
			break
		}
	}
	return Solved(sigma, pending)
}

// block builds a labeled CodeBlock from fixtureInstr entries.
func block(label string, instrs ...Instruction) CodeBlock {
	return CodeBlock{Label: label, Instructions: instrs}
}
