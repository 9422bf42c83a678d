// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package isa is a reference instruction-set semantics module: a
// small RISC-like machine (load, store, move-immediate, branch-if-
// zero, jump, fence, exchange) sufficient to express the enumerator's
// canonical litmus scenarios as real parsed programs. litmuscore never
// imports this package; it only calls through the litmuscore.Semantics
// interface this package implements.
package isa

import (
	"strconv"

	"code.hybscloud.com/litmuscore"
)

// Opcode names the instructions this ISA understands.
type Opcode int

const (
	// Mov loads a constant into a register: Mov{Reg, Imm}.
	Mov Opcode = iota
	// Load reads a global into a register: Load{Reg, Loc}.
	Load
	// Store writes a register (or constant, via Imm when Reg=="") into
	// a global: Store{Reg, Loc} or Store{Imm, Loc} with Reg=="".
	Store
	// Bz jumps to Target when Reg holds zero: Bz{Reg, Target}.
	Bz
	// Jmp jumps unconditionally to Target.
	Jmp
	// Fence is a no-op that only carries ordering annotations.
	Fence
	// Xchg atomically reads a global into a register and writes an
	// immediate to that global: Xchg{Reg, Loc, Imm}. Both memory events
	// are flagged acquire+release+exclusive+atomic — the
	// atomic_load_store pairing §4.5 needs a concrete source for.
	Xchg
)

// Insn is one instruction's payload, carried opaquely by
// litmuscore.Instruction.Op.
type Insn struct {
	Op     Opcode
	Reg    string
	Loc    string
	Imm    int64
	Target string

	// Annotations applied to any event this instruction emits, e.g.
	// acquire/release on a fence or an exchange.
	Annotations []litmuscore.Annotation
}

// Semantics implements litmuscore.Semantics for Insn.
type Semantics struct{}

func annotate(e litmuscore.Event, annos []litmuscore.Annotation) litmuscore.Event {
	for _, a := range annos {
		e = e.WithAnnotation(a)
	}
	return e
}

// BuildSemantics implements litmuscore.Semantics.
func (Semantics) BuildSemantics(ctx litmuscore.InstrContext) litmuscore.Fragment {
	ins, ok := ctx.Instruction.Op.(Insn)
	if !ok {
		return litmuscore.Pure(litmuscore.Next())
	}

	switch ins.Op {
	case Mov:
		loc := litmuscore.RegisterLoc(ctx.Thread, ins.Reg)
		wv := litmuscore.Const(ins.Imm)
		ev := litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventRegWrite)
		ev.Loc = &loc
		ev.WriteVal = &wv
		return litmuscore.Bind(litmuscore.EmitEvent(ev), func(litmuscore.EventID) litmuscore.Fragment {
			return litmuscore.Pure(litmuscore.Next())
		})

	case Load:
		loc := litmuscore.GlobalLoc(ins.Loc)
		rv := litmuscore.Var(varName(ctx))
		ev := annotate(litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventMemRead), ins.Annotations)
		ev.Loc = &loc
		ev.ReadVal = &rv
		return litmuscore.Bind(litmuscore.EmitEvent(ev), func(id litmuscore.EventID) litmuscore.Fragment {
			dst := litmuscore.RegisterLoc(ctx.Thread, ins.Reg)
			dstWrite := litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventRegWrite)
			dstWrite.Loc = &dst
			dstWrite.WriteVal = &rv
			return litmuscore.Bind(litmuscore.EmitEvent(dstWrite), func(litmuscore.EventID) litmuscore.Fragment {
				return litmuscore.Pure(litmuscore.Next())
			})
		})

	case Store:
		loc := litmuscore.GlobalLoc(ins.Loc)
		wv := litmuscore.Const(ins.Imm)
		ev := annotate(litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventMemWrite), ins.Annotations)
		ev.Loc = &loc
		emitWrite := func(litmuscore.EventID) litmuscore.Fragment {
			ev.WriteVal = &wv
			return litmuscore.Bind(litmuscore.EmitEvent(ev), func(litmuscore.EventID) litmuscore.Fragment {
				return litmuscore.Pure(litmuscore.Next())
			})
		}
		if ins.Reg == "" {
			return emitWrite(0)
		}
		src := litmuscore.RegisterLoc(ctx.Thread, ins.Reg)
		wv = litmuscore.Var(varName(ctx))
		srcRead := litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventRegRead)
		srcRead.Loc = &src
		srcRead.ReadVal = &wv
		return litmuscore.Bind(litmuscore.EmitEvent(srcRead), emitWrite)

	case Bz:
		loc := litmuscore.RegisterLoc(ctx.Thread, ins.Reg)
		rv := litmuscore.Var(varName(ctx))
		ev := litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventRegRead)
		ev.Loc = &loc
		ev.ReadVal = &rv
		return litmuscore.Bind(litmuscore.EmitEvent(ev), func(litmuscore.EventID) litmuscore.Fragment {
			return litmuscore.Pure(litmuscore.CondJump(rv, ins.Target))
		})

	case Jmp:
		return litmuscore.Pure(litmuscore.Jump(ins.Target))

	case Fence:
		ev := annotate(litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventBarrier), ins.Annotations)
		return litmuscore.Bind(litmuscore.EmitEvent(ev), func(litmuscore.EventID) litmuscore.Fragment {
			return litmuscore.Pure(litmuscore.Next())
		})

	case Xchg:
		loc := litmuscore.GlobalLoc(ins.Loc)
		annos := append([]litmuscore.Annotation{litmuscore.AnnoAcquire, litmuscore.AnnoRelease, litmuscore.AnnoExclusive, litmuscore.AnnoAtomic}, ins.Annotations...)
		rv := litmuscore.Var(varName(ctx))
		readEv := annotate(litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventMemRead), annos)
		readEv.Loc = &loc
		readEv.ReadVal = &rv
		return litmuscore.Bind(litmuscore.EmitEvent(readEv), func(litmuscore.EventID) litmuscore.Fragment {
			dst := litmuscore.RegisterLoc(ctx.Thread, ins.Reg)
			dstWrite := litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventRegWrite)
			dstWrite.Loc = &dst
			dstWrite.WriteVal = &rv
			return litmuscore.Bind(litmuscore.EmitEvent(dstWrite), func(litmuscore.EventID) litmuscore.Fragment {
				wv := litmuscore.Const(ins.Imm)
				writeEv := annotate(litmuscore.NewEvent(0, ctx.Thread, ctx.PO, litmuscore.EventMemWrite), annos)
				writeEv.Loc = &loc
				writeEv.WriteVal = &wv
				return litmuscore.Bind(litmuscore.EmitEvent(writeEv), func(litmuscore.EventID) litmuscore.Fragment {
					return litmuscore.Pure(litmuscore.Next())
				})
			})
		})

	default:
		return litmuscore.Pure(litmuscore.Next())
	}
}

// varName derives a symbolic-variable name unique per thread and per
// executed instruction on a trace: the program-order index advances on
// every instruction, loop iterations included, so unrolling a back-jump
// never collides two distinct reads under the same name, and two
// threads' instructions at the same address never share one either.
func varName(ctx litmuscore.InstrContext) string {
	base := ""
	if len(ctx.Labels) > 0 {
		base = ctx.Labels[0]
	}
	return "T" + strconv.Itoa(ctx.Thread) + ":" + base + ":" + strconv.Itoa(ctx.Instruction.Addr) + "@" + strconv.Itoa(ctx.PO)
}
