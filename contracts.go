// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// This file states the collaborator contracts §6 calls out as external
// to the core: instruction-set semantics and the constraint solver. The
// core only ever calls through these interfaces; it never inspects a
// semantics fragment's internals (§9).

// BranchKind discriminates the three verdicts an instruction's
// semantics may return (§4.1, §6).
type BranchKind uint8

const (
	BranchNext BranchKind = iota
	BranchJump
	BranchCondJump
)

// BranchVerdict tells the driver how to continue after one instruction.
type BranchVerdict struct {
	Kind  BranchKind
	Label string  // BranchJump, BranchCondJump
	Guard SymVal  // BranchCondJump only
}

// Next is the fall-through verdict.
func Next() BranchVerdict { return BranchVerdict{Kind: BranchNext} }

// Jump is an unconditional jump to label.
func Jump(label string) BranchVerdict { return BranchVerdict{Kind: BranchJump, Label: label} }

// CondJump is a conditional jump to label, guarded by a (possibly
// symbolic) value; both branches are explored by the driver (§4.1).
func CondJump(guard SymVal, label string) BranchVerdict {
	return BranchVerdict{Kind: BranchCondJump, Guard: guard, Label: label}
}

// Instruction is one opaque (address, instruction) pair from a parsed
// code block. The core never interprets its payload; it only threads
// it to the semantics collaborator.
type Instruction struct {
	Addr    int
	Op      any
	Labels  []string // labels attached to this address
}

// InstrContext is handed to the semantics module for each instruction
// the driver visits (§4.1).
type InstrContext struct {
	PO          int
	Thread      int
	Instruction Instruction
	UnrollCount int
	Labels      []string
}

// Fragment is the monadic event fragment a Semantics implementation
// returns for one instruction: an effect computation yielding the
// instruction's branch verdict, run inside the same Cont/Eff substrate
// as the rest of the driver so sequencing composes uniformly (§9).
type Fragment = Eff[BranchVerdict]

// Semantics is the external instruction-set collaborator (§6):
// build_semantics(instr-context) → monadic fragment.
type Semantics interface {
	BuildSemantics(ctx InstrContext) Fragment
}

// SemanticsFunc adapts a plain function to Semantics.
type SemanticsFunc func(ctx InstrContext) Fragment

func (f SemanticsFunc) BuildSemantics(ctx InstrContext) Fragment { return f(ctx) }

// SolveResult is the constraint solver's NoSolns | Maybe(...) outcome
// (§6).
type SolveResult struct {
	Ok         bool
	Sigma      map[string]int64
	Residual   []Constraint
}

// NoSolns builds the "unsatisfiable" result.
func NoSolns() SolveResult { return SolveResult{Ok: false} }

// Solved builds a successful result carrying a substitution and any
// constraints the solver could not yet discharge.
func Solved(sigma map[string]int64, residual []Constraint) SolveResult {
	return SolveResult{Ok: true, Sigma: sigma, Residual: residual}
}

// Solver is the external constraint-solver collaborator (§6):
// solve(constraints) → NoSolns | Maybe(substitution, residual).
type Solver interface {
	Solve(constraints []Constraint, initial InitialState) SolveResult
}

// SolverFunc adapts a plain function to Solver.
type SolverFunc func(constraints []Constraint, initial InitialState) SolveResult

func (f SolverFunc) Solve(constraints []Constraint, initial InitialState) SolveResult {
	return f(constraints, initial)
}

// InitialState is the test's initial store snapshot: global memory
// cells and per-thread registers, passed by value so the ReadInit
// deferred-lookup constraint of §9 can resolve independent of when it
// is evaluated.
type InitialState struct {
	Globals   map[string]int64
	Registers map[int]map[string]int64 // thread -> register -> value
}

// GlobalValue returns the initial value of a named global cell.
func (s InitialState) GlobalValue(name string) int64 { return s.Globals[name] }

// RegisterValue returns the initial value of a thread's register.
func (s InitialState) RegisterValue(thread int, name string) int64 {
	if regs, ok := s.Registers[thread]; ok {
		return regs[name]
	}
	return 0
}

// CodeBlock is an ordered sequence of instructions starting at a label.
type CodeBlock struct {
	Label        string
	Instructions []Instruction
}

// StartPoint is one thread's entry into the parsed program (§4.1).
type StartPoint struct {
	Thread int
	Entry  CodeBlock
}

// Test is the parsed multi-threaded litmus test handed to the
// enumerator's external entry points (§6).
type Test struct {
	Name        string
	Program     map[string]CodeBlock // label -> code block
	StartPoints []StartPoint
	Initial     InitialState

	// Observed is the observation clause's location set, consulted by
	// §4.5 when ObservedFinalsOnly is set.
	Observed []string

	// Filter is the test's optional filter predicate (§4.5, §6
	// check_filter); nil means no filter.
	Filter func(finalState map[string]int64) bool

	// OutcomePredicate backs the speedcheck "worth going" heuristic of
	// §4.5: when non-nil and SpeedCheck != Off, a final state this
	// predicate rejects cannot affect the test's outcome and is
	// skipped before relation-building work is spent on it.
	OutcomePredicate func(finalState map[string]int64) bool
}
