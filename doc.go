// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package litmuscore implements the concrete execution enumerator at
// the heart of a weak-memory-model litmus-test simulator.
//
// Given a parsed multi-threaded test program, an initial store state,
// and an external instruction-set semantics module, the package
// symbolically executes every thread under a small continuation-passing
// effect substrate (Cont, Bind, Perform/Handle), enumerates
// register- and memory-level reads-from against a pluggable constraint
// solver, and finalizes each surviving candidate into a fully resolved
// ConcreteExecution.
//
// The top-level entry points are GlommedEventStructures, which produces
// every abstract event structure a test's threads can reach under a
// configured loop-unroll bound, and CalculateRFWithConstraints, which
// drives one such structure through register/memory reads-from
// resolution and finalization, folding each resulting concrete
// execution into a caller-supplied accumulator.
//
// The package does not parse tests, solve constraints, evaluate
// axiomatic memory-model axioms, or print anything; those are the
// Semantics, Solver, and downstream-consumer responsibilities it is
// parameterized over.
package litmuscore
