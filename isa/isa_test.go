// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package isa_test

import (
	"testing"

	"code.hybscloud.com/litmuscore"
	"code.hybscloud.com/litmuscore/isa"
	"code.hybscloud.com/litmuscore/solver"
)

func TestSingleThreadStoreThenLoad(t *testing.T) {
	block := litmuscore.CodeBlock{
		Label: "t0",
		Instructions: []litmuscore.Instruction{
			{Addr: 0, Op: isa.Insn{Op: isa.Mov, Reg: "r1", Imm: 1}},
			{Addr: 1, Op: isa.Insn{Op: isa.Store, Loc: "x", Reg: "r1"}},
			{Addr: 2, Op: isa.Insn{Op: isa.Load, Reg: "r2", Loc: "x"}},
		},
	}
	test := litmuscore.Test{
		Program:     map[string]litmuscore.CodeBlock{"t0": block},
		StartPoints: []litmuscore.StartPoint{{Thread: 0, Entry: block}},
		Initial:     litmuscore.InitialState{Globals: map[string]int64{"x": 0}},
	}

	cfg := litmuscore.DefaultConfig()
	cfg.Optace = true

	glom, err := litmuscore.GlommedEventStructures(isa.Semantics{}, test, cfg)
	if err != nil {
		t.Fatalf("GlommedEventStructures: %v", err)
	}

	slv := solver.New()
	var concretes []litmuscore.ConcreteExecution
	for _, ic := range glom.Structures {
		concretes = litmuscore.CalculateRFWithConstraints(
			test, ic.Structure, ic.Constraints, slv, cfg,
			func(c litmuscore.ConcreteExecution, acc []litmuscore.ConcreteExecution) []litmuscore.ConcreteExecution {
				return append(acc, c)
			},
			func(acc []litmuscore.ConcreteExecution) []litmuscore.ConcreteExecution { return acc },
			concretes,
		)
	}

	if len(concretes) != 1 {
		t.Fatalf("expected exactly 1 concrete execution, got %d", len(concretes))
	}
	if v, ok := concretes[0].FinalValue("x"); !ok || v != 1 {
		t.Fatalf("expected final x=1, got %v (ok=%v)", v, ok)
	}
}
