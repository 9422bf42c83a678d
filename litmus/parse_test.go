// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmus_test

import (
	"testing"

	"code.hybscloud.com/litmuscore/isa"
	"code.hybscloud.com/litmuscore/litmus"
)

func TestParseMessagePassing(t *testing.T) {
	src := `
test MP
initial: x=0, y=0
observed: x, y
thread 0:
mov r1, 1
store x, r1
mov r2, 1
store y, r2
thread 1:
load r1, y
load r2, x
`
	test, err := litmus.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if test.Name != "MP" {
		t.Fatalf("expected name MP, got %q", test.Name)
	}
	if test.Initial.Globals["x"] != 0 || test.Initial.Globals["y"] != 0 {
		t.Fatalf("unexpected initial state: %+v", test.Initial.Globals)
	}
	if len(test.StartPoints) != 2 {
		t.Fatalf("expected 2 start points, got %d", len(test.StartPoints))
	}
	if len(test.Observed) != 2 {
		t.Fatalf("expected 2 observed locations, got %v", test.Observed)
	}
	block := test.StartPoints[0].Entry
	if len(block.Instructions) != 4 {
		t.Fatalf("expected 4 instructions in thread 0, got %d", len(block.Instructions))
	}
	if _, ok := block.Instructions[0].Op.(isa.Insn); !ok {
		t.Fatalf("expected instruction payload to be isa.Insn")
	}
}

func TestParseSelfLoopWithLabel(t *testing.T) {
	src := `
thread 0:
L: load r1, x
bz r1, L
`
	test, err := litmus.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	block, ok := test.Program["L"]
	if !ok {
		t.Fatalf("expected block labeled L, got %+v", test.Program)
	}
	if len(block.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(block.Instructions))
	}
	second := block.Instructions[1].Op.(isa.Insn)
	if second.Op != isa.Bz || second.Target != "L" {
		t.Fatalf("expected bz targeting L, got %+v", second)
	}
}

func TestParseRejectsInstructionOutsideThread(t *testing.T) {
	if _, err := litmus.Parse("load r1, x\n"); err == nil {
		t.Fatalf("expected an error for an instruction outside any thread block")
	}
}
