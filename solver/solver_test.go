// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package solver_test

import (
	"testing"

	"code.hybscloud.com/litmuscore"
	"code.hybscloud.com/litmuscore/solver"
)

func TestUnifierResolvesChainedAssigns(t *testing.T) {
	constraints := []litmuscore.Constraint{
		litmuscore.AssignEqual("r1", litmuscore.Const(1)),
		litmuscore.AssignEqual("r2", litmuscore.Var("r1")),
	}
	result := solver.New().Solve(constraints, litmuscore.InitialState{})
	if !result.Ok {
		t.Fatalf("expected a solution")
	}
	if result.Sigma["r1"] != 1 || result.Sigma["r2"] != 1 {
		t.Fatalf("expected r1=r2=1, got %+v", result.Sigma)
	}
	if len(result.Residual) != 0 {
		t.Fatalf("expected empty residual, got %+v", result.Residual)
	}
}

func TestUnifierDetectsConflict(t *testing.T) {
	constraints := []litmuscore.Constraint{
		litmuscore.AssignEqual("r1", litmuscore.Const(1)),
		litmuscore.AssignEqual("r1", litmuscore.Const(2)),
	}
	result := solver.New().Solve(constraints, litmuscore.InitialState{})
	if result.Ok {
		t.Fatalf("expected NoSolns for conflicting assignment")
	}
}

func TestUnifierLeavesUnrollAsResidual(t *testing.T) {
	constraints := []litmuscore.Constraint{litmuscore.Unroll("L")}
	result := solver.New().Solve(constraints, litmuscore.InitialState{})
	if !result.Ok {
		t.Fatalf("expected Unroll-only constraints to solve with residual, not NoSolns")
	}
	if !litmuscore.AllUnroll(result.Residual) {
		t.Fatalf("expected residual to be all-Unroll, got %+v", result.Residual)
	}
}

func TestUnifierResolvesReadInitFromGlobals(t *testing.T) {
	loc := litmuscore.GlobalLoc("x")
	constraints := []litmuscore.Constraint{litmuscore.ReadInit("r1", loc)}
	initial := litmuscore.InitialState{Globals: map[string]int64{"x": 7}}
	result := solver.New().Solve(constraints, initial)
	if !result.Ok || result.Sigma["r1"] != 7 {
		t.Fatalf("expected r1=7, got %+v ok=%v", result.Sigma, result.Ok)
	}
}
