// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package solver is a reference constraint solver for the Assign,
// Unroll, and ReadInit constraint shapes litmuscore emits. It is the
// one a command-line driver links against by default; the core itself
// never depends on this package, only on the litmuscore.Solver
// interface.
package solver

import "code.hybscloud.com/litmuscore"

// Unifier is a small worklist-based fixed-point solver: repeatedly
// resolves whichever constraints have become evaluable given the
// substitution built so far, until a pass makes no progress. Conflicts
// between two concrete values bound to the same variable are
// unsatisfiable; everything still unresolved when progress stops is
// returned as the residual.
type Unifier struct{}

// New builds a reference Unifier.
func New() Unifier { return Unifier{} }

func resolveExpr(e litmuscore.Expr, sigma map[string]int64, initial litmuscore.InitialState) (int64, bool) {
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
	if e.InitRead != nil && e.InitRead.Kind == litmuscore.LocGlobal {
		return initial.GlobalValue(e.InitRead.Name), true
	}
	return 0, false
}

// Solve implements litmuscore.Solver.
func (Unifier) Solve(constraints []litmuscore.Constraint, initial litmuscore.InitialState) litmuscore.SolveResult {
	sigma := map[string]int64{}
	pending := append([]litmuscore.Constraint{}, constraints...)

	for {
		changed := false
		var next []litmuscore.Constraint
		for _, c := range pending {
			switch c.Kind {
			case litmuscore.ConstraintUnroll:
				next = append(next, c)
			case litmuscore.ConstraintAssign:
				val, ok := resolveExpr(c.Expr, sigma, initial)
				if !ok {
					next = append(next, c)
					continue
				}
				if existing, has := sigma[c.Var]; has {
					if existing != val {
						return litmuscore.NoSolns()
					}
					continue
				}
				sigma[c.Var] = val
				changed = true
			case litmuscore.ConstraintReadInit:
				if c.ReadLoc.Kind != litmuscore.LocGlobal {
					next = append(next, c)
					continue
				}
				v := initial.GlobalValue(c.ReadLoc.Name)
				if existing, has := sigma[c.ReadVar]; has {
					if existing != v {
						return litmuscore.NoSolns()
					}
					continue
				}
				sigma[c.ReadVar] = v
				changed = true
			}
		}
		pending = next
		if !changed {
			break
		}
	}
	return litmuscore.Solved(sigma, pending)
}
