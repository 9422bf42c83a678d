// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// ConstraintKind discriminates the two constraint shapes the driver
// and RF resolvers emit (§3).
type ConstraintKind uint8

const (
	ConstraintAssign ConstraintKind = iota
	ConstraintUnroll
	ConstraintReadInit
)

// Expr is the right-hand side of an Assign constraint: an atom (a
// SymVal), an init-state lookup, or arithmetic over symbolic values.
// The constraint solver owns Expr's evaluation; the core only builds
// and carries these values.
type Expr struct {
	Atom     *SymVal
	InitRead *Location // value of loc in the initial store
}

// AtomExpr wraps a bare symbolic value as an Expr.
func AtomExpr(v SymVal) Expr { return Expr{Atom: &v} }

// InitReadExpr defers a lookup to the initial store snapshot.
func InitReadExpr(loc Location) Expr { return Expr{InitRead: &loc} }

// Constraint is either Assign(var, expr) or Unroll(label) (§3). The
// ReadInit variant is the deferred-lookup constraint of §9, emitted
// when a load's location is still symbolic at memory-RF time.
type Constraint struct {
	Kind ConstraintKind

	// ConstraintAssign fields.
	Var  string
	Expr Expr

	// ConstraintUnroll field.
	Label string

	// ConstraintReadInit fields.
	ReadVar string
	ReadLoc Location
}

// Assign builds an Assign(v, e) constraint.
func Assign(v string, e Expr) Constraint {
	return Constraint{Kind: ConstraintAssign, Var: v, Expr: e}
}

// AssignEqual builds an Assign constraint equating two symbolic values,
// the common shape the RF resolvers use to say "read value = written
// value".
func AssignEqual(readVar string, written SymVal) Constraint {
	return Assign(readVar, AtomExpr(written))
}

// Unroll builds the sentinel inserted when the unroll bound is hit.
func Unroll(label string) Constraint {
	return Constraint{Kind: ConstraintUnroll, Label: label}
}

// ReadInit builds the deferred initial-store lookup of §9.
func ReadInit(readVar string, loc Location) Constraint {
	return Constraint{Kind: ConstraintReadInit, ReadVar: readVar, ReadLoc: loc}
}

// IsUnroll reports whether c is an Unroll sentinel.
func (c Constraint) IsUnroll() bool { return c.Kind == ConstraintUnroll }

// AllUnroll reports whether every constraint in cs is an Unroll
// sentinel — the condition §4.4's when_unsolved branch checks before
// treating an unsolvable residual as a loop-limit reject rather than an
// rfmap-cyclicity bug.
func AllUnroll(cs []Constraint) bool {
	for _, c := range cs {
		if !c.IsUnroll() {
			return false
		}
	}
	return true
}
