// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "fmt"

// SymVal is a symbolic value: either a resolved integer constant or a
// named variable awaiting substitution by the constraint solver (§3).
// The zero value is the constant 0, matching Go's usual zero-value
// convention for value types used as map/slice elements.
type SymVal struct {
	isVar bool
	name  string
	val   int64
}

// Const builds a determined symbolic value.
func Const(v int64) SymVal { return SymVal{val: v} }

// Var builds an undetermined symbolic value named name. Two Vars with
// the same name denote the same unknown within one event structure.
func Var(name string) SymVal { return SymVal{isVar: true, name: name} }

// IsDetermined reports whether v already holds a concrete constant.
func (v SymVal) IsDetermined() bool { return !v.isVar }

// Name returns the variable's name and true, or "" and false if v is
// already a constant.
func (v SymVal) Name() (string, bool) {
	if v.isVar {
		return v.name, true
	}
	return "", false
}

// Int returns the constant value and true, or 0 and false if v is
// still a variable.
func (v SymVal) Int() (int64, bool) {
	if v.isVar {
		return 0, false
	}
	return v.val, true
}

// Equal reports structural equality: two constants are equal iff their
// values match; two variables are equal iff their names match; a
// variable is never equal to a constant (that equivalence is exactly
// what the solver is asked to decide).
func (v SymVal) Equal(other SymVal) bool {
	if v.isVar != other.isVar {
		return false
	}
	if v.isVar {
		return v.name == other.name
	}
	return v.val == other.val
}

// Substitute applies a variable→constant substitution to v, returning
// v unchanged if it is already determined or the substitution does not
// mention it.
func (v SymVal) Substitute(sigma map[string]int64) SymVal {
	if !v.isVar {
		return v
	}
	if c, ok := sigma[v.name]; ok {
		return Const(c)
	}
	return v
}

// String renders v for diagnostics.
func (v SymVal) String() string {
	if v.isVar {
		return "?" + v.name
	}
	return fmt.Sprintf("%d", v.val)
}
