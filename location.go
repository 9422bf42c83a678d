// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "fmt"

// LocKind discriminates the three location shapes the core must
// support (§3): a named global cell, a dereferenced (computed) global
// address, or a thread-local register.
type LocKind uint8

const (
	LocGlobal LocKind = iota
	LocDeref
	LocRegister
)

// Location identifies a storage cell an event reads or writes.
// Locations may be symbolic (an undetermined address) until the
// register/memory RF resolvers substitute a concrete one.
type Location struct {
	Kind LocKind

	// Global/Register name, when Kind != LocDeref.
	Name string

	// Thread owning a LocRegister location.
	Thread int

	// Addr is the symbolic address for a LocDeref location.
	Addr SymVal
}

// GlobalLoc builds a named global-memory location.
func GlobalLoc(name string) Location { return Location{Kind: LocGlobal, Name: name} }

// DerefLoc builds a dereferenced-address location.
func DerefLoc(addr SymVal) Location { return Location{Kind: LocDeref, Addr: addr} }

// RegisterLoc builds a per-thread register location.
func RegisterLoc(thread int, name string) Location {
	return Location{Kind: LocRegister, Thread: thread, Name: name}
}

// IsRegister reports whether loc names a register (as opposed to any
// memory location).
func (loc Location) IsRegister() bool { return loc.Kind == LocRegister }

// IsDetermined reports whether loc is fully resolved: global and
// register locations are always determined; a dereferenced location is
// determined only once its address is.
func (loc Location) IsDetermined() bool {
	if loc.Kind == LocDeref {
		return loc.Addr.IsDetermined()
	}
	return true
}

// Equal reports whether two locations denote the same cell. Two
// undetermined LocDeref locations are equal only if their address
// variables are (syntactically) the same — anything stronger is the
// solver's job, not this comparison's.
func (loc Location) Equal(other Location) bool {
	if loc.Kind != other.Kind {
		return false
	}
	switch loc.Kind {
	case LocGlobal:
		return loc.Name == other.Name
	case LocRegister:
		return loc.Thread == other.Thread && loc.Name == other.Name
	case LocDeref:
		return loc.Addr.Equal(other.Addr)
	}
	return false
}

// Substitute applies sigma to a LocDeref address; global and register
// locations are returned unchanged.
func (loc Location) Substitute(sigma map[string]int64) Location {
	if loc.Kind != LocDeref {
		return loc
	}
	loc.Addr = loc.Addr.Substitute(sigma)
	return loc
}

// String renders loc for diagnostics.
func (loc Location) String() string {
	switch loc.Kind {
	case LocGlobal:
		return loc.Name
	case LocRegister:
		return fmt.Sprintf("T%d:%s", loc.Thread, loc.Name)
	case LocDeref:
		return "*" + loc.Addr.String()
	}
	return "<bad-loc>"
}
