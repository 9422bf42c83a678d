// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// ConcreteExecution is an event structure with no remaining symbolic
// variables, a fully-resolved RFMap, a derived final state, and the
// relations §4.5 builds (§3).
type ConcreteExecution struct {
	Structure EventStructure
	RF        RFMap

	// FinalState starts from the test's initial globals and binds each
	// global location with a selected final store (only observed ones,
	// if observed_finals_only is set) to the value that store writes.
	FinalState map[string]int64

	PoIico         Relation
	PpoLoc         Relation
	StoreLoadVbf   Relation
	InitLoadVbf    Relation
	AtomicLoadStore Relation
	LastStoreVbf   Relation
	Pco            Relation
}

// FinalValue returns the resolved value at loc and true, or 0 and
// false if loc is neither an initial global nor a selected final
// location.
func (c ConcreteExecution) FinalValue(loc string) (int64, bool) {
	v, ok := c.FinalState[loc]
	return v, ok
}
