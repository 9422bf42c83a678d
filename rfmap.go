// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import "strconv"

// RFKeyKind discriminates the two reads-from key shapes (§3).
type RFKeyKind uint8

const (
	RFKeyLoad RFKeyKind = iota
	RFKeyFinal
)

// RFKey is either Load(event) or Final(location).
type RFKey struct {
	Kind  RFKeyKind
	Load  EventID
	Final Location
}

// LoadKey builds a Load(event) key.
func LoadKey(id EventID) RFKey { return RFKey{Kind: RFKeyLoad, Load: id} }

// FinalKey builds a Final(location) key.
func FinalKey(loc Location) RFKey { return RFKey{Kind: RFKeyFinal, Final: loc} }

func (k RFKey) String() string {
	if k.Kind == RFKeyLoad {
		return "Load(" + strconv.Itoa(int(k.Load)) + ")"
	}
	return "Final(" + k.Final.String() + ")"
}

// RFTargetKind discriminates the two reads-from value shapes (§3).
type RFTargetKind uint8

const (
	RFInit RFTargetKind = iota
	RFStore
)

// RFTarget is either Init or Store(event).
type RFTarget struct {
	Kind  RFTargetKind
	Store EventID
}

// FromInit builds the Init target.
func FromInit() RFTarget { return RFTarget{Kind: RFInit} }

// FromStore builds the Store(event) target.
func FromStore(id EventID) RFTarget { return RFTarget{Kind: RFStore, Store: id} }

// RFMap is the reads-from mapping of §3: keys are Load/Final, values
// are Init/Store. Built incrementally but never mutated in place —
// every extension returns a fresh map (§3 "Lifecycles").
type RFMap map[RFKey]RFTarget

// NewRFMap builds an empty RFMap.
func NewRFMap() RFMap { return RFMap{} }

// With returns a copy of m extended with key↦target.
func (m RFMap) With(key RFKey, target RFTarget) RFMap {
	out := make(RFMap, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = target
	return out
}

// Lookup returns the target for key and true, or the zero target and
// false if key is absent.
func (m RFMap) Lookup(key RFKey) (RFTarget, bool) {
	v, ok := m[key]
	return v, ok
}
