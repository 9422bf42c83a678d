// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// State effect: threads one mutable slot through a computation. The
// instruction driver uses it as the event-id allocator (EmitEvent,
// driver.go), seeded per instruction from the candidate's NextID; the
// path-local label-visit counters live on Candidate (candidate.go), not
// in this effect.

// Get reads the current state.
type Get[S any] struct{}

func (Get[S]) OpResult() S { panic("phantom") }

// DispatchState handles Get.
func (Get[S]) DispatchState(state *S) (Resumed, bool) { return *state, true }

// Put replaces the current state.
type Put[S any] struct{ Value S }

func (Put[S]) OpResult() struct{} { panic("phantom") }

// DispatchState handles Put.
func (o Put[S]) DispatchState(state *S) (Resumed, bool) {
	*state = o.Value
	return struct{}{}, true
}

// Modify applies f to the current state and returns the new value.
type Modify[S any] struct{ F func(S) S }

func (Modify[S]) OpResult() S { panic("phantom") }

// DispatchState handles Modify.
func (o Modify[S]) DispatchState(state *S) (Resumed, bool) {
	*state = o.F(*state)
	return *state, true
}

// GetState performs Get then feeds the state into f.
func GetState[S, B any](f func(S) Cont[Resumed, B]) Cont[Resumed, B] {
	return Bind(Perform[Get[S], S](Get[S]{}), f)
}

// PutState performs Put then runs next.
func PutState[S, B any](s S, next Cont[Resumed, B]) Cont[Resumed, B] {
	return Then[Resumed](Perform[Put[S], struct{}](Put[S]{Value: s}), next)
}

// ModifyState performs Modify then feeds the updated state into then.
func ModifyState[S, B any](f func(S) S, then func(S) Cont[Resumed, B]) Cont[Resumed, B] {
	return Bind(Perform[Modify[S], S](Modify[S]{F: f}), then)
}

func dispatchState[S any](op Operation, state *S) (Resumed, bool) {
	switch o := op.(type) {
	case Get[S]:
		return o.DispatchState(state)
	case Put[S]:
		return o.DispatchState(state)
	case Modify[S]:
		return o.DispatchState(state)
	}
	if sop, ok := op.(interface {
		DispatchState(state *S) (Resumed, bool)
	}); ok {
		return sop.DispatchState(state)
	}
	unhandledEffect("stateHandler")
	return nil, false
}

// stateHandler interprets Get/Put/Modify against one mutable slot.
type stateHandler[S any] struct {
	state *S
}

func (h *stateHandler[S]) Dispatch(op Operation) (Resumed, bool) {
	return dispatchState(op, h.state)
}

// RunState drives m to completion and returns its result alongside the
// final state.
func RunState[S, A any](initial S, m Cont[Resumed, A]) (A, S) {
	state := initial
	h := &stateHandler[S]{state: &state}
	result := Handle(m, h)
	return result, state
}

// EvalState returns only the result of a stateful computation.
func EvalState[S, A any](initial S, m Cont[Resumed, A]) A {
	result, _ := RunState[S, A](initial, m)
	return result
}

// ExecState returns only the final state of a stateful computation.
func ExecState[S, A any](initial S, m Cont[Resumed, A]) S {
	_, state := RunState[S, A](initial, m)
	return state
}
