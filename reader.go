// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Reader effect: exposes the read-only per-thread environment (thread
// id, initial store snapshot) to instruction semantics without passing
// it as an explicit parameter through every combinator.

// Ask reads the current environment.
type Ask[E any] struct{}

func (Ask[E]) OpResult() E { panic("phantom") }

// DispatchReader handles Ask.
func (Ask[E]) DispatchReader(env *E) (Resumed, bool) { return *env, true }

// AskReader performs Ask then feeds the environment into f.
func AskReader[E, B any](f func(E) Cont[Resumed, B]) Cont[Resumed, B] {
	return Bind(Perform[Ask[E], E](Ask[E]{}), f)
}

// MapReader performs Ask then applies a pure projection.
func MapReader[E, A any](f func(E) A) Cont[Resumed, A] {
	return Map(Perform[Ask[E], E](Ask[E]{}), f)
}

func dispatchReader[E any](op Operation, env *E) (Resumed, bool) {
	if rop, ok := op.(interface {
		DispatchReader(env *E) (Resumed, bool)
	}); ok {
		return rop.DispatchReader(env)
	}
	unhandledEffect("readerHandler")
	return nil, false
}

// readerHandler interprets Ask against one fixed environment.
type readerHandler[E any] struct {
	env *E
}

func (h *readerHandler[E]) Dispatch(op Operation) (Resumed, bool) {
	return dispatchReader(op, h.env)
}

// RunReader drives m to completion with env available via Ask.
func RunReader[E, A any](env E, m Cont[Resumed, A]) A {
	e := env
	return Handle(m, &readerHandler[E]{env: &e})
}
