// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Algebraic effects give the driver a uniform way to suspend an
// in-progress instruction fold on State (event-id allocation), Reader
// (per-thread environment), Writer (event and constraint emission) or
// Error (a Throw raised by the semantics module) without hard-wiring any
// one of them into the
// fold itself. A Handler interprets operations as they are performed and
// decides whether the computation resumes or short-circuits.

// Operation is the effect operation type passed to Handler.Dispatch.
type Operation any

// Resumed is the type flowing through suspension and resumption; an Eff
// computation is Cont[Resumed, A].
type Resumed any

// Op constrains effect-operation types: O declares the type it resumes
// with via OpResult.
type Op[O Op[O, A], A any] interface {
	OpResult() A
}

// Handler interprets operations performed inside a computation. Dispatch
// returns (resumeValue, true) to continue, or (finalValue, false) to
// short-circuit the whole computation.
type Handler interface {
	Dispatch(op Operation) (Resumed, bool)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(op Operation) (Resumed, bool)

// Dispatch implements Handler.
func (f HandlerFunc) Dispatch(op Operation) (Resumed, bool) { return f(op) }

// suspension is the runtime representation of a pending effect: the
// operation that triggered it, and how to resume once a handler responds.
type suspension struct {
	op     Operation
	resume func(Resumed) Resumed
}

func (s *suspension) Op() Operation            { return s.op }
func (s *suspension) Resume(v Resumed) Resumed { return s.resume(v) }

func unhandledEffect(handler string) {
	panic("litmuscore: unhandled effect in " + handler)
}

// Perform triggers an effect operation, suspending the computation until
// a Handler supplies a resume value or short-circuits.
func Perform[O Op[O, A], A any](op O) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		return &suspension{
			op: op,
			resume: func(v Resumed) Resumed {
				return k(v.(A))
			},
		}
	}
}

// toResumed is the identity continuation at CPS entry points.
func toResumed[A any](a A) Resumed { return a }

// Handle drives a computation to completion, with h interpreting every
// performed operation.
func Handle[A any](m Cont[Resumed, A], h Handler) A {
	result := m(toResumed[A])
	return handleDispatch[A](result, h)
}

// handleDispatch is the trampoline loop: each suspension is dispatched to
// h until the computation either completes or short-circuits.
func handleDispatch[A any](result Resumed, h Handler) A {
	for {
		if s, ok := result.(*suspension); ok {
			v, shouldResume := h.Dispatch(s.Op())
			if !shouldResume {
				return v.(A)
			}
			result = s.Resume(v)
			continue
		}
		if result == nil {
			var zero A
			return zero
		}
		return result.(A)
	}
}
