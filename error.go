// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Error effect: exception-like abort, without threading an error return
// through every sequencing step by hand. The instruction driver turns a
// Throw raised by a semantics fragment into a returned error (driver.go);
// a jump to an undefined label is reported by resolveJump directly, not
// through this effect. LoadConfig/LoadConfigFile also use it (config.go).

// ErrorContext accumulates the error value for one RunError scope.
type ErrorContext[E any] struct {
	Err    E
	HasErr bool
}

// Throw is the effect operation that raises an error.
type Throw[E any] struct{ Err E }

// OpResult implements Op.
func (Throw[E]) OpResult() Resumed { panic("phantom") }

// DispatchError handles Throw: records the error and signals resume so
// the generic Dispatch wrapper can inspect HasErr uniformly.
func (o Throw[E]) DispatchError(ctx *ErrorContext[E]) (Resumed, bool) {
	ctx.Err = o.Err
	ctx.HasErr = true
	return struct{}{}, true
}

// ThrowError performs Throw. The errorHandler always short-circuits on a
// Throw, so the continuation k is constructed but never actually invoked.
func ThrowError[E, A any](err E) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		return &suspension{
			op:     Throw[E]{Err: err},
			resume: func(v Resumed) Resumed { return v },
		}
	}
}

// errorHandler interprets Throw for one RunError scope.
type errorHandler[E, A any] struct {
	ctx *ErrorContext[E]
}

func (h *errorHandler[E, A]) Dispatch(op Operation) (Resumed, bool) {
	if eop, ok := op.(interface {
		DispatchError(ctx *ErrorContext[E]) (Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.ctx)
		if h.ctx.HasErr {
			return Left[E, A](h.ctx.Err), false
		}
		return v, true
	}
	unhandledEffect("errorHandler")
	return nil, false
}

func rightCont[E, A any](a A) Resumed { return Right[E, A](a) }

// RunError drives m to completion, catching any Throw into a Left.
func RunError[E, A any](m Cont[Resumed, A]) Either[E, A] {
	var ctx ErrorContext[E]
	h := &errorHandler[E, A]{ctx: &ctx}
	result := m(rightCont[E, A])
	if result == nil {
		var zero A
		return Right[E, A](zero)
	}
	return handleDispatch[Either[E, A]](result, h)
}

// Either is Left (error) or Right (success); it is the result shape of
// RunError and RunDriverEffects.
type Either[E, A any] struct {
	isRight bool
	left    E
	right   A
}

// Left builds an error Either.
func Left[E, A any](e E) Either[E, A] { return Either[E, A]{isRight: false, left: e} }

// Right builds a success Either.
func Right[E, A any](a A) Either[E, A] { return Either[E, A]{isRight: true, right: a} }

// IsRight reports whether e holds a success value.
func (e Either[E, A]) IsRight() bool { return e.isRight }

// IsLeft reports whether e holds an error value.
func (e Either[E, A]) IsLeft() bool { return !e.isRight }

// GetRight returns the success value and true, or zero and false.
func (e Either[E, A]) GetRight() (A, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero A
	return zero, false
}

// GetLeft returns the error value and true, or zero and false.
func (e Either[E, A]) GetLeft() (E, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero E
	return zero, false
}

// MatchEither pattern-matches on e.
func MatchEither[E, A, T any](e Either[E, A], onLeft func(E) T, onRight func(A) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// MapEither transforms a success value.
func MapEither[E, A, B any](e Either[E, A], f func(A) B) Either[E, B] {
	if e.isRight {
		return Right[E, B](f(e.right))
	}
	return Left[E, B](e.left)
}

// FlatMapEither sequences two Either-producing steps.
func FlatMapEither[E, A, B any](e Either[E, A], f func(A) Either[E, B]) Either[E, B] {
	if e.isRight {
		return f(e.right)
	}
	return Left[E, B](e.left)
}
