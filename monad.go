// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Bind, Map and Then are the three sequencing operators the driver uses
// to thread one instruction's effect into the next. This is the
// `sequence-then` primitive named in §6: a fragment's output feeds a
// callback producing the next fragment.

// Bind sequences m then f, feeding m's result into f to obtain the next
// continuation.
func Bind[R, A, B any](m Cont[R, A], f func(A) Cont[R, B]) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(a A) R {
			return f(a)(k)
		})
	}
}

// Map applies a pure transformation to a continuation's result.
func Map[R, A, B any](m Cont[R, A], f func(A) B) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(a A) R {
			return k(f(a))
		})
	}
}

// Then sequences m then n, discarding m's result. Used when an
// instruction produces only side-effecting events (e.g. a barrier) and
// the next fragment does not depend on its value.
func Then[R, A, B any](m Cont[R, A], n Cont[R, B]) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(_ A) R {
			return n(k)
		})
	}
}
