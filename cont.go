// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Cont is the continuation-passing substrate that the instruction driver
// (§4.1) composes per-instruction fragments over. Cont[R, A] computes a
// value of type A and delivers it to a continuation func(A) R to obtain
// the final result R.
//
// The enumerator never inspects a semantics fragment's internals: the
// instruction-set semantics collaborator hands back values built from
// these primitives, and the driver only ever sequences or forks them.
type Cont[R, A any] func(k func(A) R) R

// Return lifts a pure value into Cont, immediately handing it to k.
func Return[R, A any](a A) Cont[R, A] {
	return func(k func(A) R) R {
		return k(a)
	}
}

// Eff is the effectful continuation shape used throughout the driver:
// a computation producing A, possibly suspending on State/Reader/Writer/
// Error operations before it completes.
type Eff[A any] = Cont[Resumed, A]

// Pure lifts a value into an effect-free Eff.
func Pure[A any](a A) Eff[A] {
	return Return[Resumed](a)
}

// Suspend builds a Cont directly from a CPS function. Used when a
// computation needs direct access to its own continuation.
func Suspend[R, A any](f func(func(A) R) R) Cont[R, A] {
	return Cont[R, A](f)
}
