// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Bracket and OnError give the enumerator's file-backed collaborators
// the same acquire/use/release discipline regardless of whether use
// throws. config.go's LoadConfigFile acquires its *os.File through
// Bracket so the handle closes whether decoding succeeds or throws;
// LoadConfig wraps its decode step in OnError to log a decode failure
// before re-raising it.

// Bracket acquires a resource, runs use on it, and always runs release
// afterward, returning whichever of use's outcomes (Left error or Right
// value) results.
func Bracket[E, R, A any](
	acquire Cont[Resumed, R],
	release func(R) Cont[Resumed, struct{}],
	use func(R) Cont[Resumed, A],
) Cont[Resumed, Either[E, A]] {
	return Bind(acquire, func(resource R) Cont[Resumed, Either[E, A]] {
		result := RunError[E, A](use(resource))
		return Bind(release(resource), func(_ struct{}) Cont[Resumed, Either[E, A]] {
			return Return[Resumed](result)
		})
	})
}

// OnError runs cleanup only if body throws, then re-raises the original
// error so the caller's own RunError scope still observes the failure.
func OnError[E, A any](
	body Cont[Resumed, A],
	cleanup func(E) Cont[Resumed, struct{}],
) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		outcome := RunError[E, A](body)
		e, failed := outcome.GetLeft()
		if !failed {
			v, _ := outcome.GetRight()
			return k(v)
		}
		return Bind(cleanup(e), func(_ struct{}) Cont[Resumed, A] {
			return ThrowError[E, A](e)
		})(k)
	}
}
