// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// driverHandler dispatches the four effect families the instruction
// driver (§4.1) needs at once: Reader for the per-thread environment,
// State for the event-id allocator (EmitEvent, driver.go), Writer for
// emitted events and constraints, and Error for any Throw the semantics
// module raises (a jump to an undefined label is reported separately,
// by resolveJump in driver.go). Combining them into one
// handler avoids nesting four separate Run* calls around every
// instruction fragment. The path-local label-visit counters are plain
// Go state on Candidate (candidate.go), not threaded through this
// State effect.
type driverHandler[Env, Visits, W any] struct {
	env    *Env
	visits *Visits
	wctx   *WriterContext[W]
	ectx   *ErrorContext[string]
}

// Dispatch implements Handler. The four operation families never
// overlap, so trying each DispatchXxx interface in turn is sufficient.
func (h *driverHandler[Env, Visits, W]) Dispatch(op Operation) (Resumed, bool) {
	if rop, ok := op.(interface {
		DispatchReader(env *Env) (Resumed, bool)
	}); ok {
		return rop.DispatchReader(h.env)
	}
	if sop, ok := op.(interface {
		DispatchState(state *Visits) (Resumed, bool)
	}); ok {
		return sop.DispatchState(h.visits)
	}
	if wop, ok := op.(interface {
		DispatchWriter(ctx *WriterContext[W]) (Resumed, bool)
	}); ok {
		return wop.DispatchWriter(h.wctx)
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *ErrorContext[string]) (Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.ectx)
		if h.ectx.HasErr {
			return Left[string, Resumed](h.ectx.Err), false
		}
		return v, true
	}
	unhandledEffect("driverHandler")
	return nil, false
}

// DriverResult is the outcome of one RunDriverEffects scope: the
// computation's value (or the string a Throw aborted it with), the
// State value it ended with (the next free event id, in the driver),
// and every emission it Tell'd along the way.
type DriverResult[A, Visits, W any] struct {
	Value   Either[string, A]
	Visits  Visits
	Written []W
}

// RunDriverEffects drives a per-thread instruction fold to completion,
// seeding it with env and visits, collecting every Tell'd emission,
// and catching a Throw into Value's Left.
func RunDriverEffects[Env, Visits, W, A any](env Env, visits Visits, m Cont[Resumed, A]) DriverResult[A, Visits, W] {
	e, v := env, visits
	var output []W
	wctx := &WriterContext[W]{Output: &output}
	var ectx ErrorContext[string]
	h := &driverHandler[Env, Visits, W]{env: &e, visits: &v, wctx: wctx, ectx: &ectx}
	result := m(rightCont[string, A])
	var val Either[string, A]
	if result == nil {
		var zero A
		val = Right[string, A](zero)
	} else {
		val = handleDispatch[Either[string, A]](result, h)
	}
	return DriverResult[A, Visits, W]{Value: val, Visits: v, Written: output}
}
