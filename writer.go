// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

// Writer effect: accumulates values Tell'd during a computation. The
// instruction driver uses it for the events and constraints one
// instruction's semantics emits (DriverEmission, driver.go), collected
// per instruction by RunDriverEffects (compose.go); Unroll sentinels are
// attached by tooFar (candidate.go), not Tell'd.

// Tell appends a value to the accumulated output.
type Tell[W any] struct{ Value W }

func (Tell[W]) OpResult() struct{} { panic("phantom") }

// WriterContext holds the output slice shared by one RunWriter scope.
type WriterContext[W any] struct {
	Output *[]W
}

// DispatchWriter handles Tell.
func (o Tell[W]) DispatchWriter(ctx *WriterContext[W]) (Resumed, bool) {
	*ctx.Output = append(*ctx.Output, o.Value)
	return struct{}{}, true
}

// TellWriter performs Tell then runs next.
func TellWriter[W, B any](w W, next Cont[Resumed, B]) Cont[Resumed, B] {
	return Then[Resumed](Perform[Tell[W], struct{}](Tell[W]{Value: w}), next)
}

func dispatchWriter[W any](op Operation, ctx *WriterContext[W]) (Resumed, bool) {
	if wop, ok := op.(interface {
		DispatchWriter(ctx *WriterContext[W]) (Resumed, bool)
	}); ok {
		return wop.DispatchWriter(ctx)
	}
	unhandledEffect("writerHandler")
	return nil, false
}

// writerHandler interprets Tell against one accumulator.
type writerHandler[W any] struct {
	ctx *WriterContext[W]
}

func (h *writerHandler[W]) Dispatch(op Operation) (Resumed, bool) {
	return dispatchWriter(op, h.ctx)
}

// RunWriter drives m to completion and returns its result alongside
// everything Tell'd during the run, in emission order.
func RunWriter[W, A any](m Cont[Resumed, A]) (A, []W) {
	var output []W
	ctx := &WriterContext[W]{Output: &output}
	result := Handle(m, &writerHandler[W]{ctx: ctx})
	return result, output
}

// ExecWriter returns only the accumulated output.
func ExecWriter[W, A any](m Cont[Resumed, A]) []W {
	_, output := RunWriter[W, A](m)
	return output
}
