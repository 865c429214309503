package outcome

import "reflect"

// Builder accumulates decision points for one evaluation and produces exactly
// one terminal Outcome.
type Builder[P any] struct {
	trail  Trail
	closed bool
	closer Kind
}

// Begin opens a builder with an empty trail.
func Begin[P any]() *Builder[P] {
	return &Builder[P]{}
}

// Record appends a decision point. Recording after a terminal call is a defect.
func (b *Builder[P]) Record(p Point) *Builder[P] {
	if b.closed {
		panic(defect("record %s after builder closed as %s", p, b.closer))
	}
	b.trail.Record(p)
	return b
}

// Trail exposes the points recorded so far.
func (b *Builder[P]) Trail() []Point {
	return b.trail.Snapshot()
}

func (b *Builder[P]) Success(payload P, status int) Outcome[P] {
	if isNil(payload) {
		panic(defect("success outcome requires a payload"))
	}
	return b.close(KindSuccess, payload, true, status, "")
}

func (b *Builder[P]) Invalid(status int, message string) Outcome[P] {
	var zero P
	return b.close(KindInvalidInput, zero, false, status, message)
}

func (b *Builder[P]) Empty(status int, message string) Outcome[P] {
	var zero P
	return b.close(KindEmptyResult, zero, false, status, message)
}

// EmptyWith closes as an empty result carrying a partial payload.
func (b *Builder[P]) EmptyWith(status int, message string, payload P) Outcome[P] {
	return b.close(KindEmptyResult, payload, !isNil(payload), status, message)
}

func (b *Builder[P]) Failure(status int, message string) Outcome[P] {
	var zero P
	return b.close(KindFailure, zero, false, status, message)
}

// FailureWith closes as a failure carrying a partial payload, for example an
// entity that exists but failed verification.
func (b *Builder[P]) FailureWith(status int, message string, payload P) Outcome[P] {
	return b.close(KindFailure, payload, !isNil(payload), status, message)
}

func (b *Builder[P]) close(kind Kind, payload P, hasPayload bool, status int, message string) Outcome[P] {
	if b.closed {
		panic(defect("builder already closed as %s, cannot close as %s", b.closer, kind))
	}
	b.closed = true
	b.closer = kind
	return Outcome[P]{
		kind:       kind,
		payload:    payload,
		hasPayload: hasPayload,
		status:     status,
		message:    message,
		trail:      b.trail.Snapshot(),
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
