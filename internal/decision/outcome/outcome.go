package outcome

import "fmt"

// Kind is the terminal shape of an evaluation.
type Kind string

const (
	KindSuccess      Kind = "success"
	KindInvalidInput Kind = "invalid_input"
	KindEmptyResult  Kind = "empty_result"
	KindFailure      Kind = "failure"
)

func (k Kind) String() string {
	return string(k)
}

// Outcome is the result of one workflow evaluation. Only Builder constructs
// outcomes, which guarantees the kind matches the terminal call that produced
// it and that every outcome carries the trail that led to it.
type Outcome[P any] struct {
	kind       Kind
	payload    P
	hasPayload bool
	status     int
	message    string
	trail      []Point
}

func (o Outcome[P]) Kind() Kind {
	return o.kind
}

// Payload returns the payload and whether one was attached. Success outcomes
// always have one; the other kinds only when the evaluator attached a partial
// payload.
func (o Outcome[P]) Payload() (P, bool) {
	return o.payload, o.hasPayload
}

func (o Outcome[P]) Status() int {
	return o.status
}

// Message returns the evaluator-supplied message, if any.
func (o Outcome[P]) Message() (string, bool) {
	return o.message, o.message != ""
}

// Trail returns a copy of the frozen decision trail.
func (o Outcome[P]) Trail() []Point {
	out := make([]Point, len(o.trail))
	copy(out, o.trail)
	return out
}

// IsSuccess reports whether the evaluation completed successfully.
func (o Outcome[P]) IsSuccess() bool {
	return o.kind == KindSuccess
}

// Summary is the payload-free view of an outcome used for logging, metrics
// and audit.
type Summary struct {
	Kind    Kind
	Status  int
	Message string
	Trail   []Point
}

func (o Outcome[P]) Summary() Summary {
	return Summary{
		Kind:    o.kind,
		Status:  o.status,
		Message: o.message,
		Trail:   o.Trail(),
	}
}

// DefectError is raised (via panic) when an evaluator misuses the builder or
// transport meets a kind it does not know. It signals a bug, never a request
// problem.
type DefectError struct {
	Reason string
}

func (e *DefectError) Error() string {
	return "outcome defect: " + e.Reason
}

func defect(format string, args ...any) *DefectError {
	return &DefectError{Reason: fmt.Sprintf(format, args...)}
}

// Unhandled panics for an outcome kind a switch did not cover.
func Unhandled(k Kind) {
	panic(defect("unhandled outcome kind %q", k))
}
