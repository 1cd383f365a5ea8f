package domain

import "context"

// Grader is the external judge, it returns the raw model text
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (string, error)
}

// GraderFunc adapts a function to Grader
type GraderFunc func(ctx context.Context, req GradeRequest) (string, error)

// Grade implements Grader
func (f GraderFunc) Grade(ctx context.Context, req GradeRequest) (string, error) { return f(ctx, req) }

// Sink is the transport side of a submission
// Pending posts the status artifact, Clear removes it and Deliver sends the result
type Sink interface {
	Pending(ctx context.Context, sub Submission) (StatusHandle, error)
	Clear(ctx context.Context, h StatusHandle) error
	Deliver(ctx context.Context, sub Submission, r Rendered) error
}

// TaskResolver turns a task id into the task text the grader sees
type TaskResolver interface {
	TaskText(ctx context.Context, taskID string) (string, error)
}

// ServicePort is what shells call
type ServicePort interface {
	// Submit runs the whole pipeline and blocks until the result is delivered
	Submit(ctx context.Context, sub Submission, sink Sink) (Outcome, error)

	// Go validates and posts the status artifact, then grades in the background
	// The channel yields exactly one Outcome and is closed afterwards
	Go(ctx context.Context, sub Submission, sink Sink) (<-chan Outcome, error)

	// Wait blocks until every grading started by Go has delivered or ctx is done
	Wait(ctx context.Context) error
}
