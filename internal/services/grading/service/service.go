// Package service runs the grading pipeline
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trainerbot/internal/core/answer"
	"trainerbot/internal/platform/logger"
	dom "trainerbot/internal/services/grading/domain"
)

// DefaultTimeout bounds one grader call
const DefaultTimeout = 20 * time.Second

// Options configures the Service
type Options struct {
	Grader dom.Grader

	// Tasks resolves task text, nil sends the task id as the text
	Tasks dom.TaskResolver

	// Timeout bounds the grader call, 0 uses DefaultTimeout
	Timeout time.Duration
}

// Service implements domain.ServicePort
type Service struct {
	grader  dom.Grader
	tasks   dom.TaskResolver
	timeout time.Duration

	// background gradings started by Go, whatever the channel
	inflight sync.WaitGroup
}

var _ dom.ServicePort = (*Service)(nil)

// New constructs the Service
func New(opt Options) *Service {
	if opt.Grader == nil {
		panic("grading.Service requires a non nil Grader")
	}
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}
	return &Service{grader: opt.Grader, tasks: opt.Tasks, timeout: opt.Timeout}
}

// Submit implements domain.ServicePort
func (s *Service) Submit(ctx context.Context, sub dom.Submission, sink dom.Sink) (dom.Outcome, error) {
	ch, err := s.Go(ctx, sub, sink)
	if err != nil {
		return dom.Outcome{Submission: sub}, err
	}
	return <-ch, nil
}

// Go implements domain.ServicePort
// The returned error is either ErrEmptyAnswer or ErrDeliveryFailure, both before any grading
func (s *Service) Go(ctx context.Context, sub dom.Submission, sink dom.Sink) (<-chan dom.Outcome, error) {
	if answer.IsBlank(sub.AnswerText) {
		return nil, dom.ErrEmptyAnswer
	}

	ctx = logger.WithSubmission(ctx, sub.ID, sub.ChatID)
	l := logger.C(ctx).With().Str("mod", "grading").Str("task_id", sub.TaskID).Logger()

	h, err := sink.Pending(ctx, sub)
	if err != nil {
		l.Error().Err(err).Msg("grading: status message failed")
		return nil, fmt.Errorf("%w: %v", dom.ErrDeliveryFailure, err)
	}
	l.Debug().Str("channel", string(sub.Channel)).Msg("grading: pending")

	out := make(chan dom.Outcome, 1)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer close(out)
		out <- s.finish(ctx, sub, sink, h)
	}()
	return out, nil
}

// Wait implements domain.ServicePort
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) finish(ctx context.Context, sub dom.Submission, sink dom.Sink, h dom.StatusHandle) dom.Outcome {
	l := logger.C(ctx).With().Str("mod", "grading").Str("task_id", sub.TaskID).Logger()
	start := time.Now()

	v := s.grade(ctx, sub)
	r := Render(v)
	l.Info().
		Int("score", v.Score).
		Str("source", string(v.Source)).
		Str("tier", string(r.Tier)).
		Dur("took", time.Since(start)).
		Msg("grading: verdict")

	// the verdict is delivered even when the status artifact refuses to go away
	if err := sink.Clear(ctx, h); err != nil {
		l.Warn().Err(err).Msg("grading: clear status failed")
	}

	o := dom.Outcome{Submission: sub, Verdict: v, Rendered: r}
	if err := sink.Deliver(ctx, sub, r); err != nil {
		l.Warn().Err(err).Msg("grading: deliver failed")
		o.DeliveryErr = err
	}
	return o
}

type gradeResult struct {
	text string
	err  error
}

func (s *Service) grade(ctx context.Context, sub dom.Submission) dom.Verdict {
	l := logger.C(ctx).With().Str("mod", "grading").Logger()

	req := dom.GradeRequest{
		TaskID:     sub.TaskID,
		TaskText:   s.taskText(ctx, sub.TaskID),
		AnswerText: answer.Clean(sub.AnswerText),
	}

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// buffered so a grader that ignores gctx can still finish and exit
	res := make(chan gradeResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				res <- gradeResult{err: fmt.Errorf("grader panic: %v", p)}
			}
		}()
		text, err := s.grader.Grade(gctx, req)
		res <- gradeResult{text: text, err: err}
	}()

	select {
	case r := <-res:
		if r.err != nil {
			l.Warn().Err(r.err).Msg("grading: grader failed")
			return ErrorFallback()
		}
		v := ParseVerdict(r.text)
		if v.Source == dom.SourceParseFallback {
			l.Warn().Int("len", len(r.text)).Msg("grading: response was not a verdict")
		}
		return v
	case <-gctx.Done():
		l.Warn().Err(gctx.Err()).Dur("timeout", s.timeout).Msg("grading: grader timed out")
		return ErrorFallback()
	}
}

func (s *Service) taskText(ctx context.Context, taskID string) string {
	if s.tasks == nil {
		return taskID
	}
	text, err := s.tasks.TaskText(ctx, taskID)
	if err != nil || text == "" {
		logger.C(ctx).Debug().Err(err).Str("task_id", taskID).Msg("grading: task text unresolved")
		return taskID
	}
	return text
}
