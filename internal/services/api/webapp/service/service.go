// Package service implements the Mini App endpoints on top of grading and materials
package service

import (
	"context"

	"trainerbot/internal/adapters/telegram"
	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/platform/logger"
	pnet "trainerbot/internal/platform/net"
	"trainerbot/internal/services/api/webapp/domain"
	grading "trainerbot/internal/services/grading/domain"
	mat "trainerbot/internal/services/materials/domain"

	"github.com/google/uuid"
)

// articleTitle heads the message answerWebAppQuery posts
const articleTitle = "Homework submitted"

// Options wires the Service
type Options struct {
	Grading   grading.ServicePort
	Sink      grading.Sink
	Materials mat.LookupPort
	Answerer  domain.Answerer
}

// Service backs the web app handlers
type Service struct {
	grading   grading.ServicePort
	sink      grading.Sink
	materials mat.LookupPort
	answerer  domain.Answerer
}

// New constructs the Service
func New(o Options) *Service {
	return &Service{grading: o.Grading, sink: o.Sink, materials: o.Materials, answerer: o.Answerer}
}

// Submit queues the answer for grading, the result goes to the verified user's chat
func (s *Service) Submit(ctx context.Context, p pnet.Principal, in domain.SubmitInput) (domain.SubmitAccepted, error) {
	// a private chat with the bot has the user's id
	sub := grading.NewSubmission(in.TaskID, in.UserAnswer, grading.ChannelSigned, p.UserID, p.UserID)

	// the request returns long before the verdict is delivered
	out, err := s.grading.Go(context.WithoutCancel(ctx), sub, s.sink)
	if err != nil {
		return domain.SubmitAccepted{}, err
	}

	go func(l logger.Logger) {
		o := <-out
		if o.DeliveryErr != nil {
			l.Warn().Err(o.DeliveryErr).Msg("webapp: verdict not delivered")
		}
	}(logger.C(ctx).With().Str("submission_id", sub.ID).Logger())

	return domain.SubmitAccepted{SubmissionID: sub.ID, Status: domain.StatusPending}, nil
}

// AnswerQuery posts in.Result on behalf of the user and closes the Mini App
func (s *Service) AnswerQuery(ctx context.Context, p pnet.Principal, in domain.AnswerQueryInput) (domain.AnswerQueryOutput, error) {
	qid := in.QueryID
	if qid == "" {
		qid = p.QueryID
	}
	if qid == "" {
		return domain.AnswerQueryOutput{}, perr.WithField(
			perr.InvalidArgf("no query id, the Mini App was not opened from an inline button"), "queryId")
	}

	sent, err := s.answerer.AnswerWebAppQuery(ctx, qid, telegram.InlineQueryResultArticle{
		Type:                "article",
		ID:                  uuid.NewString(),
		Title:               articleTitle,
		InputMessageContent: telegram.InputMessageContent{MessageText: in.Result},
	})
	if err != nil {
		return domain.AnswerQueryOutput{}, perr.WithOp(err, "webapp.AnswerQuery")
	}
	return domain.AnswerQueryOutput{InlineMessageID: sent.InlineMessageID}, nil
}

// Material returns the record of taskID
func (s *Service) Material(ctx context.Context, taskID string) (mat.Material, error) {
	return s.materials.Lookup(ctx, taskID)
}
