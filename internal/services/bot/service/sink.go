package service

import (
	"context"

	"trainerbot/internal/adapters/telegram"
	dom "trainerbot/internal/services/bot/domain"
	grading "trainerbot/internal/services/grading/domain"
)

// Sink delivers grading output to the submitter's chat
// The status artifact is a "checking" message that is deleted once the verdict is ready
type Sink struct {
	api dom.API
}

var _ grading.Sink = (*Sink)(nil)

// NewSink returns a Sink posting through api
func NewSink(api dom.API) *Sink { return &Sink{api: api} }

// Pending posts the status message
func (s *Sink) Pending(ctx context.Context, sub grading.Submission) (grading.StatusHandle, error) {
	m, err := s.api.SendMessage(ctx, telegram.SendMessage{ChatID: sub.ChatID, Text: pendingText})
	if err != nil {
		return grading.StatusHandle{}, err
	}
	chatID := m.Chat.ID
	if chatID == 0 {
		chatID = sub.ChatID
	}
	return grading.StatusHandle{ChatID: chatID, MessageID: m.MessageID}, nil
}

// Clear deletes the status message, messages older than 48h can only be edited
// so a failed delete falls back to blanking it
func (s *Sink) Clear(ctx context.Context, h grading.StatusHandle) error {
	err := s.api.DeleteMessage(ctx, h.ChatID, h.MessageID)
	if err == nil {
		return nil
	}
	if eerr := s.api.EditMessageText(ctx, telegram.EditMessageText{
		ChatID:    h.ChatID,
		MessageID: h.MessageID,
		Text:      "✅ Checked",
	}); eerr != nil {
		return err
	}
	return nil
}

// Deliver sends the formatted result with its follow up buttons
func (s *Sink) Deliver(ctx context.Context, sub grading.Submission, r grading.Rendered) error {
	_, err := s.api.SendMessage(ctx, resultMessage(sub.ChatID, r))
	return err
}
