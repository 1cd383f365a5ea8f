// Package domain defines the inbound event model and ports of the chat bot
package domain

import (
	"context"

	"trainerbot/internal/adapters/telegram"
	grading "trainerbot/internal/services/grading/domain"
)

// Action is what an inbound event asks the bot to do
type Action string

const (
	ActionOpenDownload   Action = "open_download"
	ActionOpenCourse     Action = "open_course"
	ActionSubmitHomework Action = "submit_homework"
	ActionOther          Action = "other"
)

// Event is one inbound action, whichever way it reached us
// For the signed channel RawPayload is the init data and nothing else is trusted until it verifies
type Event struct {
	Channel    grading.Channel
	RawPayload string
	Action     Action
	TaskID     string
	AnswerText string
	ChatID     int64
	UserID     int64
}

// API is the slice of the Bot API the bot calls
type API interface {
	SendMessage(ctx context.Context, m telegram.SendMessage) (telegram.Message, error)
	EditMessageText(ctx context.Context, m telegram.EditMessageText) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	AnswerCallbackQuery(ctx context.Context, id, text string) error
}

var _ API = (*telegram.Client)(nil)
