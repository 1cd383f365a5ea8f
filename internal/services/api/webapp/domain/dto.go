// Package domain holds the web app DTOs and ports
package domain

import (
	"context"

	"trainerbot/internal/adapters/telegram"
)

// SubmitInput is the homework form
type SubmitInput struct {
	TaskID     string `json:"taskId"     validate:"required,taskid" example:"cohort-analysis-sql"`
	UserAnswer string `json:"userAnswer" validate:"max=8000"`
}

// SubmitAccepted acknowledges a queued submission, the verdict arrives in the chat
type SubmitAccepted struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status" example:"pending"`
}

// StatusPending is the only status the API reports, results are never stored
const StatusPending = "pending"

// AnswerQueryInput closes an inline opened Mini App with a message
type AnswerQueryInput struct {
	// QueryID defaults to the query_id of the verified init data
	QueryID string `json:"queryId" validate:"max=256"`
	Result  string `json:"result"  validate:"required,max=4096"`
}

// AnswerQueryOutput is what answerWebAppQuery returned
type AnswerQueryOutput struct {
	InlineMessageID string `json:"inline_message_id,omitempty"`
}

// Answerer posts answerWebAppQuery
type Answerer interface {
	AnswerWebAppQuery(ctx context.Context, queryID string, r telegram.InlineQueryResultArticle) (telegram.SentWebAppMessage, error)
}
