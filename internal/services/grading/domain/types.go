// Package domain defines the types and ports of the grading pipeline
package domain

import (
	"trainerbot/internal/core/tier"

	"github.com/google/uuid"
)

// Channel says how a submission reached us
type Channel string

const (
	// ChannelSigned is the Mini App HTTP path, fields are trusted after init data verification
	ChannelSigned Channel = "signed"

	// ChannelDirect is the chat path: deep links and web_app_data messages
	ChannelDirect Channel = "direct"
)

// Submission is one answer on its way through the pipeline
// Values are immutable and dropped once the result is delivered
type Submission struct {
	ID         string
	TaskID     string
	AnswerText string
	Channel    Channel
	ChatID     int64
	UserID     int64
}

// NewSubmission stamps a fresh id on the submission
func NewSubmission(taskID, answerText string, ch Channel, chatID, userID int64) Submission {
	return Submission{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		AnswerText: answerText,
		Channel:    ch,
		ChatID:     chatID,
		UserID:     userID,
	}
}

// Source records which branch produced a verdict, for logs only
type Source string

const (
	SourceGraded        Source = "graded"
	SourceParseFallback Source = "parse_fallback"
	SourceErrorFallback Source = "error_fallback"
)

// Verdict is the normalized grading result
// Score is always within [0,100] and Feedback is never empty
type Verdict struct {
	Score       int
	Feedback    string
	Suggestions []string
	Source      Source
}

// GradeRequest is what a Grader receives
type GradeRequest struct {
	TaskID     string
	TaskText   string
	AnswerText string
}

// Action is a follow-up affordance offered with a result
type Action struct {
	ID    string
	Label string
}

// Follow-up action ids, shared with the bot callback handler
const (
	ActionMainMenu = "main_menu"
	ActionNewTask  = "new_task"
)

// DefaultActions are offered after every result
var DefaultActions = []Action{
	{ID: ActionMainMenu, Label: "🏠 Main menu"},
	{ID: ActionNewTask, Label: "📚 New task"},
}

// Rendered is transport neutral presentation content
type Rendered struct {
	Tier        tier.Tier
	Label       string
	Marker      string
	Score       int
	Feedback    string
	Suggestions []string
	Actions     []Action
}

// StatusHandle points at the "checking" status artifact so it can be removed later
type StatusHandle struct {
	ChatID    int64
	MessageID int64
}

// Outcome is the terminal state of one submission
type Outcome struct {
	Submission Submission
	Verdict    Verdict
	Rendered   Rendered

	// DeliveryErr is set when the result could not be handed to the transport
	DeliveryErr error
}
