// Package grader holds what every AI judge adapter shares: the prompt and a static judge
package grader

import (
	"fmt"

	"trainerbot/internal/services/grading/domain"
)

// SystemPrompt instructs the model to answer with a verdict object only
const SystemPrompt = `You are an expert in data analysis and SQL reviewing a student's homework.
Grade the answer on a scale from 0 to 100 and give constructive feedback.
Reply with JSON only, in exactly this shape:
{"score": <integer 0-100>, "feedback": "<text>", "suggestions": ["<tip>", "<tip>"]}`

// UserPrompt renders the task and the answer for the model
func UserPrompt(req domain.GradeRequest) string {
	return fmt.Sprintf("Task:\n%s\n\nAnswer:\n%s", req.TaskText, req.AnswerText)
}
