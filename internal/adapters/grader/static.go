package grader

import (
	"context"
	"encoding/json"

	"trainerbot/internal/services/grading/domain"
)

// Static is an offline judge that always returns the same verdict
// It backs GRADER_PROVIDER=static for local runs and the cli
type Static struct {
	Score       int
	Feedback    string
	Suggestions []string
}

var _ domain.Grader = Static{}

// Grade implements domain.Grader
func (s Static) Grade(ctx context.Context, _ domain.GradeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := json.Marshal(struct {
		Score       int      `json:"score"`
		Feedback    string   `json:"feedback"`
		Suggestions []string `json:"suggestions"`
	}{s.Score, s.Feedback, s.Suggestions})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
