// Package openai grades answers with the OpenAI chat completions API
package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"trainerbot/internal/adapters/grader"
	"trainerbot/internal/adapters/rest"
	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/services/grading/domain"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Options configures the Grader
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	// Retries covers 429 and 5xx, the grading timeout still bounds the whole call
	Retries int
	Timeout time.Duration
}

// Grader implements domain.Grader
type Grader struct {
	rc          *rest.Client
	model       string
	temperature float32
}

var _ domain.Grader = (*Grader)(nil)

// New returns a Grader, an empty key is a configuration error
func New(o Options) (*Grader, error) {
	if strings.TrimSpace(o.APIKey) == "" {
		return nil, perr.InvalidArgf("openai: api key is required")
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	return &Grader{
		rc: rest.New(rest.Options{
			Name:       "openai",
			BaseURL:    strings.TrimRight(o.BaseURL, "/"),
			Header:     http.Header{"Authorization": {"Bearer " + o.APIKey}},
			MaxRetries: o.Retries,
			Timeout:    o.Timeout,
		}),
		model:       o.Model,
		temperature: o.Temperature,
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []message      `json:"messages"`
	Temperature    float32        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Grade implements domain.Grader
func (g *Grader) Grade(ctx context.Context, req domain.GradeRequest) (string, error) {
	in := chatRequest{
		Model: g.model,
		Messages: []message{
			{Role: "system", Content: grader.SystemPrompt},
			{Role: "user", Content: grader.UserPrompt(req)},
		},
		Temperature:    g.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	var out chatResponse
	if err := g.rc.JSON(ctx, http.MethodPost, "/chat/completions", in, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", perr.Upstreamf("openai: response without choices")
	}
	return out.Choices[0].Message.Content, nil
}
