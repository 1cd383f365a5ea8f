// Package gemini grades answers with Google Gemini through the genai SDK
package gemini

import (
	"context"
	"strings"

	"trainerbot/internal/adapters/grader"
	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/services/grading/domain"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Options configures the Grader
type Options struct {
	APIKey      string
	Model       string
	Temperature float32
}

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Grader implements domain.Grader
type Grader struct {
	model    string
	cfg      *genai.GenerateContentConfig
	generate generateFunc
}

var _ domain.Grader = (*Grader)(nil)

// New creates the genai client for the Gemini API backend
func New(ctx context.Context, o Options) (*Grader, error) {
	if strings.TrimSpace(o.APIKey) == "" {
		return nil, perr.InvalidArgf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  o.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "gemini: create client")
	}
	return newGrader(o, client.Models.GenerateContent), nil
}

func newGrader(o Options, gen generateFunc) *Grader {
	if o.Model == "" {
		o.Model = defaultModel
	}
	return &Grader{
		model: o.Model,
		cfg: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(grader.SystemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr(o.Temperature),
		},
		generate: gen,
	}
}

// Grade implements domain.Grader
func (g *Grader) Grade(ctx context.Context, req domain.GradeRequest) (string, error) {
	resp, err := g.generate(ctx, g.model, genai.Text(grader.UserPrompt(req)), g.cfg)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUpstream, "gemini: generate")
	}
	if resp == nil {
		return "", perr.Upstreamf("gemini: empty response")
	}
	return resp.Text(), nil
}
