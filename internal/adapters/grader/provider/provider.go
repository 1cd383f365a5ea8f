// Package provider picks the grader implementation from configuration
package provider

import (
	"context"

	"trainerbot/internal/adapters/grader"
	"trainerbot/internal/adapters/grader/gemini"
	"trainerbot/internal/adapters/grader/openai"
	"trainerbot/internal/platform/config"
	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/services/grading/domain"
)

// Provider names accepted by GRADER_PROVIDER
const (
	OpenAI = "openai"
	Gemini = "gemini"
	Static = "static"
)

// FromConfig builds the configured grader
//
//	GRADER_PROVIDER  openai | gemini | static (default openai)
//	OPENAI_API_KEY, OPENAI_MODEL, OPENAI_BASE_URL, OPENAI_RETRIES
//	GEMINI_API_KEY, GEMINI_MODEL
//	GRADER_TEMPERATURE_PCT, GRADER_STATIC_SCORE, GRADER_STATIC_FEEDBACK, GRADER_STATIC_SUGGESTIONS
func FromConfig(ctx context.Context, cfg config.Conf) (domain.Grader, string, error) {
	name := cfg.MayEnum("GRADER_PROVIDER", OpenAI, OpenAI, Gemini, Static)
	temp := float32(cfg.MayInt("GRADER_TEMPERATURE_PCT", 70)) / 100

	switch name {
	case Gemini:
		gc := cfg.Prefix("GEMINI_")
		g, err := gemini.New(ctx, gemini.Options{
			APIKey:      gc.MayString("API_KEY", ""),
			Model:       gc.MayString("MODEL", ""),
			Temperature: temp,
		})
		if err != nil {
			return nil, name, err
		}
		return g, name, nil
	case Static:
		return grader.Static{
			Score:       cfg.MayInt("GRADER_STATIC_SCORE", 85),
			Feedback:    cfg.MayString("GRADER_STATIC_FEEDBACK", "The task is solved correctly."),
			Suggestions: cfg.MayCSV("GRADER_STATIC_SUGGESTIONS", []string{"Keep it up!"}),
		}, name, nil
	case OpenAI:
		oc := cfg.Prefix("OPENAI_")
		g, err := openai.New(openai.Options{
			APIKey:      oc.MayString("API_KEY", ""),
			Model:       oc.MayString("MODEL", ""),
			BaseURL:     oc.MayString("BASE_URL", ""),
			Retries:     oc.MayInt("RETRIES", 0),
			Temperature: temp,
		})
		if err != nil {
			return nil, name, err
		}
		return g, name, nil
	}
	return nil, name, perr.InvalidArgf("grader: unknown provider %q", name)
}
