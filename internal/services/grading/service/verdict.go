package service

import (
	"bytes"
	"encoding/json"
	stderrs "errors"
	"math"
	"strconv"
	"strings"

	"trainerbot/internal/core/tier"
	dom "trainerbot/internal/services/grading/domain"
)

// Fallback content
const (
	DefaultScore    = 70
	DefaultFeedback = "Your answer was reviewed."
	EmptyFeedback   = "The grader returned an empty response."
	ParseSuggestion = "Review the task requirements and compare them with your answer."
	ErrorFeedback   = "Sorry, automatic checking is unavailable right now, so your answer was not graded."
	ErrorSuggestion = "Try submitting again in a few minutes or contact your mentor."
)

const minScore, maxScore = 0, 100

// ErrorFallback is the verdict for a failed or timed out grader call
func ErrorFallback() dom.Verdict {
	return dom.Verdict{
		Score:       minScore,
		Feedback:    ErrorFeedback,
		Suggestions: []string{ErrorSuggestion},
		Source:      dom.SourceErrorFallback,
	}
}

// parseFallback keeps the raw text as feedback
func parseFallback(raw string) dom.Verdict {
	fb := strings.TrimSpace(raw)
	if fb == "" {
		fb = EmptyFeedback
	}
	return dom.Verdict{
		Score:       DefaultScore,
		Feedback:    fb,
		Suggestions: []string{ParseSuggestion},
		Source:      dom.SourceParseFallback,
	}
}

type wireVerdict struct {
	Score       json.RawMessage `json:"score"`
	Feedback    json.RawMessage `json:"feedback"`
	Suggestions json.RawMessage `json:"suggestions"`
}

// ParseVerdict normalizes raw grader text into a Verdict
// The JSON object is taken from the first '{' to the last '}' so prose and code fences around it are ignored
// Anything that is not an object becomes the parse fallback
func ParseVerdict(raw string) dom.Verdict {
	i := strings.IndexByte(raw, '{')
	j := strings.LastIndexByte(raw, '}')
	if i < 0 || j < i {
		return parseFallback(raw)
	}

	var w wireVerdict
	if err := json.Unmarshal([]byte(raw[i:j+1]), &w); err != nil {
		return parseFallback(raw)
	}

	score, scored := parseScore(w.Score)
	fb := strings.TrimSpace(parseText(w.Feedback))
	// an object with neither field is not a verdict
	if !scored && fb == "" {
		return parseFallback(raw)
	}
	if !scored {
		score = DefaultScore
	}
	if fb == "" {
		fb = DefaultFeedback
	}
	return dom.Verdict{
		Score:       Clamp(score),
		Feedback:    fb,
		Suggestions: parseSuggestions(w.Suggestions),
		Source:      dom.SourceGraded,
	}
}

// Clamp bounds score to [0,100]
func Clamp(score int) int {
	return max(minScore, min(maxScore, score))
}

// parseScore accepts a JSON number or a numeric string, fractions are rounded
func parseScore(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "/100")
	} else {
		s = string(raw)
	}
	// out of range literals come back as ±Inf with ErrRange and clamp below
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if (err != nil && !stderrs.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
		return 0, false
	}
	switch {
	case f > maxScore:
		return maxScore, true
	case f < minScore:
		return minScore, true
	}
	return int(math.Round(f)), true
}

func parseText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// parseSuggestions accepts a list of strings or a single string, blanks are dropped
func parseSuggestions(raw json.RawMessage) []string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		if one := strings.TrimSpace(parseText(raw)); one != "" {
			return []string{one}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Render turns a verdict into presentation content
func Render(v dom.Verdict) dom.Rendered {
	t := tier.Of(v.Score)
	return dom.Rendered{
		Tier:        t,
		Label:       t.Label(),
		Marker:      t.Marker(),
		Score:       v.Score,
		Feedback:    v.Feedback,
		Suggestions: append([]string(nil), v.Suggestions...),
		Actions:     append([]dom.Action(nil), dom.DefaultActions...),
	}
}
