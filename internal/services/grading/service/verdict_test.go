package service

import (
	"strings"
	"testing"

	"trainerbot/internal/core/tier"
	dom "trainerbot/internal/services/grading/domain"
)

func TestParseVerdict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		raw      string
		score    int
		feedback string
		sugg     []string
		source   dom.Source
	}{
		{"plain", `{"score":85,"feedback":"solid","suggestions":["a","b"]}`, 85, "solid", []string{"a", "b"}, dom.SourceGraded},
		{"wrapped in prose", "Here you go:\n```json\n{\"score\": 64, \"feedback\": \"ok\"}\n```", 64, "ok", nil, dom.SourceGraded},
		{"above range", `{"score":150,"feedback":"x"}`, 100, "x", nil, dom.SourceGraded},
		{"below range", `{"score":-5,"feedback":"x"}`, 0, "x", nil, dom.SourceGraded},
		{"string score", `{"score":"77","feedback":"x"}`, 77, "x", nil, dom.SourceGraded},
		{"out of hundred", `{"score":"88/100","feedback":"x"}`, 88, "x", nil, dom.SourceGraded},
		{"fraction rounds", `{"score":72.6,"feedback":"x"}`, 73, "x", nil, dom.SourceGraded},
		{"missing score", `{"feedback":"x"}`, DefaultScore, "x", nil, dom.SourceGraded},
		{"garbage score", `{"score":"ten","feedback":"x"}`, DefaultScore, "x", nil, dom.SourceGraded},
		{"empty feedback", `{"score":90,"feedback":"  "}`, 90, DefaultFeedback, nil, dom.SourceGraded},
		{"feedback not a string", `{"score":90,"feedback":{"a":1}}`, 90, DefaultFeedback, nil, dom.SourceGraded},
		{"single suggestion string", `{"score":1,"feedback":"x","suggestions":"read docs"}`, 1, "x", []string{"read docs"}, dom.SourceGraded},
		{"blank suggestions dropped", `{"score":1,"feedback":"x","suggestions":[" ","tip",3,""]}`, 1, "x", []string{"tip"}, dom.SourceGraded},
		{"huge score", `{"score":1e400,"feedback":"x"}`, 100, "x", nil, dom.SourceGraded},
		{"huge negative score", `{"score":"-1e400","feedback":"x"}`, 0, "x", nil, dom.SourceGraded},
		{"tiny score", `{"score":1e-400,"feedback":"x"}`, 0, "x", nil, dom.SourceGraded},
		{"object without score or feedback", `{"note":"looks good"}`, DefaultScore, `{"note":"looks good"}`, []string{ParseSuggestion}, dom.SourceParseFallback},
		{"empty object", `{}`, DefaultScore, `{}`, []string{ParseSuggestion}, dom.SourceParseFallback},
		{"score only", `{"score":42}`, 42, DefaultFeedback, nil, dom.SourceGraded},
		{"not json", "looks good", DefaultScore, "looks good", []string{ParseSuggestion}, dom.SourceParseFallback},
		{"broken json", `{"score": 90, "feedback": "x"`, DefaultScore, `{"score": 90, "feedback": "x"`, []string{ParseSuggestion}, dom.SourceParseFallback},
		{"reversed braces", "} nope {", DefaultScore, "} nope {", []string{ParseSuggestion}, dom.SourceParseFallback},
		{"array", `[1,2]`, DefaultScore, `[1,2]`, []string{ParseSuggestion}, dom.SourceParseFallback},
		{"empty", "", DefaultScore, EmptyFeedback, []string{ParseSuggestion}, dom.SourceParseFallback},
		{"whitespace", " \n ", DefaultScore, EmptyFeedback, []string{ParseSuggestion}, dom.SourceParseFallback},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			v := ParseVerdict(c.raw)
			if v.Score != c.score || v.Feedback != c.feedback || v.Source != c.source {
				t.Fatalf("ParseVerdict(%q) = %+v", c.raw, v)
			}
			if strings.Join(v.Suggestions, "|") != strings.Join(c.sugg, "|") {
				t.Fatalf("suggestions = %q, want %q", v.Suggestions, c.sugg)
			}
		})
	}
}

// Every input yields a score in range and non empty feedback
func TestParseVerdict_AlwaysWellFormed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "{", "}", "{}", "null", `{"score":1e309}`, `{"score":NaN}`, `{"score":null,"feedback":null}`,
		`{"score":true}`, `{"score":[1]}`, strings.Repeat("{", 100), `{"score":"-0.4"}`,
	}
	for _, in := range inputs {
		v := ParseVerdict(in)
		if v.Score < 0 || v.Score > 100 {
			t.Fatalf("ParseVerdict(%q) score = %d", in, v.Score)
		}
		if strings.TrimSpace(v.Feedback) == "" {
			t.Fatalf("ParseVerdict(%q) has empty feedback", in)
		}
	}
}

func TestErrorFallback(t *testing.T) {
	t.Parallel()

	v := ErrorFallback()
	if v.Score != 0 || v.Feedback == "" || len(v.Suggestions) != 1 || v.Source != dom.SourceErrorFallback {
		t.Fatalf("ErrorFallback = %+v", v)
	}
}

func TestRender_TierBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score  int
		tier   tier.Tier
		label  string
		marker string
	}{
		{100, tier.Top, "Excellent!", "🏆"},
		{90, tier.Top, "Excellent!", "🏆"},
		{89, tier.Good, "Good!", "⭐"},
		{80, tier.Good, "Good!", "⭐"},
		{79, tier.Passing, "Not bad", "👍"},
		{60, tier.Passing, "Not bad", "👍"},
		{59, tier.NeedsRevision, "Needs revision", "📚"},
		{0, tier.NeedsRevision, "Needs revision", "📚"},
	}
	for _, c := range cases {
		r := Render(dom.Verdict{Score: c.score, Feedback: "f", Suggestions: []string{"s"}})
		if r.Tier != c.tier || r.Label != c.label || r.Marker != c.marker || r.Score != c.score {
			t.Fatalf("Render(%d) = %+v", c.score, r)
		}
		if len(r.Actions) != 2 || r.Actions[0].ID != dom.ActionMainMenu || r.Actions[1].ID != dom.ActionNewTask {
			t.Fatalf("actions = %+v", r.Actions)
		}
	}
}

func TestRender_DoesNotAliasDefaults(t *testing.T) {
	t.Parallel()

	r := Render(dom.Verdict{Score: 1, Feedback: "f"})
	r.Actions[0].Label = "changed"
	if dom.DefaultActions[0].Label == "changed" {
		t.Fatalf("Render returned the shared DefaultActions slice")
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()
	for in, want := range map[int]int{-1: 0, 0: 0, 50: 50, 100: 100, 101: 100} {
		if got := Clamp(in); got != want {
			t.Fatalf("Clamp(%d) = %d, want %d", in, got, want)
		}
	}
}
