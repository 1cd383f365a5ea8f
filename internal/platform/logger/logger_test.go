package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "trainerbot/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"INFO", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "info"},
		{"  loud  ", "info"},
	}
	for _, c := range cases {
		if got := parseLevel(c.in).String(); got != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Init is process wide, so this is the only test that calls it
func TestInit_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "trainerbot-test",
		Writer:       &buf,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	emit := func(l *Logger, msg string) {
		s := l.Sample(&zerolog.BasicSampler{N: 1})
		s.Info().Msg(msg)
	}

	emit(Get(), "root-msg")
	emit(Named("grading"), "named-msg")

	ctx := WithRequest(context.Background(), "req-1")
	ctx = WithSubmission(ctx, "sub-1", 4242)
	ctx = WithUpdate(ctx, 77)
	emit(C(ctx), "ctx-msg")
	emit(C(context.Background()), "bare-msg")

	out := buf.String()
	kit.MustContain(t, out, `"message":"root-msg"`)
	kit.MustContain(t, out, `"component":"grading"`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"submission_id":"sub-1"`)
	kit.MustContain(t, out, `"chat_id":4242`)
	kit.MustContain(t, out, `"update_id":77`)
	kit.MustContain(t, out, `"service":"trainerbot-test"`)
	kit.MustContain(t, out, `"build":"test"`)

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.Contains(line, "bare-msg") && strings.Contains(line, "submission_id") {
			t.Fatalf("background logger picked up submission fields: %s", line)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "bot")
	t.Setenv("LOG_COMPONENT", "poller")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "bot" || opt.Component != "poller" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}

func TestWithSubmission_SkipsZeroValues(t *testing.T) {
	ctx := WithSubmission(context.Background(), "", 0)
	if ctx.Value(keySubmissionID) != nil || ctx.Value(keyChatID) != nil {
		t.Fatalf("zero values should not be stored")
	}
	if WithRequest(ctx, "") != ctx {
		t.Fatalf("empty request id should return ctx unchanged")
	}
}
