package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "trainerbot/internal/platform/testkit"
)

func TestPrefixStacks(t *testing.T) {
	tg := New().Prefix("TELEGRAM_")
	if got := tg.key("BOT_TOKEN"); got != "TELEGRAM_BOT_TOKEN" {
		t.Fatalf("key() = %q", got)
	}
	if got := New().Prefix("CORE_").Prefix("API_").key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("TELEGRAM_")
	t.Setenv("TELEGRAM_BOT_TOKEN", "  123:abc ")
	if got := c.MustString("BOT_TOKEN"); got != "123:abc" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("TELEGRAM_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SVC_")
	t.Setenv("SVC_WORKERS", " 8 ")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	t.Setenv("SVC_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestMustDuration(t *testing.T) {
	c := New().Prefix("GRADING_")
	t.Setenv("GRADING_TIMEOUT", "20s")
	if got := c.MustDuration("TIMEOUT"); got != 20*time.Second {
		t.Fatalf("MustDuration = %v", got)
	}
	t.Setenv("GRADING_BAD", "soon")
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
}

func TestMustURL(t *testing.T) {
	c := New().Prefix("MINI_")
	t.Setenv("MINI_APP_URL", "https://trainer.example.com/app")
	if u := c.MustURL("APP_URL"); u.Host != "trainer.example.com" {
		t.Fatalf("MustURL host = %q", u.Host)
	}
	t.Setenv("MINI_REL", "/relative")
	kit.MustPanic(t, func() { _ = c.MustURL("REL") })
	t.Setenv("MINI_BROKEN", "://x")
	kit.MustPanic(t, func() { _ = c.MustURL("BROKEN") })
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("P_")
	if got := c.MayPort("MISSING", 4000); got != ":4000" {
		t.Fatalf("MayPort default = %q", got)
	}
	t.Setenv("P_PORT", "8080")
	if got := c.MayPort("PORT", 4000); got != ":8080" {
		t.Fatalf("MayPort = %q", got)
	}
	t.Setenv("P_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MayPort("OOB", 1) })
	t.Setenv("P_WORD", "http")
	kit.MustPanic(t, func() { _ = c.MayPort("WORD", 1) })
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_NAME", " bot ")
	t.Setenv("M_N", "7")
	t.Setenv("M_BADN", "seven")
	t.Setenv("M_ON", "true")
	t.Setenv("M_BADB", "perhaps")
	t.Setenv("M_D", "150ms")
	t.Setenv("M_BADD", "later")

	if c.MayString("NAME", "x") != "bot" || c.MayString("NOPE", "x") != "x" {
		t.Fatalf("MayString mismatch")
	}
	if c.MayInt("N", 0) != 7 || c.MayInt("BADN", 3) != 3 || c.MayInt("NOPE", 9) != 9 {
		t.Fatalf("MayInt mismatch")
	}
	if !c.MayBool("ON", false) || c.MayBool("BADB", false) || !c.MayBool("NOPE", true) {
		t.Fatalf("MayBool mismatch")
	}
	if c.MayDuration("D", 0) != 150*time.Millisecond || c.MayDuration("BADD", time.Minute) != time.Minute {
		t.Fatalf("MayDuration mismatch")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORS_")
	t.Setenv("CORS_ORIGINS", " https://a.example, , https://b.example ,, ")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CORS_BLANK", " , ,")
	if got := c.MayCSV("BLANK", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all blank = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("GRADER_")
	if got := c.MayEnum("PROVIDER", "openai", "openai", "gemini", "static"); got != "openai" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("GRADER_PROVIDER", "Gemini")
	if got := c.MayEnum("PROVIDER", "openai", "openai", "gemini", "static"); got != "gemini" {
		t.Fatalf("allowed = %q", got)
	}
	t.Setenv("GRADER_PROVIDER", "claude")
	kit.MustPanic(t, func() { _ = c.MayEnum("PROVIDER", "openai", "openai", "gemini", "static") })
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	if err := os.WriteFile(f, []byte("TRAINERBOT_DOTENV_A=from-file\nTRAINERBOT_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAINERBOT_DOTENV_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("TRAINERBOT_DOTENV_A") })

	loaded, err := LoadDotenv(filepath.Join(dir, "missing.env"), f)
	if err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != f {
		t.Fatalf("loaded = %v", loaded)
	}
	if got := os.Getenv("TRAINERBOT_DOTENV_A"); got != "from-file" {
		t.Fatalf("A = %q", got)
	}
	if got := os.Getenv("TRAINERBOT_DOTENV_B"); got != "from-env" {
		t.Fatalf("process env should win, B = %q", got)
	}
}
