package module

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/module"
	"trainerbot/internal/platform/config"
	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/services/materials/domain"
)

func TestNew_BuiltInTable(t *testing.T) {
	t.Setenv("MATERIALS_FILE", "")
	t.Setenv("MATERIALS_DEFAULT_TASK", "")

	m, err := New(context.Background(), modkit.Deps{Cfg: config.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "materials" {
		t.Fatalf("name = %q", m.Name())
	}
	lookup := module.MustPortsOf[domain.LookupPort](m)
	d, _ := lookup.Default(context.Background())
	if d.TaskID != "cohort-analysis-sql" {
		t.Fatalf("default = %q", d.TaskID)
	}
}

func TestNew_FileAndDefaultOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.yaml")
	doc := "default: a\nmaterials:\n  - task_id: a\n    download_url: u\n    download_filename: f\n    course_url: c\n  - task_id: b\n    download_url: u\n    download_filename: f\n    course_url: c\n"
	if err := os.WriteFile(p, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MATERIALS_FILE", p)
	t.Setenv("MATERIALS_DEFAULT_TASK", "b")

	m, err := New(context.Background(), modkit.Deps{Cfg: config.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d, _ := m.ports.Lookup.Default(context.Background())
	if d.TaskID != "b" {
		t.Fatalf("default = %q, want b", d.TaskID)
	}
}

func TestNew_MissingFile(t *testing.T) {
	t.Setenv("MATERIALS_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("MATERIALS_DEFAULT_TASK", "")

	_, err := New(context.Background(), modkit.Deps{Cfg: config.New()})
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("err = %v", err)
	}
}
