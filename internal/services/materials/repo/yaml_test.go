package repo

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perr "trainerbot/internal/platform/errors"
)

func TestYAML_BuiltInTable(t *testing.T) {
	t.Parallel()

	f, err := NewYAML("").File(context.Background())
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if f.Default != "cohort-analysis-sql" {
		t.Fatalf("default = %q", f.Default)
	}
	if len(f.Materials) != 1 {
		t.Fatalf("materials = %d", len(f.Materials))
	}
	m := f.Materials[0]
	if m.DownloadURL != "https://docs.google.com/spreadsheets/d/1example123/export?format=xlsx" ||
		m.DownloadFilename != "cohort_analysis_data.xlsx" ||
		m.CourseURL != "https://sqlcourse.example.com/cohort-analysis" {
		t.Fatalf("cohort record = %+v", m)
	}
	if strings.TrimSpace(m.Description) == "" {
		t.Fatalf("description is empty")
	}
}

func TestYAML_FromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "materials.yaml")
	doc := `
materials:
  - task_id: window-functions
    title: Window functions
    download_url: https://example.com/w.xlsx
    download_filename: w.xlsx
    course_url: https://example.com/w
  - task_id: joins
    download_url: https://example.com/j.xlsx
    download_filename: j.xlsx
    course_url: https://example.com/j
`
	if err := os.WriteFile(p, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	xs, err := NewYAML(p).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(xs) != 2 || xs[0].TaskID != "window-functions" || xs[1].Title != "" {
		t.Fatalf("materials = %+v", xs)
	}
}

func TestYAML_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		read func(string) ([]byte, error)
		code perr.ErrorCode
	}{
		{"missing file", func(string) ([]byte, error) { return nil, fs.ErrNotExist }, perr.ErrorCodeNotFound},
		{"unreadable", func(string) ([]byte, error) { return nil, fs.ErrPermission }, perr.ErrorCodeUnavailable},
		{"empty", func(string) ([]byte, error) { return nil, nil }, perr.ErrorCodeInvalidArgument},
		{"unknown key", func(string) ([]byte, error) {
			return []byte("materials:\n  - task_id: a\n    colour: red\n"), nil
		}, perr.ErrorCodeInvalidArgument},
		{"not yaml", func(string) ([]byte, error) { return []byte("materials: [\n"), nil }, perr.ErrorCodeInvalidArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			y := &YAML{Path: "materials.yaml", read: c.read}
			_, err := y.Load(context.Background())
			if perr.CodeOf(err) != c.code {
				t.Fatalf("code = %v, want %v (err %v)", perr.CodeOf(err), c.code, err)
			}
		})
	}
}
