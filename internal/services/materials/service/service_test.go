package service

import (
	"context"
	stderrs "errors"
	"testing"

	perr "trainerbot/internal/platform/errors"
	dom "trainerbot/internal/services/materials/domain"
)

type staticSource struct {
	xs  []dom.Material
	err error
}

func (s staticSource) Load(context.Context) ([]dom.Material, error) { return s.xs, s.err }

var table = []dom.Material{
	{TaskID: "window-functions", Title: "Window functions"},
	{TaskID: "cohort-analysis-sql", Title: "Cohort analysis", Description: "Group users by signup month."},
	{TaskID: "joins"},
}

func TestRegistry_LookupListDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, err := New(ctx, staticSource{xs: table}, "cohort-analysis-sql")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m, err := r.Lookup(ctx, "joins")
	if err != nil || m.TaskID != "joins" {
		t.Fatalf("Lookup = %+v, %v", m, err)
	}
	_, err = r.Lookup(ctx, "nope")
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("unknown lookup err = %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "taskId" {
		t.Fatalf("field = %q", e.Field())
	}

	xs, _ := r.List(ctx)
	if len(xs) != 3 || xs[0].TaskID != "cohort-analysis-sql" || xs[2].TaskID != "window-functions" {
		t.Fatalf("List not sorted: %+v", xs)
	}

	d, _ := r.Default(ctx)
	if d.TaskID != "cohort-analysis-sql" {
		t.Fatalf("Default = %q", d.TaskID)
	}

	// first record is the default when none is named
	r2, _ := FromList(table, "")
	if d, _ := r2.Default(ctx); d.TaskID != "window-functions" {
		t.Fatalf("implicit default = %q", d.TaskID)
	}
}

func TestRegistry_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  staticSource
		def  string
		code perr.ErrorCode
	}{
		{"source fails", staticSource{err: stderrs.New("connection refused")}, "", perr.ErrorCodeUnavailable},
		{"empty", staticSource{}, "", perr.ErrorCodeInvalidArgument},
		{"blank id", staticSource{xs: []dom.Material{{TaskID: " "}}}, "", perr.ErrorCodeInvalidArgument},
		{"duplicate", staticSource{xs: []dom.Material{{TaskID: "a"}, {TaskID: "a"}}}, "", perr.ErrorCodeConflict},
		{"unknown default", staticSource{xs: table}, "missing", perr.ErrorCodeNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(context.Background(), c.src, c.def)
			if perr.CodeOf(err) != c.code {
				t.Fatalf("code = %v, want %v (err %v)", perr.CodeOf(err), c.code, err)
			}
		})
	}
}

func TestRegistry_TaskText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r, _ := FromList(table, "")

	cases := map[string]string{
		"cohort-analysis-sql": "Cohort analysis\n\nGroup users by signup month.",
		"window-functions":    "Window functions",
		"joins":               "joins",
	}
	for id, want := range cases {
		got, err := r.TaskText(ctx, id)
		if err != nil || got != want {
			t.Fatalf("TaskText(%s) = %q, %v; want %q", id, got, err, want)
		}
	}
	if _, err := r.TaskText(ctx, "nope"); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("unknown task err = %v", err)
	}
}
