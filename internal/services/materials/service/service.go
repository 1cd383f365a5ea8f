// Package service holds the in-memory material registry
package service

import (
	"context"
	"sort"
	"strings"

	perr "trainerbot/internal/platform/errors"
	dom "trainerbot/internal/services/materials/domain"
)

// Registry implements domain.LookupPort over a table loaded once
// The table is never written after New returns, readers need no lock
type Registry struct {
	byID  map[string]dom.Material
	order []string
	def   string
}

var _ dom.LookupPort = (*Registry)(nil)

// New loads src and indexes it. defaultID names the fallback record, empty picks the first
func New(ctx context.Context, src dom.SourcePort, defaultID string) (*Registry, error) {
	xs, err := src.Load(ctx)
	if err != nil {
		return nil, perr.WrapIf(err, perr.ErrorCodeUnavailable, "materials: load")
	}
	return FromList(xs, defaultID)
}

// FromList indexes xs, rejecting duplicate or empty task ids
func FromList(xs []dom.Material, defaultID string) (*Registry, error) {
	r := &Registry{byID: make(map[string]dom.Material, len(xs))}
	for _, m := range xs {
		m.TaskID = strings.TrimSpace(m.TaskID)
		if m.TaskID == "" {
			return nil, perr.InvalidArgf("materials: record without task id")
		}
		if _, dup := r.byID[m.TaskID]; dup {
			return nil, perr.Newf(perr.ErrorCodeConflict, "materials: duplicate task id %q", m.TaskID)
		}
		r.byID[m.TaskID] = m
		r.order = append(r.order, m.TaskID)
	}
	if len(r.order) == 0 {
		return nil, perr.InvalidArgf("materials: registry is empty")
	}

	r.def = r.order[0]
	if defaultID != "" {
		if _, ok := r.byID[defaultID]; !ok {
			return nil, perr.NotFoundf("materials: default task %q not in registry", defaultID)
		}
		r.def = defaultID
	}
	return r, nil
}

// Lookup implements domain.LookupPort
func (r *Registry) Lookup(_ context.Context, taskID string) (dom.Material, error) {
	m, ok := r.byID[taskID]
	if !ok {
		return dom.Material{}, perr.WithField(perr.NotFoundf("material %q not found", taskID), "taskId")
	}
	return m, nil
}

// List implements domain.LookupPort, sorted by task id
func (r *Registry) List(_ context.Context) ([]dom.Material, error) {
	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	out := make([]dom.Material, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// Default implements domain.LookupPort
func (r *Registry) Default(_ context.Context) (dom.Material, error) {
	return r.byID[r.def], nil
}

// TaskText renders the grader facing description of a task
func (r *Registry) TaskText(ctx context.Context, taskID string) (string, error) {
	m, err := r.Lookup(ctx, taskID)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, 2)
	for _, s := range []string{m.Title, m.Description} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return m.TaskID, nil
	}
	return strings.Join(parts, "\n\n"), nil
}
