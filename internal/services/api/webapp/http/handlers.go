// Package http provides http transport for the Mini App
package http

import (
	stdhttp "net/http"

	"trainerbot/internal/modkit/httpkit"
	perr "trainerbot/internal/platform/errors"
	pnet "trainerbot/internal/platform/net"
	"trainerbot/internal/services/api/webapp/domain"
	svc "trainerbot/internal/services/api/webapp/service"
)

// Register mounts the web app routes, the router must already be behind the init data guard
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	r.Post("/submit-homework", httpkit.Bind(h.submit))
	httpkit.PostJSON(r, "/answer-query", h.answerQuery)
	httpkit.Get(r, "/materials/{taskId}", h.material)
}

type handlers struct{ svc *svc.Service }

func principal(r *stdhttp.Request) (pnet.Principal, error) {
	p, ok := pnet.PrincipalFrom(r.Context())
	if !ok {
		return pnet.Principal{}, perr.Unauthorizedf("no verified caller")
	}
	return p, nil
}

// @Summary Queue an answer for grading
// @Tags webapp
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Answer"
// @Success 202 {object} domain.SubmitAccepted "queued"
// @Failure 400 {object} httpkit.Envelope "empty or invalid answer"
// @Router /webapp/submit-homework [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) httpkit.Response {
	p, err := principal(r)
	if err != nil {
		return httpkit.Error(err)
	}
	out, err := h.svc.Submit(r.Context(), p, in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Accepted(out)
}

// @Summary Close the Mini App with a message
// @Tags webapp
// @Accept json
// @Produce json
// @Param payload body domain.AnswerQueryInput true "Result"
// @Success 200 {object} domain.AnswerQueryOutput "answered"
// @Router /webapp/answer-query [post]
func (h *handlers) answerQuery(r *stdhttp.Request, in domain.AnswerQueryInput) (any, error) {
	p, err := principal(r)
	if err != nil {
		return nil, err
	}
	return h.svc.AnswerQuery(r.Context(), p, in)
}

// @Summary Learning materials of one task
// @Tags webapp
// @Produce json
// @Param taskId path string true "Task id"
// @Success 200 {object} materials.Material "materials"
// @Failure 404 {object} httpkit.Envelope "unknown task"
// @Router /webapp/materials/{taskId} [get]
func (h *handlers) material(r *stdhttp.Request) (any, error) {
	return h.svc.Material(r.Context(), httpkit.URLParam(r, "taskId"))
}
