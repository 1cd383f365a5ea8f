package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "trainerbot/internal/platform/errors"
	phttp "trainerbot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

var errUnauthorized = perr.Unauthorizedf("no init data")

type echoIn struct {
	Text string `json:"text" validate:"required,max=10"`
}

func TestSugar_GetPostBind(t *testing.T) {
	t.Parallel()

	mux := chi.NewMux()
	r := phttp.AdaptChi(mux)
	Get(r, "/items/{id}", func(req *http.Request) (any, error) {
		return map[string]string{"id": URLParam(req, "id")}, nil
	})
	PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) {
		return in, nil
	})
	r.Post("/queue", Bind(func(_ *http.Request, in echoIn) Response {
		return Accepted(map[string]string{"queued": in.Text})
	}))

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"get with param", http.MethodGet, "/items/42", "", http.StatusOK, `"id":"42"`},
		{"post echo", http.MethodPost, "/echo", `{"text":"hi"}`, http.StatusOK, `"text":"hi"`},
		{"post invalid", http.MethodPost, "/echo", `{"text":""}`, http.StatusBadRequest, `"field":"text"`},
		{"bind accepted", http.MethodPost, "/queue", `{"text":"x"}`, http.StatusAccepted, `"queued":"x"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, strings.NewReader(c.body)))
			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d body=%s", rec.Code, c.status, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), c.want) {
				t.Fatalf("body %s missing %s", rec.Body.String(), c.want)
			}
			var env Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("envelope: %v", err)
			}
		})
	}
}
