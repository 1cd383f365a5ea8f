// Package http is the HTTP surface of the platform: the chi backed router seam, the JSON
// response envelope and the server lifecycle
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "trainerbot/internal/platform/errors"
	pnet "trainerbot/internal/platform/net"
)

// Envelope wraps every JSON response body
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return style handlers produce
// A Body that is an error replaces Status with the mapped error status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a return style handler
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	if err, ok := resp.Body.(error); ok && err != nil {
		var wire perr.Wire
		status, wire = perr.HTTP(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	} else {
		env.Data = resp.Body
	}
	env.StatusCode = status
	env.Status = stdhttp.StatusText(status)
	JSON(w, status, env)
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Accepted is a 202, work continues after the response
func Accepted(data any) Response { return Response{Status: stdhttp.StatusAccepted, Body: data} }

// NoContent is a 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Body: err} }
