package httpkit

import (
	"net/http"

	phttp "trainerbot/internal/platform/net/http"
)

// Get mounts a body-less handler under GET, the result is wrapped as a 200
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON mounts a JSON handler under POST with the body bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Bind adapts a handler that picks its own status to a validated JSON body
func Bind[T any](h func(*http.Request, T) Response) Handler {
	return phttp.BindJSON(h)
}
