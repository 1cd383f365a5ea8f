package http

import (
	"net/http"

	"trainerbot/internal/platform/net/http/bind"
)

// GetJSON mounts fn for GET, its result is wrapped as a 200
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response {
		out, err := fn(req)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	}))
}

// PostJSON mounts fn for POST with the body bound and validated into T
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, BindJSON(func(req *http.Request, in T) Response {
		out, err := fn(req, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	}))
}

// BindJSON is PostJSON for handlers that pick their own status
func BindJSON[T any](fn func(*http.Request, T) Response) Handler {
	return Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return Error(err)
		}
		return fn(req, in)
	})
}
