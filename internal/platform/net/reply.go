package net

import (
	"net/http"

	perr "trainerbot/internal/platform/errors"
)

// Wire is the error envelope middleware writes before a handler ever runs
// It has the same JSON shape as the http package Envelope
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error maps err to a status and envelope
func Error(err error, reqID string) (int, Wire) {
	status, w := perr.HTTP(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Field:      w.Field,
		RequestID:  reqID,
	}
}
