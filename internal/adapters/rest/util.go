package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "trainerbot/internal/platform/errors"
)

// StatusError carries a non 2xx response
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

func newStatusError(name string, status int, body []byte) error {
	se := &StatusError{Status: status, Body: string(body)}
	return perr.Wrapf(se, codeFor(status), "%s: unexpected status %d", name, status)
}

// codeFor maps an upstream status onto our taxonomy
func codeFor(status int) perr.ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case status == http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case status == http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case status == http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case status == http.StatusConflict:
		return perr.ErrorCodeConflict
	case status >= 400 && status < 500:
		return perr.ErrorCodeInvalidArgument
	case status == http.StatusServiceUnavailable:
		return perr.ErrorCodeUnavailable
	case status == http.StatusGatewayTimeout:
		return perr.ErrorCodeTimeout
	default:
		return perr.ErrorCodeUpstream
	}
}

// AsStatus returns the StatusError in err's chain
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter reads Retry-After as seconds or an HTTP date
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if sec, err := strconv.Atoi(v); err == nil {
		if sec <= 0 {
			return 0
		}
		return min(time.Duration(sec)*time.Second, maxBackoff)
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return min(at.Sub(now), maxBackoff)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
