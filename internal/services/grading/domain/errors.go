package domain

import (
	perr "trainerbot/internal/platform/errors"
)

var (
	// ErrEmptyAnswer rejects answers with nothing left after cleaning, the grader is never called
	ErrEmptyAnswer = perr.WithField(
		perr.New(perr.ErrorCodeValidation, "answer is empty"),
		"userAnswer",
	)

	// ErrDeliveryFailure means the status artifact could not be created
	ErrDeliveryFailure = perr.New(perr.ErrorCodeUnavailable, "could not post the status message")
)
