package rest

import (
	"errors"
	"net/http"

	"aidMatch/business/bandit"
	"aidMatch/business/recommendation"
	"aidMatch/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps core errors to HTTP status codes. Known input errors are
// client errors, everything else is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, recommendation.ErrMissingOutcome),
		errors.Is(err, recommendation.ErrInvalidVariant),
		errors.Is(err, domain.ErrUnknownResourceType),
		errors.Is(err, bandit.ErrRewardOutOfRange),
		errors.Is(err, bandit.ErrNoCandidates):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
