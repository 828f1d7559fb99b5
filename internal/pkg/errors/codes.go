package errors

import "net/http"

const (
	CodeInvalidRequest            = "invalid_request"
	CodeInvalidPoints             = "invalid_points"
	CodeRouteFailed               = "route_failed"
	CodeVerificationFailed        = "verification_failed"
	CodeVerificationMisconfigured = "verification_misconfigured"
	CodeUpstreamUnavailable       = "upstream_unavailable"
	CodeUpstreamTimeout           = "upstream_timeout"
	CodeInternal                  = "internal_error"
)

var (
	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request body",
		http.StatusBadRequest,
	)

	ErrInvalidPoints = New(
		CodeInvalidPoints,
		"Invalid points",
		http.StatusBadRequest,
	)

	ErrMissingPoints = New(
		CodeRouteFailed,
		"missing points",
		http.StatusBadRequest,
	)

	ErrVerificationFailed = New(
		CodeVerificationFailed,
		"Human verification failed",
		http.StatusForbidden,
	)

	ErrVerificationMisconfigured = New(
		CodeVerificationMisconfigured,
		"Human verification is required but not configured",
		http.StatusInternalServerError,
	)

	ErrUpstreamUnavailable = New(
		CodeUpstreamUnavailable,
		"Dispatch service unavailable",
		http.StatusBadGateway,
	)

	ErrUpstreamTimeout = New(
		CodeUpstreamTimeout,
		"Dispatch service timed out",
		http.StatusGatewayTimeout,
	)

	ErrInternalServer = New(
		CodeInternal,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
