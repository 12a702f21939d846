package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Counts business-rule rejections in the loan metrics.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		metrics.LoanRejectionsTotal.WithLabelValues("validation").Inc()
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrBookNotFound):
		metrics.LoanRejectionsTotal.WithLabelValues("book_not_found").Inc()
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.LoanRejectionsTotal.WithLabelValues("user_not_found").Inc()
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrLoanNotFound):
		metrics.LoanRejectionsTotal.WithLabelValues("loan_not_found").Inc()
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicateISBN), errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrNoCopiesAvailable):
		metrics.LoanRejectionsTotal.WithLabelValues("no_copies").Inc()
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrLoanAlreadyReturned):
		metrics.LoanRejectionsTotal.WithLabelValues("already_returned").Inc()
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNotPhysicalBook),
		errors.Is(err, domain.ErrNotDigitalBook),
		errors.Is(err, domain.ErrInvalidCopyCount):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
