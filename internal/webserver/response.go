package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/auth"
	"github.com/shreejewels/storefront/internal/domain"
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error  string      `json:"error"`
	Code   string      `json:"code,omitempty"`
	Detail interface{} `json:"detail,omitempty"`
}

func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Error: message, Code: code, Detail: detail})
}

// StatusOf maps the domain error taxonomy onto an HTTP status and error code
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingImage):
		return http.StatusBadRequest, "MISSING_IMAGE"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "INVALID_ID"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, auth.ErrDenied):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	case errors.Is(err, domain.ErrMediaResolution):
		return http.StatusInternalServerError, "MEDIA_ERROR"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// FailErr renders err with the status picked by StatusOf. Internal details stay in the log.
func FailErr(c echo.Context, err error) error {
	status, code := StatusOf(err)
	msg := err.Error()
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		msg = verr.Error()
	case errors.Is(err, domain.ErrMissingImage):
		msg = domain.ErrMissingImage.Error()
	case status == http.StatusServiceUnavailable:
		msg = "Storage is temporarily unavailable, please retry"
	case status == http.StatusInternalServerError:
		msg = "Internal server error"
	}
	if status >= http.StatusInternalServerError {
		c.Set(errorKey, err)
	}
	return Fail(c, status, code, msg, nil)
}

const errorKey = "webserver.error"

// HTTPErrorHandler renders echo errors (unknown route, bad body, panics) as ErrorResponse
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	} else if s, code := StatusOf(err); s != http.StatusInternalServerError {
		_ = Fail(c, s, code, err.Error(), nil)
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = Fail(c, status, "", msg, nil)
}
