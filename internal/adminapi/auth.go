package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shreejewels/storefront/internal/auth"
	"github.com/shreejewels/storefront/internal/webserver"
)

type loginPayload struct {
	Passphrase string `json:"passphrase" validate:"required,max=256"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/login", login)
	webserver.ApiPOST("/logout", logout)
}

// login checks the shared passphrase, opens the admin session and returns a bearer token
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return failErr(c, err)
	}

	appCtx := GetAppContext(c)
	sess, err := appCtx.Authenticator().Authenticate(c.Request().Context(), payload.Passphrase)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid passphrase", nil)
	}
	cfg := appCtx.Config()
	token, err := auth.IssueToken(sess, cfg.Web.Secret)
	if err != nil {
		return failErr(c, err)
	}
	if err := webserver.StartSession(c, sess, cfg.Admin.SessionMaxAge); err != nil {
		return failErr(c, err)
	}
	return ok(c, loginResponse{Success: true, Token: token, ExpiresAt: sess.ExpiresAt})
}

func logout(c echo.Context) error {
	if err := webserver.EndSession(c); err != nil {
		return failErr(c, err)
	}
	return success(c)
}
