package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/shreejewels/storefront/internal/auth"
)

const (
	SessionName   = "storefront_admin"
	sessionAuthed = "authenticated"
	sessionExpire = "expires"
	loginPath     = "/login"
)

// StartSession marks the browser session as authenticated
func StartSession(c echo.Context, s auth.Session, maxAge int) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[sessionAuthed] = true
	sess.Values[sessionExpire] = s.ExpiresAt.Unix()
	return sess.Save(c.Request(), c.Response())
}

func EndSession(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(c.Request(), c.Response())
}

// HasSession reports whether the request carries an authenticated admin cookie
func HasSession(c echo.Context) bool {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return false
	}
	authed, _ := sess.Values[sessionAuthed].(bool)
	expires, _ := sess.Values[sessionExpire].(int64)
	return authed && time.Now().Unix() < expires
}

// adminGate accepts the session cookie, else a bearer token signed with secret
func adminGate(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Path(), loginPath) || HasSession(c)
		},
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Admin login required", nil)
		},
	})
}
