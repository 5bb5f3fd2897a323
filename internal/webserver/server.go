// Package webserver hosts the echo instance shared by the admin and public APIs.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/pkg/metrics"
)

// AppContextKey holds the application handed to NewServer in every echo.Context
const AppContextKey = "storefront.app"

const (
	AdminPrefix  = "/api/admin"
	PublicPrefix = "/api"
)

type Server struct {
	root *echo.Echo
	cfg  *config.AppConfig
}

// NewServer builds the echo instance and mounts every route registered so far
func NewServer(cfg *config.AppConfig, appCtx interface{}) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.JSONSerializer = JSONSerializer{}
	e.Validator = NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	for _, r := range snapshot(rootRoutes) {
		e.Add(r.Method, r.Path, r.Handler, r.Middlewares...)
	}

	pub := e.Group(PublicPrefix)
	for _, r := range snapshot(publicRoutes) {
		pub.Add(r.Method, r.Path, r.Handler, r.Middlewares...)
	}

	limit := cfg.Media.MaxUploadMB
	if limit <= 0 {
		limit = 8
	}
	admin := e.Group(AdminPrefix,
		middleware.BodyLimit(fmt.Sprintf("%dM", limit+1)),
		adminGate(cfg.Web.Secret))
	for _, r := range snapshot(adminRoutes) {
		admin.Add(r.Method, r.Path, r.Handler, r.Middlewares...)
	}
	return &Server{root: e, cfg: cfg}
}

// Echo exposes the underlying instance, mostly for tests
func (s *Server) Echo() *echo.Echo { return s.root }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.root.ServeHTTP(w, r)
}

// Start listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("storefront web server listening on %s", addr)
		errCh <- s.root.Start(addr)
	}()
	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.Incr(metrics.MetricApiRequests)
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if internal, ok := c.Get(errorKey).(error); ok {
				fields = append(fields, zap.Error(internal))
			} else if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				metrics.Incr(metrics.MetricApiErrors)
				zap.L().Error("request", fields...)
			case v.Status >= http.StatusBadRequest:
				metrics.Incr(metrics.MetricApiErrors)
				zap.L().Warn("request", fields...)
			default:
				zap.L().Debug("request", fields...)
			}
			return nil
		},
	})
}
