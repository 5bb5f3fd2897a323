package webserver

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// Route is one registered handler. Admin routes sit under /api/admin behind the
// admin gate, public routes under /api, root routes are mounted as given.
type Route struct {
	Method      string
	Path        string
	Handler     echo.HandlerFunc
	Middlewares []echo.MiddlewareFunc
}

var (
	routeLock    sync.Mutex
	adminRoutes  []Route
	publicRoutes []Route
	rootRoutes   []Route
)

func addRoute(table *[]Route, method, path string, h echo.HandlerFunc, m []echo.MiddlewareFunc) {
	routeLock.Lock()
	defer routeLock.Unlock()
	*table = append(*table, Route{Method: method, Path: path, Handler: h, Middlewares: m})
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&adminRoutes, http.MethodGet, path, h, m)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&adminRoutes, http.MethodPost, path, h, m)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&adminRoutes, http.MethodPut, path, h, m)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&adminRoutes, http.MethodDelete, path, h, m)
}

func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&publicRoutes, http.MethodGet, path, h, m)
}

func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&publicRoutes, http.MethodPost, path, h, m)
}

// RootGET mounts a handler outside the /api prefix
func RootGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(&rootRoutes, http.MethodGet, path, h, m)
}

func snapshot(table []Route) []Route {
	routeLock.Lock()
	defer routeLock.Unlock()
	return append([]Route(nil), table...)
}
