// Package publicapi serves the storefront read paths and the chat widget.
package publicapi

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"github.com/shreejewels/storefront/internal/app"
	"github.com/shreejewels/storefront/internal/assistant"
	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/projection"
	"github.com/shreejewels/storefront/internal/webserver"
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		webserver.PubGET("/rates", getRates)
		webserver.PubGET("/stories", getStories)
		webserver.PubGET("/catalog/:category", getCatalog)
		webserver.PubPOST("/chat", postChat)
		webserver.RootGET(media.UploadPrefix+":name", getUpload)
	})
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// getRates returns the current snapshot, defaults included
func getRates(c echo.Context) error {
	rate, err := GetAppContext(c).Projections().Rates(c.Request().Context())
	if err != nil {
		return webserver.FailErr(c, err)
	}
	return webserver.OK(c, rate)
}

func getStories(c echo.Context) error {
	stories, err := GetAppContext(c).Projections().Stories(c.Request().Context())
	if err != nil {
		return webserver.FailErr(c, err)
	}
	return webserver.OK(c, stories)
}

// getCatalog lists one category, narrowed by ?q= and ?metal=, ordered by ?sort=
func getCatalog(c echo.Context) error {
	q := projection.Query{
		Search: c.QueryParam("q"),
		Metal:  c.QueryParam("metal"),
		Sort:   projection.ParseSort(c.QueryParam("sort")),
	}
	products, err := GetAppContext(c).Projections().Catalog(c.Request().Context(), c.Param("category"), q)
	if err != nil {
		return webserver.FailErr(c, err)
	}
	return webserver.OK(c, products)
}

type chatPayload struct {
	Message string `json:"message" validate:"max=1000"`
}

func postChat(c echo.Context) error {
	var payload chatPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailErr(c, err)
	}
	rate, err := GetAppContext(c).Projections().Rates(c.Request().Context())
	if err != nil {
		return webserver.FailErr(c, err)
	}
	return webserver.OK(c, assistant.Respond(payload.Message, rate))
}

// getUpload serves an image written by the disk media store
func getUpload(c echo.Context) error {
	name := c.Param("name")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
	}
	rc, err := GetAppContext(c).Media().Store().Open(media.UploadPrefix + name)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return webserver.FailErr(c, err)
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, mimetype.Detect(data).String(), data)
}
