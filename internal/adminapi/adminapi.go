// Package adminapi is the password gated HTTP surface used by the admin panel.
package adminapi

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/app"
	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/webserver"
)

var initOnce sync.Once

// Init registers every admin route with the webserver
func Init() {
	initOnce.Do(func() {
		registerAuthRoutes()
		registerRateRoutes()
		registerSliderRoutes()
		registerProductRoutes()
		registerSummaryRoutes()
	})
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return webserver.Fail(c, status, code, message, detail)
}

func failErr(c echo.Context, err error) error {
	return webserver.FailErr(c, err)
}

func success(c echo.Context) error {
	return ok(c, map[string]bool{"success": true})
}

// entityID reads the id from the query string, falling back to the form
func entityID(c echo.Context) string {
	if id := strings.TrimSpace(c.QueryParam("id")); id != "" {
		return id
	}
	return strings.TrimSpace(c.FormValue("id"))
}

// imageSource reads file / imageLink from a multipart form. A file wins over a link.
func imageSource(c echo.Context) (media.ImageSource, error) {
	link := strings.TrimSpace(c.FormValue("imageLink"))
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return media.SourceOf(nil, "", link), nil
	}
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}

	limit := int64(GetAppContext(c).Config().Media.MaxUploadMB) << 20
	if limit <= 0 {
		limit = 8 << 20
	}
	if fh.Size > limit {
		return nil, domain.NewValidationError("file", "exceeds the upload size limit")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}
	if int64(len(data)) > limit {
		return nil, domain.NewValidationError("file", "exceeds the upload size limit")
	}
	return media.SourceOf(data, fh.Filename, link), nil
}
