package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shreejewels/storefront/internal/catalog"
	"github.com/shreejewels/storefront/internal/webserver"
)

func registerSliderRoutes() {
	webserver.ApiGET("/slider", listSlider)
	webserver.ApiPOST("/slider", createSlider)
	webserver.ApiPUT("/slider", updateSlider)
	webserver.ApiDELETE("/slider", deleteSlider)
}

func listSlider(c echo.Context) error {
	items, err := GetAppContext(c).Catalog().Slider.List(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, items)
}

func sliderInput(c echo.Context) (catalog.SliderInput, error) {
	src, err := imageSource(c)
	if err != nil {
		return catalog.SliderInput{}, err
	}
	return catalog.SliderInput{
		ID:       strings.TrimSpace(c.FormValue("id")),
		Title:    strings.TrimSpace(c.FormValue("title")),
		Subtitle: strings.TrimSpace(c.FormValue("subtitle")),
		Link:     strings.TrimSpace(c.FormValue("link")),
		Image:    src,
	}, nil
}

func createSlider(c echo.Context) error {
	in, err := sliderInput(c)
	if err != nil {
		return failErr(c, err)
	}
	item, err := GetAppContext(c).Catalog().Slider.Create(c.Request().Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func updateSlider(c echo.Context) error {
	id := entityID(c)
	if id == "" {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Slider id is required", nil)
	}
	in, err := sliderInput(c)
	if err != nil {
		return failErr(c, err)
	}
	item, err := GetAppContext(c).Catalog().Slider.Update(c.Request().Context(), id, in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, item)
}

func deleteSlider(c echo.Context) error {
	id := entityID(c)
	if id == "" {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Slider id is required", nil)
	}
	if err := GetAppContext(c).Catalog().Slider.Delete(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return success(c)
}
