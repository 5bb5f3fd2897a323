package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shreejewels/storefront/internal/catalog"
	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/webserver"
)

type rateUpdateResponse struct {
	Message  string            `json:"message"`
	NewRates *domain.MetalRate `json:"newRates"`
}

func registerRateRoutes() {
	webserver.ApiGET("/rates", getRates)
	webserver.ApiPUT("/rates", updateRates)
}

func getRates(c echo.Context) error {
	rate, err := GetAppContext(c).Projections().Rates(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rate)
}

// updateRates replaces the rate singleton
// @Summary update gold and silver rates
// @Tags Rates
// @Router /api/admin/rates [put]
func updateRates(c echo.Context) error {
	var payload catalog.RateInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse rates", err.Error())
	}
	rate, err := GetAppContext(c).Catalog().Rates.Update(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rateUpdateResponse{Message: "Rates updated successfully", NewRates: rate})
}
