package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/shreejewels/storefront/internal/catalog"
	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/webserver"
)

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/export", exportProducts)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products", updateProduct)
	webserver.ApiDELETE("/products", deleteProduct)
}

func listProducts(c echo.Context) error {
	products, err := GetAppContext(c).Catalog().Products.List(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, products)
}

func formFloat(c echo.Context, field string) (float64, error) {
	v := strings.TrimSpace(c.FormValue(field))
	if v == "" {
		return 0, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be a number")
	}
	return f, nil
}

func formInt(c echo.Context, field string) (int, error) {
	v := strings.TrimSpace(c.FormValue(field))
	if v == "" {
		return 0, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be a whole number")
	}
	return n, nil
}

// productInput parses the multipart product form
func productInput(c echo.Context) (catalog.ProductInput, error) {
	var in catalog.ProductInput
	var err error
	if in.Price, err = formFloat(c, domain.FieldPrice); err != nil {
		return in, err
	}
	if in.Rating, err = formFloat(c, domain.FieldRating); err != nil {
		return in, err
	}
	if in.Reviews, err = formInt(c, domain.FieldReviews); err != nil {
		return in, err
	}
	if v := strings.TrimSpace(c.FormValue(domain.FieldInStock)); v != "" {
		if in.InStock, err = cast.ToBoolE(v); err != nil {
			return in, domain.NewValidationError(domain.FieldInStock, "must be true or false")
		}
	}
	in.Name = strings.TrimSpace(c.FormValue(domain.FieldName))
	in.Category = strings.TrimSpace(c.FormValue(domain.FieldCategory))
	in.Description = strings.TrimSpace(c.FormValue(domain.FieldDescription))
	in.Metal = strings.TrimSpace(c.FormValue(domain.FieldMetal))
	in.Purity = strings.TrimSpace(c.FormValue(domain.FieldPurity))
	in.Weight = strings.TrimSpace(c.FormValue(domain.FieldWeight))
	in.Image, err = imageSource(c)
	return in, err
}

// createProduct creates a product from a multipart form
// @Summary create a product
// @Tags Products
// @Accept multipart/form-data
// @Router /api/admin/products [post]
func createProduct(c echo.Context) error {
	in, err := productInput(c)
	if err != nil {
		return failErr(c, err)
	}
	p, err := GetAppContext(c).Catalog().Products.Create(c.Request().Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func updateProduct(c echo.Context) error {
	id := entityID(c)
	if id == "" {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Product id is required", nil)
	}
	in, err := productInput(c)
	if err != nil {
		return failErr(c, err)
	}
	p, err := GetAppContext(c).Catalog().Products.Update(c.Request().Context(), id, in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := entityID(c)
	if id == "" {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Product id is required", nil)
	}
	if err := GetAppContext(c).Catalog().Products.Delete(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return success(c)
}

// exportProducts streams the catalog as CSV
func exportProducts(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	if err := GetAppContext(c).Catalog().Products.ExportCSV(c.Request().Context(), c.Response()); err != nil {
		if c.Response().Committed {
			return err
		}
		c.Response().Header().Del(echo.HeaderContentDisposition)
		return failErr(c, err)
	}
	return nil
}
