package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/webserver"
	"github.com/shreejewels/storefront/pkg/metrics"
)

type summaryResponse struct {
	Store      string           `json:"store"`
	Products   int              `json:"products"`
	InStock    int              `json:"inStock"`
	Categories map[string]int   `json:"categories"`
	Slides     int              `json:"slides"`
	Rates      domain.MetalRate `json:"rates"`
	Mutations  float64          `json:"mutations24h"`
}

type metricsResponse struct {
	Name   string          `json:"name"`
	Total  float64         `json:"total"`
	Points []metrics.Point `json:"points"`
}

func registerSummaryRoutes() {
	webserver.ApiGET("/summary", getSummary)
	webserver.ApiGET("/metrics", getMetrics)
}

// getSummary reads the three collections concurrently
func getSummary(c echo.Context) error {
	appCtx := GetAppContext(c)
	resp := summaryResponse{Store: appCtx.Store().Name(), Categories: map[string]int{}}

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		products, err := appCtx.Catalog().Products.List(ctx)
		if err != nil {
			return err
		}
		resp.Products = len(products)
		for _, p := range products {
			resp.Categories[p.Category]++
			if p.InStock {
				resp.InStock++
			}
		}
		return nil
	})
	g.Go(func() error {
		items, err := appCtx.Catalog().Slider.List(ctx)
		if err != nil {
			return err
		}
		resp.Slides = len(items)
		return nil
	})
	g.Go(func() error {
		rate, err := appCtx.Projections().Rates(ctx)
		if err != nil {
			return err
		}
		resp.Rates = rate
		return nil
	})
	if err := g.Wait(); err != nil {
		return failErr(c, err)
	}
	now := time.Now()
	resp.Mutations, _ = metrics.Sum(metrics.MetricAdminMutations, now.Add(-24*time.Hour), now.Add(time.Second))
	return ok(c, resp)
}

var metricNames = map[string]bool{
	metrics.MetricApiRequests:    true,
	metrics.MetricApiErrors:      true,
	metrics.MetricAdminMutations: true,
	metrics.MetricMediaUploads:   true,
}

// getMetrics returns the samples of one counter over the last ?minutes= (default 60)
func getMetrics(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		name = metrics.MetricApiRequests
	}
	if !metricNames[name] {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown metric", name)
	}
	minutes, err := strconv.Atoi(c.QueryParam("minutes"))
	if err != nil || minutes <= 0 || minutes > 7*24*60 {
		minutes = 60
	}
	end := time.Now().Add(time.Second)
	points, err := metrics.Query(name, end.Add(-time.Duration(minutes)*time.Minute), end)
	if err != nil {
		return failErr(c, err)
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return ok(c, metricsResponse{Name: name, Total: total, Points: points})
}
