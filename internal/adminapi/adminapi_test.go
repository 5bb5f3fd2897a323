package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/app"
	"github.com/shreejewels/storefront/internal/auth"
	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/webserver"
)

const passphrase = "let-me-in"

type harness struct {
	t     *testing.T
	srv   *webserver.Server
	token string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Web.Secret = "admin-test-secret-0123"
	cfg.Admin.Passphrase = passphrase
	cfg.Logger.FileEnable = false

	a := app.NewApplication(&cfg)
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(a.Release)

	Init()
	return &harness{t: t, srv: webserver.NewServer(&cfg, a)}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	return rec
}

func (h *harness) jsonRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

type upload struct {
	name string
	data []byte
}

func (h *harness) formRequest(method, path string, fields map[string]string, file *upload) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(h.t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", file.name)
		require.NoError(h.t, err)
		_, err = fw.Write(file.data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.do(req)
}

func (h *harness) login() {
	rec := h.jsonRequest(http.MethodPost, "/api/admin/login", map[string]string{"passphrase": passphrase})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(h.t, resp.Token)
	h.token = resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAdmin_RequiresLogin(t *testing.T) {
	h := newHarness(t)
	rec := h.jsonRequest(http.MethodGet, "/api/admin/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decode[webserver.ErrorResponse](t, rec).Error)

	rec = h.jsonRequest(http.MethodPost, "/api/admin/login", map[string]string{"passphrase": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.jsonRequest(http.MethodPost, "/api/admin/login", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h.token = "not-a-token"
	rec = h.jsonRequest(http.MethodGet, "/api/admin/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// well formed, but signed with a key the server does not hold
	now := time.Now()
	forged, err := auth.IssueToken(auth.Session{Subject: "admin", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, "9b6de5cc-0731-4f2e-8c1a-storefront")
	require.NoError(t, err)
	h.token = forged
	rec = h.jsonRequest(http.MethodGet, "/api/admin/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_SessionCookie(t *testing.T) {
	h := newHarness(t)
	rec := h.jsonRequest(http.MethodPost, "/api/admin/login", map[string]string{"passphrase": passphrase})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/summary", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = h.do(req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAdmin_RatesUpdateKeepsPrevious(t *testing.T) {
	h := newHarness(t)
	h.login()

	rec := h.jsonRequest(http.MethodGet, "/api/admin/rates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	initial := decode[domain.MetalRate](t, rec)
	assert.Equal(t, 6250.0, initial.Gold)

	rec = h.jsonRequest(http.MethodPut, "/api/admin/rates", map[string]float64{"gold": 6250, "silver": 78})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.jsonRequest(http.MethodPut, "/api/admin/rates", map[string]float64{"gold": 6300, "silver": 80})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[rateUpdateResponse](t, rec)
	assert.Equal(t, "Rates updated successfully", resp.Message)
	assert.Equal(t, 6300.0, resp.NewRates.Gold)
	assert.Equal(t, 80.0, resp.NewRates.Silver)
	assert.Equal(t, 6250.0, resp.NewRates.PreviousGold)
	assert.Equal(t, 78.0, resp.NewRates.PreviousSilver)
	assert.False(t, resp.NewRates.LastUpdated.IsZero())

	rec = h.jsonRequest(http.MethodPut, "/api/admin/rates", map[string]float64{"gold": -1, "silver": 80})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_ProductLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login()

	rec := h.formRequest(http.MethodPost, "/api/admin/products", map[string]string{
		"name": "Kundan Necklace", "category": "necklaces", "price": "85000",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_IMAGE", decode[webserver.ErrorResponse](t, rec).Code)

	rec = h.formRequest(http.MethodPost, "/api/admin/products", map[string]string{
		"name": "Kundan Necklace", "category": "necklaces", "price": "eighty",
		"imageLink": "https://cdn.example.com/k.jpg",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.formRequest(http.MethodPost, "/api/admin/products", map[string]string{
		"name": "Kundan Necklace", "category": "necklaces", "price": "85000", "metal": "Gold",
		"purity": "22K", "weight": "32g", "inStock": "true", "imageLink": "https://cdn.example.com/k.jpg",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Product](t, rec)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.InStock)
	assert.Equal(t, "https://cdn.example.com/k.jpg", created.Image)

	rec = h.formRequest(http.MethodPut, "/api/admin/products", map[string]string{
		"id": created.ID, "name": "Kundan Necklace", "category": "necklaces", "price": "90000",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Product](t, rec)
	assert.Equal(t, 90000.0, updated.Price)
	assert.Equal(t, created.Image, updated.Image)

	rec = h.jsonRequest(http.MethodGet, "/api/admin/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Product](t, rec), 1)

	rec = h.jsonRequest(http.MethodGet, "/api/admin/products/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Body.String(), "Kundan Necklace")

	rec = h.jsonRequest(http.MethodDelete, "/api/admin/products?id="+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = h.jsonRequest(http.MethodDelete, "/api/admin/products?id="+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.jsonRequest(http.MethodDelete, "/api/admin/products?id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_SliderUpload(t *testing.T) {
	h := newHarness(t)
	h.login()

	rec := h.formRequest(http.MethodPost, "/api/admin/slider", map[string]string{
		"id": "diwali-2024", "title": "Diwali", "subtitle": "Festive collection", "link": "/catalog/necklaces",
	}, &upload{name: "diwali banner.png", data: []byte("\x89PNG\r\n\x1a\nfake")})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[domain.SliderItem](t, rec)
	assert.Equal(t, "diwali-2024", item.ID)
	assert.True(t, strings.HasPrefix(item.Image, "/uploads/"))
	assert.True(t, strings.HasSuffix(item.Image, "-diwalibanner.png"))

	rec = h.formRequest(http.MethodPut, "/api/admin/slider?id=diwali-2024", map[string]string{
		"title": "Diwali Sale", "imageLink": "https://cdn.example.com/d.jpg",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://cdn.example.com/d.jpg", decode[domain.SliderItem](t, rec).Image)

	rec = h.jsonRequest(http.MethodGet, "/api/admin/slider", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]domain.SliderItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "Diwali Sale", items[0].Title)

	rec = h.jsonRequest(http.MethodDelete, "/api/admin/slider?id=diwali-2024", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = h.jsonRequest(http.MethodDelete, "/api/admin/slider", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_SummaryAndMetrics(t *testing.T) {
	h := newHarness(t)
	h.login()

	rec := h.formRequest(http.MethodPost, "/api/admin/products", map[string]string{
		"name": "Band", "category": "rings", "price": "12000", "imageLink": "https://cdn.example.com/b.jpg",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.jsonRequest(http.MethodGet, "/api/admin/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[summaryResponse](t, rec)
	assert.Equal(t, "bolt", summary.Store)
	assert.Equal(t, 1, summary.Products)
	assert.Equal(t, map[string]int{"rings": 1}, summary.Categories)
	assert.Equal(t, 6250.0, summary.Rates.Gold)

	rec = h.jsonRequest(http.MethodGet, "/api/admin/metrics?name=storefront_api_requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, decode[metricsResponse](t, rec).Total, 0.0)

	rec = h.jsonRequest(http.MethodGet, "/api/admin/metrics?name=cpu", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_Logout(t *testing.T) {
	h := newHarness(t)
	h.login()
	rec := h.jsonRequest(http.MethodPost, "/api/admin/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
