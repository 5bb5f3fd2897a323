package adminsync

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ServerError is a non-2xx answer of the admin surface
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Is lets callers test server answers against the domain taxonomy
func (e *ServerError) Is(target error) bool {
	switch e.Status {
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusServiceUnavailable:
		return target == domain.ErrStoreUnavailable
	case http.StatusUnauthorized:
		return target == ErrNotAuthenticated
	case http.StatusBadRequest:
		if e.Code == "INVALID_ID" {
			return target == domain.ErrInvalidID
		}
		return target == domain.ErrValidation
	}
	return false
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPAdminClient talks to /api/admin with the bearer token obtained at login
type HTTPAdminClient struct {
	baseURL string
	client  *http.Client
	mu      sync.RWMutex
	token   string
}

func NewHTTPAdminClient(baseURL string, client *http.Client) *HTTPAdminClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAdminClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *HTTPAdminClient) url(path string) string {
	return c.baseURL + "/api/admin" + path
}

func (c *HTTPAdminClient) do(ctx context.Context, df *dataflow.DataFlow, out interface{}) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		df = df.SetHeader(gout.H{"Authorization": "Bearer " + token})
	}

	var body []byte
	var code int
	if err := df.WithContext(ctx).BindBody(&body).Code(&code).Do(); err != nil {
		return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	if code < 200 || code >= 300 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		if eb.Error == "" {
			eb.Error = http.StatusText(code)
		}
		return &ServerError{Status: code, Code: eb.Code, Message: eb.Error}
	}
	if out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(body, out), "decode response")
}

// Login exchanges the passphrase for a bearer token
func (c *HTTPAdminClient) Login(ctx context.Context, passphrase string) error {
	var resp struct {
		Token string `json:"token"`
	}
	df := gout.New(c.client).POST(c.url("/login")).SetJSON(gout.H{"passphrase": passphrase})
	if err := c.do(ctx, df, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

func (c *HTTPAdminClient) Rates(ctx context.Context) (domain.MetalRate, error) {
	var rate domain.MetalRate
	err := c.do(ctx, gout.New(c.client).GET(c.url("/rates")), &rate)
	return rate, err
}

func (c *HTTPAdminClient) UpdateRates(ctx context.Context, gold, silver float64) (*domain.MetalRate, error) {
	var resp struct {
		NewRates *domain.MetalRate `json:"newRates"`
	}
	df := gout.New(c.client).PUT(c.url("/rates")).SetJSON(gout.H{"gold": gold, "silver": silver})
	if err := c.do(ctx, df, &resp); err != nil {
		return nil, err
	}
	return resp.NewRates, nil
}

func (c *HTTPAdminClient) Products() AdminClient[domain.Product] {
	return productClient{c}
}

func (c *HTTPAdminClient) Slider() AdminClient[domain.SliderItem] {
	return sliderClient{c}
}

func attach(form gout.H, att Attachment) gout.H {
	switch {
	case len(att.File) > 0:
		form["file"] = gout.FormType{FileName: att.FileName, File: gout.FormMem(att.File)}
	case att.Link != "":
		form["imageLink"] = att.Link
	}
	return form
}

func (c *HTTPAdminClient) remove(ctx context.Context, path, id string) error {
	return c.do(ctx, gout.New(c.client).DELETE(c.url(path)).SetQuery(gout.H{"id": id}), nil)
}

type productClient struct {
	c *HTTPAdminClient
}

func productForm(p domain.Product) gout.H {
	return gout.H{
		domain.FieldName:        p.Name,
		domain.FieldCategory:    p.Category,
		domain.FieldDescription: p.Description,
		domain.FieldPrice:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		domain.FieldMetal:       p.Metal,
		domain.FieldPurity:      p.Purity,
		domain.FieldWeight:      p.Weight,
		domain.FieldInStock:     strconv.FormatBool(p.InStock),
		domain.FieldRating:      strconv.FormatFloat(p.Rating, 'f', -1, 64),
		domain.FieldReviews:     strconv.Itoa(p.Reviews),
	}
}

func (pc productClient) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := pc.c.do(ctx, gout.New(pc.c.client).GET(pc.c.url("/products")), &products)
	return products, err
}

func (pc productClient) Create(ctx context.Context, p domain.Product, att Attachment) error {
	df := gout.New(pc.c.client).POST(pc.c.url("/products")).SetForm(attach(productForm(p), att))
	return pc.c.do(ctx, df, nil)
}

func (pc productClient) Update(ctx context.Context, p domain.Product, att Attachment) error {
	if p.ID == "" {
		return errors.Wrap(domain.ErrInvalidID, "update without id")
	}
	form := attach(productForm(p), att)
	form["id"] = p.ID
	return pc.c.do(ctx, gout.New(pc.c.client).PUT(pc.c.url("/products")).SetForm(form), nil)
}

func (pc productClient) Delete(ctx context.Context, id string) error {
	return pc.c.remove(ctx, "/products", id)
}

type sliderClient struct {
	c *HTTPAdminClient
}

func sliderForm(s domain.SliderItem) gout.H {
	return gout.H{
		"id":                 s.ID,
		domain.FieldTitle:    s.Title,
		domain.FieldSubtitle: s.Subtitle,
		domain.FieldLink:     s.Link,
	}
}

func (sc sliderClient) List(ctx context.Context) ([]domain.SliderItem, error) {
	var items []domain.SliderItem
	err := sc.c.do(ctx, gout.New(sc.c.client).GET(sc.c.url("/slider")), &items)
	return items, err
}

// Create assigns the slide identity on the client when the buffer has none
func (sc sliderClient) Create(ctx context.Context, s domain.SliderItem, att Attachment) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	df := gout.New(sc.c.client).POST(sc.c.url("/slider")).SetForm(attach(sliderForm(s), att))
	return sc.c.do(ctx, df, nil)
}

func (sc sliderClient) Update(ctx context.Context, s domain.SliderItem, att Attachment) error {
	if s.ID == "" {
		return errors.Wrap(domain.ErrInvalidID, "update without id")
	}
	df := gout.New(sc.c.client).PUT(sc.c.url("/slider")).SetForm(attach(sliderForm(s), att))
	return sc.c.do(ctx, df, nil)
}

func (sc sliderClient) Delete(ctx context.Context, id string) error {
	return sc.c.remove(ctx, "/slider", id)
}
