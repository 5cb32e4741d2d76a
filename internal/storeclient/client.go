// Package storeclient is the HTTP client the admin views use to reach the
// product and order services.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeMC777/tienda-puntos/internal/blob"
	"github.com/MikeMC777/tienda-puntos/internal/catalog"
	"github.com/MikeMC777/tienda-puntos/internal/order"
)

// APIError is a non-2xx answer from a service. Message is the server's
// "error" field when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	HTTP           *http.Client
	ProductBaseURL string
	OrderBaseURL   string
	PublicBaseURL  string
}

func New(productBaseURL, orderBaseURL, publicBaseURL string, timeout time.Duration) *Client {
	if publicBaseURL == "" {
		publicBaseURL = productBaseURL
	}
	return &Client{
		HTTP:           &http.Client{Timeout: timeout},
		ProductBaseURL: strings.TrimRight(productBaseURL, "/"),
		OrderBaseURL:   strings.TrimRight(orderBaseURL, "/"),
		PublicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	err := c.doJSON(ctx, http.MethodGet, c.ProductBaseURL+"/store/products", nil, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	err := c.doJSON(ctx, http.MethodGet, c.ProductBaseURL+"/store/categories", nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in catalog.CreateProductRequest) (*catalog.Product, error) {
	var out catalog.Product
	if err := c.doJSON(ctx, http.MethodPost, c.ProductBaseURL+"/store/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	var out catalog.Category
	in := catalog.CreateCategoryRequest{Name: name}
	if err := c.doJSON(ctx, http.MethodPost, c.ProductBaseURL+"/store/categories", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.ProductBaseURL+"/store/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.ProductBaseURL+"/store/categories/"+url.PathEscape(id), nil, nil)
}

// Upload stores data under key in the product service's blob storage.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.ProductBaseURL+blob.PathPrefix+url.PathEscape(key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		return apiError(res)
	}
	return nil
}

func (c *Client) PublicURL(key string) string {
	return blob.PublicURL(c.PublicBaseURL, key)
}

func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	err := c.doJSON(ctx, http.MethodGet, c.OrderBaseURL+"/store-orders", nil, &out)
	return out, err
}

// PatchDelivered calls PATCH /store-orders/delivered. A returned error means
// the endpoint could not be reached or answered garbage; server-side
// failures come back as a Result with Success=false.
func (c *Client) PatchDelivered(ctx context.Context, in order.DeliveredRequest) (order.Result, error) {
	return c.doResult(ctx, http.MethodPatch, c.OrderBaseURL+"/store-orders/delivered", in)
}

// DeleteOrders calls DELETE /store-orders, with the same error contract as PatchDelivered.
func (c *Client) DeleteOrders(ctx context.Context, in order.DeleteRequest) (order.Result, error) {
	return c.doResult(ctx, http.MethodDelete, c.OrderBaseURL+"/store-orders", in)
}

func (c *Client) doResult(ctx context.Context, method, u string, in any) (order.Result, error) {
	res, err := c.send(ctx, method, u, in)
	if err != nil {
		return order.Result{}, err
	}
	defer res.Body.Close()

	var out order.Result
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		if res.StatusCode >= 300 {
			return order.Result{Success: false}, nil
		}
		return order.Result{}, fmt.Errorf("decode %s %s: %w", method, u, err)
	}
	if res.StatusCode >= 300 {
		out.Success = false
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, u string, in, out any) error {
	res, err := c.send(ctx, method, u, in)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return apiError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) send(ctx context.Context, method, u string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.HTTP.Do(req)
}

func apiError(res *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = res.Status
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}
