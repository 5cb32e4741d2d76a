package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-puntos/internal/catalog"
	"github.com/MikeMC777/tienda-puntos/internal/order"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.URL, "https://cdn.example.org/", 2*time.Second)
}

func TestCreateProduct_SendsJSON(t *testing.T) {
	var got catalog.CreateProductRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/store/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, `{"error":"method"}`, http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p1","name":"Pen","price":5,"category_id":"c1","image_url":null}`))
	})
	c := newTestClient(t, mux)

	p, err := c.CreateProduct(context.Background(), catalog.CreateProductRequest{
		Name: "Pen", Price: decimal.NewFromInt(5), CategoryID: "c1",
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID != "p1" || p.ImageURL != nil || !p.Price.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected product: %+v", p)
	}
	if got.Name != "Pen" || got.CategoryID != "c1" || got.ImageURL != nil {
		t.Fatalf("server received %+v", got)
	}
}

func TestDeleteCategory_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/store/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"category not found"}`))
	})
	c := newTestClient(t, mux)

	err := c.DeleteCategory(context.Background(), "c9")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Error() != "category not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpload_PutsRawBody(t *testing.T) {
	var (
		gotPath string
		gotType string
		gotBody []byte
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/store/blobs/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})
	c := newTestClient(t, mux)

	if err := c.Upload(context.Background(), "17_ab.png", "image/png", []byte("png-bytes")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotPath != "/store/blobs/17_ab.png" || gotType != "image/png" || string(gotBody) != "png-bytes" {
		t.Fatalf("path=%s type=%s body=%s", gotPath, gotType, gotBody)
	}
	if u := c.PublicURL("17_ab.png"); u != "https://cdn.example.org/store/blobs/17_ab.png" {
		t.Fatalf("public url=%s", u)
	}
}

func TestUpload_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/store/blobs/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"error":"object too large"}`))
	})
	c := newTestClient(t, mux)

	err := c.Upload(context.Background(), "k.png", "image/png", []byte("x"))
	if err == nil || err.Error() != "object too large" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPatchDelivered_ServerFailureIsResult(t *testing.T) {
	var got order.DeliveredRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/store-orders/delivered", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"order not found"}`))
	})
	c := newTestClient(t, mux)

	res, err := c.PatchDelivered(context.Background(), order.DeliveredRequest{OrderID: "o1"})
	if err != nil {
		t.Fatalf("PatchDelivered: %v", err)
	}
	if res.Success || res.Error != "order not found" || got.OrderID != "o1" {
		t.Fatalf("res=%+v sent=%+v", res, got)
	}
}

func TestDeleteOrders_NonJSONFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/store-orders", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	c := newTestClient(t, mux)

	res, err := c.DeleteOrders(context.Background(), order.DeleteRequest{IDs: []string{"o1"}})
	if err != nil {
		t.Fatalf("DeleteOrders: %v", err)
	}
	if res.Success || res.Error != "" {
		t.Fatalf("expected bare failure, got %+v", res)
	}
}

func TestOrders_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	c := New(base, base, "", time.Second)

	if _, err := c.PatchDelivered(context.Background(), order.DeliveredRequest{MarkAll: true}); err == nil {
		t.Fatalf("expected transport error")
	}
}
