package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/MikeMC777/tienda-puntos/internal/blob"
	"github.com/MikeMC777/tienda-puntos/internal/catalog"
	"github.com/MikeMC777/tienda-puntos/internal/order"
)

func init() {
	log.SetOutput(io.Discard)
}

//
// ===== catalog backend in memory (cascade on category delete) =====
//

type fakeCatalog struct {
	mu         sync.Mutex
	categories []catalog.Category
	products   []catalog.Product
	seq        int
	listCalls  int
	created    []catalog.CreateProductRequest
	createErr  error
	deleteErr  error

	// when set, CreateProduct signals entered and waits on block
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]catalog.Product{}, f.products...), nil
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Category{}, f.categories...), nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, in catalog.CreateProductRequest) (*catalog.Product, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	found := false
	for _, c := range f.categories {
		found = found || c.ID == in.CategoryID
	}
	if !found {
		return nil, errors.New("category not found")
	}
	f.seq++
	p := catalog.Product{
		ID:         fmt.Sprintf("p%d", f.seq),
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		ImageURL:   in.ImageURL,
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeCatalog) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	c := catalog.Category{ID: fmt.Sprintf("c%d", f.seq), Name: name}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	out := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	f.products = out
	return nil
}

func (f *fakeCatalog) DeleteCategory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	cats := f.categories[:0]
	for _, c := range f.categories {
		if c.ID != id {
			cats = append(cats, c)
		}
	}
	f.categories = cats
	prods := f.products[:0]
	for _, p := range f.products {
		if p.CategoryID != id {
			prods = append(prods, p)
		}
	}
	f.products = prods
	return nil
}

func (f *fakeCatalog) count() (products, lists int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products), f.listCalls
}

type fakeBlobs struct {
	mu           sync.Mutex
	keys         []string
	contentTypes []string
	failWith     error
}

func (b *fakeBlobs) Upload(ctx context.Context, key, contentType string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return b.failWith
	}
	b.keys = append(b.keys, key)
	b.contentTypes = append(b.contentTypes, contentType)
	return nil
}

func (b *fakeBlobs) PublicURL(key string) string {
	return blob.PublicURL("https://cdn.example.org", key)
}

type fakeConfirm struct {
	answer  bool
	prompts []string
}

func (c *fakeConfirm) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type fakeNotify struct {
	mu   sync.Mutex
	msgs []string
}

func (n *fakeNotify) Alert(msg string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

func (n *fakeNotify) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.msgs) == 0 {
		return ""
	}
	return n.msgs[len(n.msgs)-1]
}

//
// ===== order service in memory (reader + endpoints) =====
//

type fakeOrders struct {
	mu          sync.Mutex
	orders      []order.Order
	listCalls   int
	patchCalls  int
	deleteCalls int
	lastPatch   order.DeliveredRequest
	lastDelete  order.DeleteRequest

	result *order.Result // overrides the computed answer
	err    error         // transport failure

	entered chan struct{}
	block   chan struct{}
}

func (f *fakeOrders) ListOrders(ctx context.Context) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]order.Order{}, f.orders...), nil
}

func (f *fakeOrders) PatchDelivered(ctx context.Context, in order.DeliveredRequest) (order.Result, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patchCalls++
	f.lastPatch = in
	if f.err != nil {
		return order.Result{}, f.err
	}
	if f.result != nil {
		return *f.result, nil
	}
	var n int64
	for i := range f.orders {
		if (in.MarkAll && !f.orders[i].IsDelivered) || f.orders[i].ID == in.OrderID {
			f.orders[i].IsDelivered = true
			n++
		}
	}
	if !in.MarkAll && n == 0 {
		return order.Result{Success: false, Error: "order not found"}, nil
	}
	return order.Result{Success: true, Updated: n}, nil
}

func (f *fakeOrders) DeleteOrders(ctx context.Context, in order.DeleteRequest) (order.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.lastDelete = in
	if f.err != nil {
		return order.Result{}, f.err
	}
	if f.result != nil {
		return *f.result, nil
	}
	drop := map[string]bool{in.OrderID: in.OrderID != ""}
	for _, id := range in.IDs {
		drop[id] = true
	}
	out := f.orders[:0]
	var n int64
	for _, o := range f.orders {
		if drop[o.ID] {
			n++
			continue
		}
		out = append(out, o)
	}
	f.orders = out
	return order.Result{Success: true, Deleted: n}, nil
}

func (f *fakeOrders) delivered(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o.IsDelivered
		}
	}
	return false
}
