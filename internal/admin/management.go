// Package admin implements the two store admin screens: catalog management
// and student order handling. Each view keeps the last fetched snapshot and
// re-fetches it after every mutation; it never patches local state.
package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-puntos/internal/blob"
	"github.com/MikeMC777/tienda-puntos/internal/catalog"
)

// CatalogBackend is the table API of the product service.
type CatalogBackend interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateProduct(ctx context.Context, in catalog.CreateProductRequest) (*catalog.Product, error)
	CreateCategory(ctx context.Context, name string) (*catalog.Category, error)
	DeleteProduct(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) error
}

// BlobStorage is the object API of the product service.
type BlobStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	PublicURL(key string) string
}

type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProductForm is the "new product" form as typed by the operator.
type ProductForm struct {
	Name       string
	Price      string
	CategoryID string
	Image      *ImageFile
}

const (
	msgMissingFields     = "fill in every field and choose a category"
	msgInvalidPrice      = "price must be a non-negative number"
	msgProductAdded      = "product added"
	promptDeleteProduct  = "Delete this product?"
	promptDeleteCategory = "This deletes the category and every product in it. Continue?"
)

type StoreManagement struct {
	backend CatalogBackend
	blobs   BlobStorage
	confirm Confirmer
	notify  Notifier

	now    func() time.Time
	newKey func(now time.Time, filename string) string

	mu            sync.RWMutex
	products      []catalog.Product
	categories    []catalog.Category
	draft         ProductForm
	categoryDraft string
	loads         int

	ops inflight
}

func NewStoreManagement(backend CatalogBackend, blobs BlobStorage, confirm Confirmer, notify Notifier) *StoreManagement {
	return &StoreManagement{
		backend:    backend,
		blobs:      blobs,
		confirm:    confirm,
		notify:     notify,
		now:        time.Now,
		newKey:     blob.NewKey,
		products:   []catalog.Product{},
		categories: []catalog.Category{},
	}
}

// LoadCatalog replaces both snapshots with a fresh fetch. A collection that
// fails to load is shown empty; the error is returned but not alerted.
func (v *StoreManagement) LoadCatalog(ctx context.Context) error {
	v.mu.Lock()
	v.loads++
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.loads--
		v.mu.Unlock()
	}()

	products, perr := v.backend.ListProducts(ctx)
	if perr != nil || products == nil {
		products = []catalog.Product{}
	}
	categories, cerr := v.backend.ListCategories(ctx)
	if cerr != nil || categories == nil {
		categories = []catalog.Category{}
	}

	v.mu.Lock()
	v.products = products
	v.categories = categories
	v.mu.Unlock()
	return errors.Join(perr, cerr)
}

func (v *StoreManagement) AddProduct(ctx context.Context, f ProductForm) error {
	v.mu.Lock()
	v.draft = f
	v.mu.Unlock()

	if f.Name == "" || f.Price == "" || f.CategoryID == "" {
		return alert(v.notify, ErrValidation, msgMissingFields)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || price.IsNegative() {
		return alert(v.notify, ErrValidation, msgInvalidPrice)
	}

	release, ok := v.ops.acquire("product:add")
	if !ok {
		return busy("product:add")
	}
	defer release()

	var imageURL *string
	if f.Image != nil {
		key := v.newKey(v.now(), f.Image.Name)
		contentType := f.Image.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(f.Image.Data)
		}
		if err := v.blobs.Upload(ctx, key, contentType, f.Image.Data); err != nil {
			return alert(v.notify, ErrUpload, "image upload failed: "+err.Error())
		}
		u := v.blobs.PublicURL(key)
		imageURL = &u
	}

	_, err = v.backend.CreateProduct(ctx, catalog.CreateProductRequest{
		Name:       f.Name,
		Price:      price,
		CategoryID: f.CategoryID,
		ImageURL:   imageURL,
	})
	if err != nil {
		log.Printf("[admin] insert product %q: %v", f.Name, err)
		return alert(v.notify, ErrInsert, "failed to add product: "+err.Error())
	}

	v.notify.Alert(msgProductAdded)
	v.mu.Lock()
	v.draft = ProductForm{}
	v.mu.Unlock()
	v.reload(ctx)
	return nil
}

// AddCategory ignores an empty name. The draft is cleared and the catalog
// reloaded whether or not the insert worked.
func (v *StoreManagement) AddCategory(ctx context.Context, name string) error {
	v.mu.Lock()
	v.categoryDraft = name
	v.mu.Unlock()

	if name == "" {
		return nil
	}
	release, ok := v.ops.acquire("category:add")
	if !ok {
		return busy("category:add")
	}
	defer release()

	_, err := v.backend.CreateCategory(ctx, name)

	v.mu.Lock()
	v.categoryDraft = ""
	v.mu.Unlock()
	v.reload(ctx)

	if err != nil {
		return alert(v.notify, ErrInsert, "failed to add category: "+err.Error())
	}
	return nil
}

func (v *StoreManagement) DeleteProduct(ctx context.Context, id string) error {
	if !v.confirm.Confirm(promptDeleteProduct) {
		return nil
	}
	key := "product:" + id
	release, ok := v.ops.acquire(key)
	if !ok {
		return busy(key)
	}
	defer release()

	err := v.backend.DeleteProduct(ctx, id)
	v.reload(ctx)
	if err != nil {
		return alert(v.notify, ErrDelete, "failed to delete product: "+err.Error())
	}
	return nil
}

// DeleteCategory relies on the backend to cascade the delete to the
// category's products; they disappear from the snapshot on reload.
func (v *StoreManagement) DeleteCategory(ctx context.Context, id string) error {
	if !v.confirm.Confirm(promptDeleteCategory) {
		return nil
	}
	key := "category:" + id
	release, ok := v.ops.acquire(key)
	if !ok {
		return busy(key)
	}
	defer release()

	err := v.backend.DeleteCategory(ctx, id)
	v.reload(ctx)
	if err != nil {
		return alert(v.notify, ErrDelete, "failed to delete category: "+err.Error())
	}
	return nil
}

func (v *StoreManagement) reload(ctx context.Context) {
	if err := v.LoadCatalog(ctx); err != nil {
		log.Printf("[admin] reload catalog: %v", err)
	}
}

func (v *StoreManagement) Products() []catalog.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.products)
}

func (v *StoreManagement) Categories() []catalog.Category {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.categories)
}

// Loading reports whether a fetch or a mutation is running.
func (v *StoreManagement) Loading() bool {
	v.mu.RLock()
	loading := v.loads > 0
	v.mu.RUnlock()
	return loading || v.ops.busy()
}

// Draft is the product form as last submitted; it is cleared only after a
// successful insert.
func (v *StoreManagement) Draft() ProductForm {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.draft
}

func (v *StoreManagement) CategoryDraft() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.categoryDraft
}
