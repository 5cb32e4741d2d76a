package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-puntos/internal/blob"
	"github.com/MikeMC777/tienda-puntos/internal/catalog"
	"github.com/MikeMC777/tienda-puntos/internal/httpx"
)

// uploadResponse is returned after a blob is stored.
type uploadResponse struct {
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

// maxPrice is the first value products.price (NUMERIC(12,2)) cannot hold.
var maxPrice = decimal.New(1, 10)

func registerRoutes(r *gin.Engine, repo catalog.Repository, blobs blob.Store, maxUpload int64) {
	g := r.Group("/store")
	g.GET("/products", listProductsHandler(repo))
	g.POST("/products", createProductHandler(repo))
	g.DELETE("/products/:id", deleteProductHandler(repo))
	g.GET("/categories", listCategoriesHandler(repo))
	g.POST("/categories", createCategoryHandler(repo))
	g.DELETE("/categories/:id", deleteCategoryHandler(repo))
	g.PUT("/blobs/:key", uploadBlobHandler(blobs, maxUpload))
	g.GET("/blobs/:key", getBlobHandler(blobs))
}

// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   catalog.Product
// @Failure      500  {object}  catalog.HTTPError
// @Router       /store/products [get]
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListProducts(c.Request.Context())
		if err != nil {
			log.Printf("[catalog] rid=%s list products: %v", httpx.RID(c), err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not list products"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      catalog.CreateProductRequest  true  "product"
// @Success      201   {object}  catalog.Product
// @Failure      400   {object}  catalog.HTTPError
// @Failure      422   {object}  catalog.HTTPError
// @Router       /store/products [post]
func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "invalid json"})
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "name is required"})
			return
		}
		if in.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "price must be non-negative"})
			return
		}
		if !in.Price.Equal(in.Price.Round(2)) {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "price can have at most 2 decimals"})
			return
		}
		if in.Price.Cmp(maxPrice) >= 0 {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "price is too large"})
			return
		}
		if _, err := uuid.Parse(in.CategoryID); err != nil {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "invalid category_id"})
			return
		}
		if in.ImageURL != nil && *in.ImageURL == "" {
			in.ImageURL = nil
		}

		p := &catalog.Product{
			Name:       in.Name,
			Price:      in.Price,
			CategoryID: in.CategoryID,
			ImageURL:   in.ImageURL,
		}
		if err := repo.CreateProduct(c.Request.Context(), p); err != nil {
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				c.JSON(http.StatusUnprocessableEntity, catalog.HTTPError{Error: err.Error()})
				return
			}
			log.Printf("[catalog] rid=%s create product: %v", httpx.RID(c), err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not create product"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// @Summary      Delete product
// @Tags         products
// @Param        id   path  string  true  "product id"
// @Success      204
// @Failure      404  {object}  catalog.HTTPError
// @Router       /store/products/{id} [delete]
func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return deleteHandler("product", repo.DeleteProduct)
}

// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   catalog.Category
// @Failure      500  {object}  catalog.HTTPError
// @Router       /store/categories [get]
func listCategoriesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			log.Printf("[catalog] rid=%s list categories: %v", httpx.RID(c), err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not list categories"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      catalog.CreateCategoryRequest  true  "category"
// @Success      201   {object}  catalog.Category
// @Failure      400   {object}  catalog.HTTPError
// @Router       /store/categories [post]
func createCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.CreateCategoryRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "invalid json"})
			return
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "name is required"})
			return
		}
		cat := &catalog.Category{Name: name}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			log.Printf("[catalog] rid=%s create category: %v", httpx.RID(c), err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not create category"})
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// @Summary      Delete category and its products
// @Tags         categories
// @Param        id   path  string  true  "category id"
// @Success      204
// @Failure      404  {object}  catalog.HTTPError
// @Router       /store/categories/{id} [delete]
func deleteCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return deleteHandler("category", repo.DeleteCategory)
}

func deleteHandler(what string, del func(ctx context.Context, id string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "invalid id"})
			return
		}
		ok, err := del(c.Request.Context(), id)
		if err != nil {
			log.Printf("[catalog] rid=%s delete %s %s: %v", httpx.RID(c), what, id, err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not delete " + what})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, catalog.HTTPError{Error: what + " not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary      Upload an object
// @Tags         blobs
// @Accept       octet-stream
// @Produce      json
// @Param        key  path      string  true  "object key"
// @Success      201  {object}  main.uploadResponse
// @Failure      409  {object}  catalog.HTTPError
// @Failure      413  {object}  catalog.HTTPError
// @Router       /store/blobs/{key} [put]
func uploadBlobHandler(store blob.Store, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		if key == "" || strings.ContainsAny(key, `/\`) {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "invalid key"})
			return
		}

		data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				c.JSON(http.StatusRequestEntityTooLarge, catalog.HTTPError{Error: "object too large"})
				return
			}
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "could not read body"})
			return
		}
		if len(data) == 0 {
			c.JSON(http.StatusBadRequest, catalog.HTTPError{Error: "empty body"})
			return
		}

		if err := store.Upload(c.Request.Context(), key, c.ContentType(), data); err != nil {
			if errors.Is(err, blob.ErrExists) {
				c.JSON(http.StatusConflict, catalog.HTTPError{Error: err.Error()})
				return
			}
			log.Printf("[catalog] rid=%s upload %s: %v", httpx.RID(c), key, err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not store object"})
			return
		}
		c.JSON(http.StatusCreated, uploadResponse{Key: key, PublicURL: store.PublicURL(key)})
	}
}

// @Summary      Download an object
// @Tags         blobs
// @Param        key  path  string  true  "object key"
// @Success      200
// @Success      304
// @Failure      404  {object}  catalog.HTTPError
// @Router       /store/blobs/{key} [get]
func getBlobHandler(store blob.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		o, err := store.Get(c.Request.Context(), key)
		if errors.Is(err, blob.ErrNotFound) {
			c.JSON(http.StatusNotFound, catalog.HTTPError{Error: err.Error()})
			return
		}
		if err != nil {
			log.Printf("[catalog] rid=%s get %s: %v", httpx.RID(c), key, err)
			c.JSON(http.StatusInternalServerError, catalog.HTTPError{Error: "could not read object"})
			return
		}

		etag := `"` + o.Checksum + `"`
		c.Header("ETag", etag)
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		if match := c.GetHeader("If-None-Match"); match != "" && (match == etag || match == "*") {
			c.Status(http.StatusNotModified)
			return
		}
		c.Data(http.StatusOK, o.ContentType, o.Data)
	}
}
