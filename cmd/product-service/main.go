// Command product-service serves the store catalog (products, categories)
// and the product image objects.
package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	_ "github.com/MikeMC777/tienda-puntos/docs"
	"github.com/MikeMC777/tienda-puntos/internal/blob"
	"github.com/MikeMC777/tienda-puntos/internal/catalog"
	"github.com/MikeMC777/tienda-puntos/internal/config"
	"github.com/MikeMC777/tienda-puntos/internal/health"
	"github.com/MikeMC777/tienda-puntos/internal/httpx"
	"github.com/MikeMC777/tienda-puntos/internal/storage"
)

const serviceName = "store.product"

func main() {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)
	// prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hs := health.NewServer(serviceName)
	hl, err := net.Listen("tcp", cfg.ProductHealthAddr)
	if err != nil {
		log.Fatalf("[health] listen %s: %v", cfg.ProductHealthAddr, err)
	}
	go func() {
		if err := hs.Serve(hl); err != nil {
			log.Printf("[health] stopped: %v", err)
		}
	}()
	defer hs.Stop()

	pool, err := storage.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[storage] %v", err)
	}
	defer pool.Close()
	if err := storage.Migrate(ctx, pool); err != nil {
		log.Fatalf("[storage] migrate: %v", err)
	}
	db := storage.SQLDB(pool)
	defer db.Close()

	repo := catalog.NewSQLRepo(db)
	blobs := blob.NewSQLStore(db, cfg.PublicBaseURL)

	r := httpx.NewEngine()
	registerRoutes(r, repo, blobs, cfg.MaxUploadBytes)

	hs.SetServing(true)
	log.Printf("product-service listening on %s", cfg.ProductSvcAddr)
	if err := httpx.Serve(ctx, cfg.ProductSvcAddr, httpx.WithCORS(r, cfg.CORSAllowedOrigins), 10*time.Second); err != nil {
		hs.SetServing(false)
		log.Fatalf("[http] %v", err)
	}
	hs.SetServing(false)
}
