// Command order-service serves student orders: listing, delivery and
// deletion. Delivery and deletion are announced on the events exchange
// when AMQP_URL is set.
package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/MikeMC777/tienda-puntos/docs"
	"github.com/MikeMC777/tienda-puntos/internal/config"
	"github.com/MikeMC777/tienda-puntos/internal/events"
	"github.com/MikeMC777/tienda-puntos/internal/health"
	"github.com/MikeMC777/tienda-puntos/internal/httpx"
	"github.com/MikeMC777/tienda-puntos/internal/order"
	"github.com/MikeMC777/tienda-puntos/internal/storage"
)

const serviceName = "store.order"

func main() {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hs := health.NewServer(serviceName)
	hl, err := net.Listen("tcp", cfg.OrderHealthAddr)
	if err != nil {
		log.Fatalf("[health] listen %s: %v", cfg.OrderHealthAddr, err)
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

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		p, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("[events] %v", err)
		}
		pub = p
		log.Printf("[events] publishing to exchange %s", cfg.AMQPExchange)
	} else {
		log.Printf("[events] AMQP_URL not set, events disabled")
	}
	defer pub.Close()

	r := httpx.NewEngine()
	registerRoutes(r, order.NewSQLRepo(db), pub)

	hs.SetServing(true)
	log.Printf("order-service listening on %s", cfg.OrderSvcAddr)
	if err := httpx.Serve(ctx, cfg.OrderSvcAddr, httpx.WithCORS(r, cfg.CORSAllowedOrigins), 10*time.Second); err != nil {
		hs.SetServing(false)
		log.Fatalf("[http] %v", err)
	}
	hs.SetServing(false)
}
