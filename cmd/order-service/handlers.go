package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/tienda-puntos/internal/events"
	"github.com/MikeMC777/tienda-puntos/internal/httpx"
	"github.com/MikeMC777/tienda-puntos/internal/order"
)

const (
	errDeliveredTarget = "order_id or mark_all is required"
	errDeleteTarget    = "order_id or ids is required"

	publishTimeout = 5 * time.Second
)

func registerRoutes(r *gin.Engine, repo order.Repository, pub events.Publisher) {
	r.GET("/store-orders", listOrdersHandler(repo))
	r.PATCH("/store-orders/delivered", markDeliveredHandler(repo, pub))
	r.DELETE("/store-orders", deleteOrdersHandler(repo, pub))
}

// @Summary      List orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200  {array}   order.Order
// @Router       /store-orders [get]
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			log.Printf("[orders] rid=%s list: %v", httpx.RID(c), err)
			c.JSON(http.StatusInternalServerError, order.Result{Error: "could not list orders"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary      Mark one order, or every pending order, delivered
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.DeliveredRequest  true  "order_id or mark_all"
// @Success      200   {object}  order.Result
// @Failure      400   {object}  order.Result
// @Failure      404   {object}  order.Result
// @Router       /store-orders/delivered [patch]
func markDeliveredHandler(repo order.Repository, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.DeliveredRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, order.Result{Error: "invalid json"})
			return
		}
		ctx := c.Request.Context()

		if in.MarkAll {
			changed, err := repo.MarkAllDelivered(ctx)
			if err != nil {
				log.Printf("[orders] rid=%s mark all delivered: %v", httpx.RID(c), err)
				c.JSON(http.StatusInternalServerError, order.Result{Error: err.Error()})
				return
			}
			for _, o := range changed {
				publish(ctx, pub, deliveredEvent(o))
			}
			c.JSON(http.StatusOK, order.Result{Success: true, Updated: int64(len(changed))})
			return
		}

		if in.OrderID == "" {
			c.JSON(http.StatusBadRequest, order.Result{Error: errDeliveredTarget})
			return
		}
		if _, err := uuid.Parse(in.OrderID); err != nil {
			c.JSON(http.StatusBadRequest, order.Result{Error: "invalid order_id"})
			return
		}

		o, err := repo.MarkDelivered(ctx, in.OrderID)
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, order.Result{Error: err.Error()})
			return
		}
		if err != nil {
			log.Printf("[orders] rid=%s mark delivered %s: %v", httpx.RID(c), in.OrderID, err)
			c.JSON(http.StatusInternalServerError, order.Result{Error: err.Error()})
			return
		}
		publish(ctx, pub, deliveredEvent(*o))
		c.JSON(http.StatusOK, order.Result{Success: true, Updated: 1})
	}
}

// @Summary      Delete one order or a set of orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.DeleteRequest  true  "order_id or ids"
// @Success      200   {object}  order.Result
// @Failure      400   {object}  order.Result
// @Router       /store-orders [delete]
func deleteOrdersHandler(repo order.Repository, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.DeleteRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, order.Result{Error: "invalid json"})
			return
		}
		ids := in.IDs
		if in.OrderID != "" {
			ids = []string{in.OrderID}
		}
		if len(ids) == 0 {
			c.JSON(http.StatusBadRequest, order.Result{Error: errDeleteTarget})
			return
		}
		for _, id := range ids {
			if _, err := uuid.Parse(id); err != nil {
				c.JSON(http.StatusBadRequest, order.Result{Error: "invalid order id " + id})
				return
			}
		}

		ctx := c.Request.Context()
		var (
			deleted []string
			err     error
		)
		if in.OrderID != "" {
			var n int64
			if n, err = repo.Delete(ctx, in.OrderID); err == nil && n > 0 {
				deleted = ids
			}
		} else {
			deleted, err = repo.DeleteIDs(ctx, ids)
		}
		if err != nil {
			log.Printf("[orders] rid=%s delete %d orders: %v", httpx.RID(c), len(ids), err)
			c.JSON(http.StatusInternalServerError, order.Result{Error: err.Error()})
			return
		}
		now := time.Now().UTC()
		for _, id := range deleted {
			publish(ctx, pub, events.Event{Type: events.TypeOrderDeleted, OrderID: id, At: now})
		}
		c.JSON(http.StatusOK, order.Result{Success: true, Deleted: int64(len(deleted))})
	}
}

func deliveredEvent(o order.Order) events.Event {
	return events.Event{
		Type:        events.TypeOrderDelivered,
		OrderID:     o.ID,
		StudentName: o.StudentName,
		ProductName: o.ProductName,
		At:          time.Now().UTC(),
	}
}

// publish logs broker errors and drops them. The request's cancellation does
// not reach the broker confirm wait; publishTimeout bounds it instead.
func publish(ctx context.Context, pub events.Publisher, e events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.Publish(ctx, e); err != nil {
		log.Printf("[events] %s %s: %v", e.Type, e.OrderID, err)
	}
}
