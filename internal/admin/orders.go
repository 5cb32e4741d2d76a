package admin

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/MikeMC777/tienda-puntos/internal/order"
)

// OrderReader fetches the order snapshot.
type OrderReader interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

// OrderEndpoints are the order service's write endpoints. A non-nil error
// means the endpoint could not be reached.
type OrderEndpoints interface {
	PatchDelivered(ctx context.Context, in order.DeliveredRequest) (order.Result, error)
	DeleteOrders(ctx context.Context, in order.DeleteRequest) (order.Result, error)
}

const (
	msgUnreachable       = "could not reach the server, try again"
	msgDeliverFailed     = "failed to update delivery status"
	msgDeliverAllFailed  = "failed to update delivery status for all orders"
	msgDeleteOrderFailed = "failed to delete order"
	msgDeleteAllFailed   = "failed to delete orders"
	promptDeleteOrder    = "Delete this order permanently?"
)

// StoreOrders is the student orders screen. Orders move one way only,
// from not delivered to delivered, and either state can be deleted.
type StoreOrders struct {
	reader    OrderReader
	endpoints OrderEndpoints
	confirm   Confirmer
	notify    Notifier

	mu            sync.RWMutex
	orders        []order.Order
	showDelivered bool
	loads         int

	ops inflight
}

func NewStoreOrders(reader OrderReader, endpoints OrderEndpoints, confirm Confirmer, notify Notifier) *StoreOrders {
	return &StoreOrders{
		reader:    reader,
		endpoints: endpoints,
		confirm:   confirm,
		notify:    notify,
		orders:    []order.Order{},
	}
}

// LoadOrders replaces the snapshot with every order, newest first.
func (v *StoreOrders) LoadOrders(ctx context.Context) error {
	v.mu.Lock()
	v.loads++
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.loads--
		v.mu.Unlock()
	}()

	orders, err := v.reader.ListOrders(ctx)
	if err != nil || orders == nil {
		orders = []order.Order{}
	}
	v.mu.Lock()
	v.orders = orders
	v.mu.Unlock()
	return err
}

func (v *StoreOrders) Orders() []order.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.orders)
}

func (v *StoreOrders) NotDelivered() []order.Order {
	pending, _ := order.Partition(v.Orders())
	return pending
}

func (v *StoreOrders) Delivered() []order.Order {
	_, done := order.Partition(v.Orders())
	return done
}

func (v *StoreOrders) ShowDelivered() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.showDelivered
}

func (v *StoreOrders) SetShowDelivered(show bool) {
	v.mu.Lock()
	v.showDelivered = show
	v.mu.Unlock()
}

// Visible is the partition selected by ShowDelivered.
func (v *StoreOrders) Visible() []order.Order {
	pending, done := order.Partition(v.Orders())
	if v.ShowDelivered() {
		return done
	}
	return pending
}

func (v *StoreOrders) Loading() bool {
	v.mu.RLock()
	loading := v.loads > 0
	v.mu.RUnlock()
	return loading || v.ops.busy()
}

func (v *StoreOrders) MarkDelivered(ctx context.Context, id string) error {
	key := "order:" + id
	release, ok := v.ops.acquire(key)
	if !ok {
		return busy(key)
	}
	defer release()

	res, err := v.endpoints.PatchDelivered(ctx, order.DeliveredRequest{OrderID: id})
	if err != nil {
		log.Printf("[admin] mark delivered %s: %v", id, err)
		return alert(v.notify, ErrConnectivity, msgUnreachable)
	}
	if !res.Success {
		return alert(v.notify, ErrUpdate, orDefault(res.Error, msgDeliverFailed))
	}
	v.reload(ctx)
	return nil
}

// MarkAllDelivered does nothing, not even a request, when every order in
// the snapshot is already delivered.
func (v *StoreOrders) MarkAllDelivered(ctx context.Context) error {
	if len(v.NotDelivered()) == 0 {
		return nil
	}
	release, ok := v.ops.acquire("orders:mark-all")
	if !ok {
		return busy("orders:mark-all")
	}
	defer release()

	res, err := v.endpoints.PatchDelivered(ctx, order.DeliveredRequest{MarkAll: true})
	if err != nil {
		log.Printf("[admin] mark all delivered: %v", err)
		return alert(v.notify, ErrConnectivity, msgUnreachable)
	}
	if !res.Success {
		return alert(v.notify, ErrUpdate, orDefault(res.Error, msgDeliverAllFailed))
	}
	v.reload(ctx)
	return nil
}

func (v *StoreOrders) DeleteOrder(ctx context.Context, id string) error {
	if !v.confirm.Confirm(promptDeleteOrder) {
		return nil
	}
	key := "order:" + id
	release, ok := v.ops.acquire(key)
	if !ok {
		return busy(key)
	}
	defer release()

	res, err := v.endpoints.DeleteOrders(ctx, order.DeleteRequest{OrderID: id})
	if err != nil {
		log.Printf("[admin] delete order %s: %v", id, err)
		return alert(v.notify, ErrConnectivity, msgUnreachable)
	}
	if !res.Success {
		return alert(v.notify, ErrDelete, orDefault(res.Error, msgDeleteOrderFailed))
	}
	v.reload(ctx)
	return nil
}

// DeleteAllOrders deletes exactly the orders of the visible tab, never the
// other partition.
func (v *StoreOrders) DeleteAllOrders(ctx context.Context) error {
	visible := v.Visible()
	if len(visible) == 0 {
		return nil
	}
	ids := make([]string, 0, len(visible))
	for _, o := range visible {
		ids = append(ids, o.ID)
	}
	if !v.confirm.Confirm(fmt.Sprintf("Delete all %d orders shown?", len(ids))) {
		return nil
	}
	release, ok := v.ops.acquire("orders:delete-all")
	if !ok {
		return busy("orders:delete-all")
	}
	defer release()

	res, err := v.endpoints.DeleteOrders(ctx, order.DeleteRequest{IDs: ids})
	if err != nil {
		log.Printf("[admin] delete %d orders: %v", len(ids), err)
		return alert(v.notify, ErrConnectivity, msgUnreachable)
	}
	if !res.Success {
		return alert(v.notify, ErrDelete, orDefault(res.Error, msgDeleteAllFailed))
	}
	v.reload(ctx)
	return nil
}

func (v *StoreOrders) reload(ctx context.Context) {
	if err := v.LoadOrders(ctx); err != nil {
		log.Printf("[admin] reload orders: %v", err)
	}
}
