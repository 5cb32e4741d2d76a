package order

import "time"

// Order is a student's purchase. ProductName is a snapshot taken when the
// order was placed, not a reference to the catalog.
type Order struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	ProductName string    `json:"product_name"`
	IsDelivered bool      `json:"is_delivered"`
	CreatedAt   time.Time `json:"created_at"`
}

// Partition splits a snapshot into not-delivered and delivered orders,
// keeping the snapshot order in both.
func Partition(orders []Order) (notDelivered, delivered []Order) {
	notDelivered = []Order{}
	delivered = []Order{}
	for _, o := range orders {
		if o.IsDelivered {
			delivered = append(delivered, o)
		} else {
			notDelivered = append(notDelivered, o)
		}
	}
	return notDelivered, delivered
}
