package order

// DeliveredRequest marks one order (OrderID) or every pending order (MarkAll) delivered.
// swagger:model DeliveredRequest
type DeliveredRequest struct {
	OrderID string `json:"order_id,omitempty" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	MarkAll bool   `json:"mark_all,omitempty" example:"false"`
}

// DeleteRequest deletes one order (OrderID) or a specific set (IDs).
// swagger:model DeleteRequest
type DeleteRequest struct {
	OrderID string   `json:"order_id,omitempty" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	IDs     []string `json:"ids,omitempty"`
}

// Result is the envelope every order endpoint answers with.
// swagger:model Result
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Updated int64  `json:"updated,omitempty"`
	Deleted int64  `json:"deleted,omitempty"`
}
