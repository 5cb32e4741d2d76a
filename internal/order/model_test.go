package order

import (
	"fmt"
	"testing"
)

func TestPartition_DisjointAndComplete(t *testing.T) {
	var snapshot []Order
	for i := 0; i < 7; i++ {
		snapshot = append(snapshot, Order{ID: fmt.Sprintf("o%d", i), IsDelivered: i%3 == 0})
	}

	pending, done := Partition(snapshot)
	if len(pending)+len(done) != len(snapshot) {
		t.Fatalf("union size=%d, snapshot=%d", len(pending)+len(done), len(snapshot))
	}
	seen := map[string]bool{}
	for _, o := range pending {
		if o.IsDelivered {
			t.Fatalf("delivered order %s in pending partition", o.ID)
		}
		seen[o.ID] = true
	}
	for _, o := range done {
		if !o.IsDelivered {
			t.Fatalf("pending order %s in delivered partition", o.ID)
		}
		if seen[o.ID] {
			t.Fatalf("order %s in both partitions", o.ID)
		}
	}
	// snapshot order is preserved
	if pending[0].ID != "o1" || done[0].ID != "o0" || done[1].ID != "o3" {
		t.Fatalf("order not preserved: pending=%v done=%v", pending, done)
	}
}

func TestPartition_Empty(t *testing.T) {
	pending, done := Partition(nil)
	if pending == nil || done == nil || len(pending) != 0 || len(done) != 0 {
		t.Fatalf("expected empty partitions, got %v %v", pending, done)
	}
}
