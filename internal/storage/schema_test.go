package storage

import (
	"strings"
	"testing"
)

func TestSchema_DeclaresCascadeAndPriceCheck(t *testing.T) {
	if !strings.Contains(schemaSQL, "REFERENCES store_categories(id) ON DELETE CASCADE") {
		t.Fatalf("store_products must cascade on category delete")
	}
	if !strings.Contains(schemaSQL, "CHECK (price >= 0)") {
		t.Fatalf("price must be non-negative")
	}
	for _, tbl := range []string{"store_categories", "store_products", "store_orders", "store_blobs"} {
		if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+tbl) {
			t.Fatalf("missing table %s", tbl)
		}
	}
}
