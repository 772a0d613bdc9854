//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "shop-portal"

	StateSampleOrders = "sample orders exist"
	StateOrderMissing = "no order with id 404"
)

const (
	// SampleOrderID is userA's order in the sample data.
	SampleOrderID  int64 = 1
	MissingOrderID int64 = 404

	SampleMemberID int64 = 1
	SampleItemID   int64 = 1
)

const exampleOrderDate = "2024-06-12T10:00:00Z"

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the shop portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderSummary is userA's sample order as the portal renders it.
func ExampleOrderSummary() map[string]any {
	return map[string]any{
		"orderId":     SampleOrderID,
		"name":        "userA",
		"orderDate":   exampleOrderDate,
		"orderStatus": "ORDER",
		"address": map[string]any{
			"city":    "Seoul",
			"street":  "32",
			"zipcode": "1323",
		},
		"orderItems": []map[string]any{
			{"itemName": "JPA1 BOOK", "orderPrice": 10000, "count": 1},
			{"itemName": "JPA2 BOOK", "orderPrice": 20000, "count": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
