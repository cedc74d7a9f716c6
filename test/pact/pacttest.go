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
	ProviderName = "bookstore-api"
	ConsumerName = "storefront"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 301 exists"
	StateOrderMissing   = "no order with id 999"
	StateCatalogSeeded  = "catalog with book 101 and user 501 seeded"
)

const (
	SeededBookID    int64 = 101
	SeededUserID    int64 = 501
	SeededStock     int   = 10
	SeededBookPrice       = "39.99"

	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999

	SeededUsername  = "pact-reader"
	SeededBookTitle = "The Go Programming Language"
	ShippingAddress = "12 Baker Street, London"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
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

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
