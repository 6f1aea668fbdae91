package storage

import (
	"context"
	"os"
	"testing"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/config"
)

// Runs against a live MinIO when S3_ENDPOINT is set, e.g. localhost:9000.
func TestS3StorageRoundTrip(t *testing.T) {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("S3_ENDPOINT not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, err := NewS3Storage(ctx, cfg)
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	key := "reports/test-roundtrip.md"
	if err := store.Upload(ctx, key, []byte("## Clinical Analysis"), "text/markdown"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	defer store.Delete(ctx, key)

	data, err := store.Download(ctx, key)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != "## Clinical Analysis" {
		t.Errorf("Download = %q", data)
	}
}
