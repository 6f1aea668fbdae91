package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const s3ErrorBody = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>%s</Code><Message>%s</Message><Key>reports/abc.md</Key><BucketName>blood-reports</BucketName><Resource>/blood-reports/reports/abc.md</Resource><RequestId>1</RequestId><HostId>1</HostId></Error>`

// newStubStorage points a client at a server that answers every request
// with the given S3 error.
func newStubStorage(t *testing.T, status int, code, message string) Storage {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		fmt.Fprintf(w, s3ErrorBody, code, message)
	}))
	t.Cleanup(srv.Close)

	client, err := minio.New(strings.TrimPrefix(srv.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("test", "test", ""),
		Secure: false,
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatalf("minio.New: %v", err)
	}

	return &s3Storage{client: client, bucketName: "blood-reports"}
}

func TestDownloadMissingKey(t *testing.T) {
	store := newStubStorage(t, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")

	_, err := store.Download(context.Background(), "reports/abc.md")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestDownloadOtherErrors(t *testing.T) {
	store := newStubStorage(t, http.StatusForbidden, "AccessDenied", "Access Denied.")

	_, err := store.Download(context.Background(), "reports/abc.md")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("access denied mapped to ErrObjectNotFound: %v", err)
	}
}
