package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// fakeS3 is a path-style S3 subset: HeadBucket, CreateBucket, PutObject, GetObject.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	bucket := parts[0]
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch {
	case key == "" && req.Method == http.MethodHead:
		if f.buckets[bucket] {
			return respond(http.StatusOK, ""), nil
		}
		return respond(http.StatusNotFound, ""), nil
	case key == "" && req.Method == http.MethodPut:
		f.buckets[bucket] = true
		return respond(http.StatusOK, ""), nil
	case req.Method == http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[bucket+"/"+key] = body
		f.types[bucket+"/"+key] = req.Header.Get("Content-Type")
		resp := respond(http.StatusOK, "")
		resp.Header.Set("ETag", `"etag"`)
		return resp, nil
	case req.Method == http.MethodGet:
		body, ok := f.objects[bucket+"/"+key]
		if !ok {
			resp := respond(http.StatusNotFound,
				`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			resp.Header.Set("Content-Type", "application/xml")
			return resp, nil
		}
		resp := respond(http.StatusOK, string(body))
		resp.Header.Set("Content-Type", f.types[bucket+"/"+key])
		return resp, nil
	}
	return respond(http.StatusNotImplemented, ""), nil
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Header:        http.Header{},
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func newTestArchive(t *testing.T, fake *fakeS3) *LabelArchive {
	t.Helper()
	a, err := NewLabelArchive(context.Background(), Config{
		Endpoint:        "http://minio.test",
		Region:          "us-east-1",
		Bucket:          "labels-test",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		HTTPClient:      &http.Client{Transport: fake},
	})
	if err != nil {
		t.Fatalf("NewLabelArchive: %v", err)
	}
	return a
}

func TestLabelKey(t *testing.T) {
	got := LabelKey("1000", "4f9c")
	if got != "labels/1000/4f9c.json" {
		t.Errorf("LabelKey = %q", got)
	}
}

func TestNewLabelArchive_RequiresBucket(t *testing.T) {
	if _, err := NewLabelArchive(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}

func TestLabelArchive_EnsureBucketAndPing(t *testing.T) {
	fake := newFakeS3()
	a := newTestArchive(t, fake)
	ctx := context.Background()

	if err := a.Ping(ctx); err == nil {
		t.Fatal("expected ping to fail before the bucket exists")
	}
	if err := a.EnsureBucket(ctx); err != nil {
		t.Fatalf("EnsureBucket: %v", err)
	}
	if !fake.buckets["labels-test"] {
		t.Fatal("bucket was not created")
	}
	if err := a.EnsureBucket(ctx); err != nil {
		t.Fatalf("EnsureBucket on existing bucket: %v", err)
	}
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestLabelArchive_PutGet(t *testing.T) {
	fake := newFakeS3()
	a := newTestArchive(t, fake)
	ctx := context.Background()

	key := LabelKey("1000", "abc")
	doc := []byte(`{"item_code":"1000"}`)
	if err := a.Put(ctx, key, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ct := fake.types["labels-test/"+key]; ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	got, err := a.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, doc) {
		t.Errorf("Get = %s, want %s", got, doc)
	}
}

func TestLabelArchive_GetMissing(t *testing.T) {
	a := newTestArchive(t, newFakeS3())
	_, err := a.Get(context.Background(), LabelKey("1000", "missing"))
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}
