package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPattern = regexp.MustCompile(`^contacts/\d{13}-[0-9a-f]{8}\.[a-z0-9]+$`)

func TestObjectKey_Shape(t *testing.T) {
	assert.Regexp(t, keyPattern, objectKey("png"))
	assert.Regexp(t, keyPattern, objectKey(".jpg"))
}

func TestObjectKey_DefaultExtension(t *testing.T) {
	assert.Regexp(t, `\.bin$`, objectKey(""))
}

func TestObjectKey_CollisionResistance(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key := objectKey("png")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func newFakeS3Store(t *testing.T, handler http.HandlerFunc) *S3AttachmentStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		BaseEndpoint:     aws.String(server.URL),
		UsePathStyle:     true,
		Region:           "us-east-1",
		Credentials:      credentials.NewStaticCredentialsProvider("test", "test", ""),
		RetryMaxAttempts: 1,
	})
	return &S3AttachmentStore{
		client:        client,
		bucket:        "uploads",
		region:        "us-east-1",
		publicBaseURL: "https://cdn.example.com",
	}
}

func TestUpload_ReturnsPublicURL(t *testing.T) {
	var gotMethod, gotPath string
	store := newFakeS3Store(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	url, err := store.Upload(context.Background(), []byte("png-bytes"), "image/png", "png")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Contains(t, gotPath, "/uploads/contacts/")
	assert.Regexp(t, `^https://cdn\.example\.com/contacts/\d{13}-[0-9a-f]{8}\.png$`, url)
}

func TestUpload_MissingBucket(t *testing.T) {
	store := newFakeS3Store(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Error><Code>NoSuchBucket</Code>` +
			`<Message>The specified bucket does not exist</Message>` +
			`<BucketName>uploads</BucketName></Error>`))
	})

	_, err := store.Upload(context.Background(), []byte("png-bytes"), "image/png", "png")

	assert.ErrorIs(t, err, ErrBucketNotFound)
}

func TestUpload_GenericFailureIsNotBucketNotFound(t *testing.T) {
	store := newFakeS3Store(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Error><Code>AccessDenied</Code>` +
			`<Message>Access Denied</Message></Error>`))
	})

	_, err := store.Upload(context.Background(), []byte("png-bytes"), "image/png", "png")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBucketNotFound))
	assert.Contains(t, err.Error(), "put object")
}

func TestPublicURL(t *testing.T) {
	store := &S3AttachmentStore{bucket: "uploads", region: "ap-northeast-2"}
	assert.Equal(t,
		"https://uploads.s3.ap-northeast-2.amazonaws.com/contacts/1-a.png",
		store.publicURL("contacts/1-a.png"))

	store.publicBaseURL = "https://cdn.example.com"
	assert.Equal(t, "https://cdn.example.com/contacts/1-a.png", store.publicURL("contacts/1-a.png"))
}
