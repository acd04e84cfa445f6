package s3store

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partcustody/pkg/config"
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/kv"
)

// fakeBucket is an in-memory path-style S3 endpoint covering Get/Put/Delete.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	fail    bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return xmlResponse(http.StatusInternalServerError, "InternalError"), nil
	}

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeChunked(body)
		}
		f.objects[key] = body
		f.types[key] = req.Header.Get("Content-Type")
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"Etag": {"\"etag\""}}}, nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return xmlResponse(http.StatusNotFound, "NoSuchKey"), nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(body)), ContentLength: int64(len(body)), Header: http.Header{"Content-Type": {f.types[key]}}}, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

func xmlResponse(status int, code string) *http.Response {
	body := "<?xml version=\"1.0\" encoding=\"UTF-8\"?><Error><Code>" + code + "</Code><Message>" + code + "</Message></Error>"
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

// decodeChunked strips aws-chunked framing: <hex>[;ext]\r\n<data>\r\n ... 0\r\n
func decodeChunked(b []byte) []byte {
	var out []byte
	for len(b) > 0 {
		idx := bytes.Index(b, []byte("\r\n"))
		if idx < 0 {
			break
		}
		header := string(b[:idx])
		if semi := strings.Index(header, ";"); semi >= 0 {
			header = header[:semi]
		}
		var size int
		for _, c := range header {
			size <<= 4
			switch {
			case c >= '0' && c <= '9':
				size += int(c - '0')
			case c >= 'a' && c <= 'f':
				size += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				size += int(c-'A') + 10
			}
		}
		b = b[idx+2:]
		if size == 0 || len(b) < size {
			break
		}
		out = append(out, b[:size]...)
		b = bytes.TrimPrefix(b[size:], []byte("\r\n"))
	}
	return out
}

func newTestStore(t *testing.T, bucket *fakeBucket, prefix string) *Store {
	t.Helper()
	client := s3.New(s3.Options{
		Region: "us-east-1",
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKIA", SecretAccessKey: "SECRET"}, nil
		}),
		HTTPClient:                 &http.Client{Transport: bucket},
		UsePathStyle:               true,
		BaseEndpoint:               aws.String("http://minio.local:9000"),
		RetryMaxAttempts:           1,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	return NewWithClient(client, "custody", prefix)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	store := newTestStore(t, bucket, "fleet-7")

	_, err := store.Get(ctx, "orders")
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "orders", []byte(`[{"id":"1"}]`)))
	assert.Equal(t, `[{"id":"1"}]`, string(bucket.objects["fleet-7/orders.json"]))
	assert.Equal(t, "application/json", bucket.types["fleet-7/orders.json"])

	got, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, store.Remove(ctx, "orders"))
	require.NoError(t, store.Remove(ctx, "orders"))
	_, err = store.Get(ctx, "orders")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStoreSurfacesServerErrors(t *testing.T) {
	bucket := newFakeBucket()
	bucket.fail = true
	store := newTestStore(t, bucket, "")

	_, err := store.Get(context.Background(), "orders")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
}

func TestNewFromConfig(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	_, err := New(context.Background(), config.S3Config{})
	require.Error(t, err)

	bucket := newFakeBucket()
	store, err := New(context.Background(), config.S3Config{
		Bucket:         "custody",
		Endpoint:       "http://minio.local:9000",
		ForcePathStyle: true,
		Prefix:         "/snapshots",
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: bucket}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	require.NoError(t, err)
	assert.Equal(t, enums.StorageDriverS3, kv.DriverOf(store))

	require.NoError(t, store.Set(context.Background(), "reportedIssues", []byte(`[]`)))
	assert.Contains(t, bucket.objects, "snapshots/reportedIssues.json")
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", normalizePrefix(" "))
	assert.Equal(t, "a/", normalizePrefix("a"))
	assert.Equal(t, "a/b/", normalizePrefix("/a/b/"))
}
