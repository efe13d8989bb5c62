package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Afox1/cngcare/pkg/options"
)

type fakeS3 struct {
	mu           sync.Mutex
	bucketExists bool
	requests     []string
	contentTypes map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	switch {
	case r.Method == http.MethodHead && strings.Trim(r.URL.Path, "/") == "cng-reports":
		if !f.bucketExists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && strings.Trim(r.URL.Path, "/") == "cng-reports":
		f.bucketExists = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		if f.contentTypes == nil {
			f.contentTypes = map[string]string{}
		}
		f.contentTypes[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newTestArchive(t *testing.T, fake *fakeS3) *minioArchive {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	opts := options.NewS3Options()
	opts.Enabled = true
	opts.Endpoint = u.Host
	opts.AccessKeyID = "minio"
	opts.SecretAccessKey = "minio123"

	a, err := NewMinIOArchive(opts)
	require.NoError(t, err)
	return a.(*minioArchive)
}

func TestCheckBucketCreatesMissingBucket(t *testing.T) {
	fake := &fakeS3{}
	a := newTestArchive(t, fake)

	require.NoError(t, a.CheckBucket(context.Background()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.True(t, fake.bucketExists)
	assert.Equal(t, "HEAD", strings.Fields(fake.requests[0])[0])
}

func TestCheckBucketExisting(t *testing.T) {
	fake := &fakeS3{bucketExists: true}
	a := newTestArchive(t, fake)

	require.NoError(t, a.CheckBucket(context.Background()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, r := range fake.requests {
		assert.False(t, strings.HasPrefix(r, "PUT"), "bucket must not be recreated")
	}
}

func TestStore(t *testing.T) {
	fake := &fakeS3{bucketExists: true}
	a := newTestArchive(t, fake)

	key := "reports/ABC-123/20261019T140509Z.pdf"
	link, err := a.Store(context.Background(), key, []byte("%PDF-1.3 test"))
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/cng-reports/"+key, u.Path)
	assert.Equal(t, "86400", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "application/pdf", fake.contentTypes["/cng-reports/"+key])
}
