package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/feedmedia/internal/client/client"
	"github.com/dmitrijs2005/feedmedia/internal/client/models"
	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/dmitrijs2005/feedmedia/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireBackend plays the application server and the object store over real
// HTTP, recording what each endpoint received.
type wireBackend struct {
	mu    sync.Mutex
	calls map[string]int
	auth  map[string]string

	putLength int64
	putType   string
	putBody   []byte
}

func (b *wireBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[r.URL.Path]++
	b.auth[r.URL.Path] = r.Header.Get(common.AuthHeaderName)
}

func (b *wireBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *wireBackend) authHeader(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth[path]
}

func newWireBackend(t *testing.T) (*wireBackend, *httptest.Server, *httptest.Server) {
	t.Helper()
	b := &wireBackend{calls: map[string]int{}, auth: map[string]string{}}

	api := http.NewServeMux()
	api.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var req struct {
			Handle   string `json:"handle"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Handle != "stant" || req.Password != "stant" {
			http.Error(w, "Access denied", http.StatusBadRequest)
			return
		}
		w.Header().Set(common.TokenHeaderName, "T1")
	})
	api.HandleFunc("/userend", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if r.Header.Get(common.AuthHeaderName) != "Bearer T1" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set(common.TokenHeaderName, "T2")
	})
	api.HandleFunc("/feedMediaUploadURL", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if r.Header.Get(common.AuthHeaderName) != "Bearer T2" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"filePath":"/bucket/abc.jpg","thumbnailPath":"/bucket/abc_thumb.jpg"}`))
	})

	store := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.putLength = r.ContentLength
		b.putType = r.Header.Get("Content-Type")
		b.putBody = body
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	apiSrv := httptest.NewServer(api)
	storeSrv := httptest.NewServer(store)
	t.Cleanup(apiSrv.Close)
	t.Cleanup(storeSrv.Close)
	return b, apiSrv, storeSrv
}

func newWireService(t *testing.T, apiURL, storeURL string) UploadService {
	t.Helper()
	app, err := client.NewHTTPClient(apiURL, http.DefaultClient)
	require.NoError(t, err)
	store, err := client.NewStorageClient(storeURL, http.DefaultClient)
	require.NoError(t, err)
	return NewUploadService(app, store, logging.NewNopLogger(), Options{})
}

func TestRun_OverHTTP(t *testing.T) {
	b, apiSrv, storeSrv := newWireBackend(t)
	path := writeFile(t, "logo.jpg", []byte("jpeg-data"))

	report, err := newWireService(t, apiSrv.URL, storeSrv.URL).Run(context.Background(), creds, path)
	require.NoError(t, err)

	require.NotNil(t, report.Upload)
	assert.Equal(t, http.StatusOK, report.Upload.StatusCode)
	assert.Equal(t, models.UploadTarget{FilePath: "/bucket/abc.jpg", ThumbnailPath: "/bucket/abc_thumb.jpg"}, report.Target)

	for _, p := range []string{"/login", "/userend", "/feedMediaUploadURL", "/bucket/abc.jpg"} {
		assert.Equal(t, 1, b.count(p), p)
	}
	assert.Empty(t, b.authHeader("/login"))
	assert.Equal(t, "Bearer T1", b.authHeader("/userend"))
	assert.Equal(t, "Bearer T2", b.authHeader("/feedMediaUploadURL"))

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, int64(9), b.putLength)
	assert.Equal(t, "image/jpeg", b.putType)
	assert.Equal(t, []byte("jpeg-data"), b.putBody)
}

func TestRun_OverHTTP_WrongPassword(t *testing.T) {
	b, apiSrv, storeSrv := newWireBackend(t)
	path := writeFile(t, "logo.jpg", []byte("jpeg-data"))

	bad := models.Credentials{Handle: "stant", Password: "nope"}
	report, err := newWireService(t, apiSrv.URL, storeSrv.URL).Run(context.Background(), bad, path)
	require.ErrorIs(t, err, client.ErrAuthentication)
	assert.Nil(t, report)

	assert.Equal(t, 1, b.count("/login"))
	assert.Zero(t, b.count("/userend"))
	assert.Zero(t, b.count("/feedMediaUploadURL"))
	assert.Zero(t, b.count("/bucket/abc.jpg"))
}
