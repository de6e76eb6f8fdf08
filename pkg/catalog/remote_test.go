package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturelab/planogram/pkg/httputil"
)

const remoteCatalogJSON = `[
	{"id": "cola-330", "name": "Cola 330ml", "classification": "soda", "width": 60, "height": 120, "stackable": true},
	{"id": "still-500", "name": "Still Water 500ml", "classification": "water", "width": 55, "height": 180}
]`

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(remoteCatalogJSON))
	}))
	defer srv.Close()

	cat, err := NewFetcher(srv.Client(), nil).Fetch(context.Background(), srv.URL+"/beverages.json")
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	e, err := cat.Get("cola-330")
	require.NoError(t, err)
	assert.Equal(t, "soda", e.Classification)
	assert.True(t, e.Stackable)
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(remoteCatalogJSON))
	}))
	defer srv.Close()

	cat, err := NewFetcher(srv.Client(), nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcherDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), nil).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcherServesFromCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(remoteCatalogJSON))
	}))
	defer srv.Close()

	respCache, err := httputil.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	f := NewFetcher(srv.Client(), respCache)

	first, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())

	second, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Len())

	assert.Equal(t, int32(1), calls.Load(), "second fetch should hit the response cache")
}

func TestFetcherRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), nil).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}
