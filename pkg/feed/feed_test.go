package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const body = "Data;Godzina;RCE\n20240101;1;123,45\n"

func TestFetch(t *testing.T) {
	var agent, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		path = r.URL.Path
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	c := New(server.URL+"/", 3, 5*time.Second)
	data, err := c.Fetch(context.Background(), "20240101")
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Equal(t, "/getcsv/-/export/csv/PL_CENY_RYN_EN/data/20240101", path)
	assert.True(t, strings.HasPrefix(agent, "Mozilla/5.0"), agent)
}

func TestURL(t *testing.T) {
	c := New(DefaultServer, 3, time.Second)
	assert.Equal(t, "https://www.pse.pl/getcsv/-/export/csv/PL_CENY_RYN_EN/data/20241027", c.URL("20241027"))
}

func TestFetchExhaustsAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, 3, 5*time.Second)
	var waited time.Duration
	backoff := c.http.Backoff
	c.http.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		waited += backoff(min, max, attemptNum, resp)
		return time.Millisecond
	}

	_, err := c.Fetch(context.Background(), "20240101")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "20240101", fetchErr.Date)
	assert.Equal(t, 3, fetchErr.Attempts)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 15*time.Second, waited)
}

func TestFetchRecoversAfterFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	c := New(server.URL, 3, time.Millisecond)
	data, err := c.Fetch(context.Background(), "20240101")
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchTruncatedBody(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Length", "100")
		fmt.Fprint(w, "Data;Godzina")
	}))
	defer server.Close()

	c := New(server.URL, 3, time.Millisecond)
	_, err := c.Fetch(context.Background(), "20240101")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 0, fetchErr.Attempts)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotContains(t, err.Error(), "attempt")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(url, 2, time.Millisecond)
	_, err := c.Fetch(context.Background(), "20240101")
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(server.URL, 3, time.Hour)
	_, err := c.Fetch(ctx, "20240101")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLinearBackoff(t *testing.T) {
	b := LinearBackoff(5 * time.Second)
	assert.Equal(t, 5*time.Second, b(0, 0, 0, nil))
	assert.Equal(t, 10*time.Second, b(0, 0, 1, nil))
}
