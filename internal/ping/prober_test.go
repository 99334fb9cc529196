package ping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startProber(t *testing.T, opts ...Option) *Prober {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	p := NewProber(append([]Option{WithScheme("http"), WithTimeout(2 * time.Second)}, opts...)...)
	p.Start(ctx)
	return p
}

func hostOf(srv *httptest.Server) string {
	return srv.Listener.Addr().String()
}

func TestProbe_Favicon(t *testing.T) {
	var gotPath, gotQuery, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.Query().Get("_")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	res, err := startProber(t).Probe(context.Background(), hostOf(srv))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.GreaterOrEqual(t, res.Latency, int64(0))
	assert.Equal(t, http.MethodHead, gotMethod)
	assert.Equal(t, "/favicon.ico", gotPath)
	assert.NotEmpty(t, gotQuery)
}

func TestProbe_NonOKStatusIsReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	res, err := startProber(t).Probe(context.Background(), hostOf(srv))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestProbe_FallsBackToRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/favicon.ico" {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := startProber(t).Probe(context.Background(), hostOf(srv))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.Status)
}

func TestProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host := hostOf(srv)
	srv.Close()

	_, err := startProber(t).Probe(context.Background(), host)

	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestProbe_InvalidDomain(t *testing.T) {
	p := startProber(t)
	for _, domain := range []string{"", "   ", "example.com/path", "user@example.com", "a b.com"} {
		_, err := p.Probe(context.Background(), domain)
		assert.ErrorIs(t, err, ErrInvalidDomain, domain)
	}
}

func TestNormalizeDomain(t *testing.T) {
	got, err := normalizeDomain(" https://shop.example.com/ ")
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", got)

	got, err = normalizeDomain("localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, "localhost:3000", got)
}

func TestProbe_ContextCancelledWhileQueued(t *testing.T) {
	p := NewProber(WithScheme("http"))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Probe(ctx, "example.com")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, p.QueueDepth())
}

func TestProbe_Stopped(t *testing.T) {
	p := NewProber(WithScheme("http"))
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()
	<-p.stopped

	_, err := p.Probe(context.Background(), "example.com")

	assert.ErrorIs(t, err, ErrStopped)
}

func TestProbe_Serialized(t *testing.T) {
	var inFlight, maxInFlight int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := startProber(t)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Probe(context.Background(), hostOf(srv))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}
