package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestRateLimitedTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	t.Run("zero config does not pace", func(t *testing.T) {
		client := &http.Client{Transport: httpx.NewRateLimitedTransport(nil, httpx.RateLimitConfig{})}
		for range 20 {
			resp, err := client.Get(srv.URL)
			require.NoError(t, err)
			_ = resp.Body.Close()
		}
	})

	t.Run("wait honours context", func(t *testing.T) {
		tr := httpx.NewRateLimitedTransport(nil, httpx.RateLimitConfig{
			RequestsPerWindow: 1,
			Window:            time.Hour,
			Burst:             1,
		})
		client := &http.Client{Transport: tr}

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		_, err = client.Do(req)
		require.Error(t, err)
	})
}
