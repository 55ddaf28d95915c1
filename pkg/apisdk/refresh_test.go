package apisdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorResolvesWaitersInOrder(t *testing.T) {
	t.Parallel()

	outcomes := []refreshResult{
		{token: "a2"},
		{err: ErrRefreshFailed},
	}

	for _, outcome := range outcomes {
		var rc refreshCoordinator
		require.True(t, rc.join(func(refreshResult) { t.Fatal("leader must not be queued") }))

		var order []string
		for _, name := range []string{"w1", "w2", "w3"} {
			leader := rc.join(func(res refreshResult) {
				require.Equal(t, outcome, res)
				order = append(order, name)
			})
			require.False(t, leader)
		}
		require.Equal(t, 3, rc.pending())

		rc.settle(outcome)
		require.Equal(t, []string{"w1", "w2", "w3"}, order)
		require.Zero(t, rc.pending())

		// The round is over; the next caller leads a new one.
		require.True(t, rc.join(func(refreshResult) {}))
		rc.settle(refreshResult{})
	}
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	creds, err := credstore.Open(context.Background(), nil, slogx.Discard())
	require.NoError(t, err)

	c := NewClient(srv.URL, creds, notify.New(notify.WithLogger(slogx.Discard())))
	c.Logger = slogx.Discard()
	c.HTTPClient = srv.Client()
	return c
}

func TestWaiterCancelledWhileRefreshRuns(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, c.Credentials.SetAuth(context.Background(), nil, "a1", "r1"))

	// Stand in for a leader whose refresh is still running.
	require.True(t, c.refresh.join(func(refreshResult) {}))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := c.Send(ctx, Request{Path: "/api/campaigns/"})
		errc <- err
	}()

	require.Eventually(t, func() bool { return c.refresh.pending() == 1 }, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		require.ErrorIs(t, err, ErrTransport)
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled waiter did not return")
	}

	// Settling after the waiter left must not block.
	c.refresh.settle(refreshResult{token: "a2"})
	require.Equal(t, 1, c.Notices.Len())
}

func TestLeaderReplaysWhenTokenAlreadyReplaced(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32
	var replayed atomic.Value
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == DefaultRefreshPath {
			refreshCalls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		replayed.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	require.NoError(t, c.Credentials.SetAuth(context.Background(), nil, "a2", "r2"))

	// The request went out with a1 before someone else's refresh landed.
	p, err := c.prepare(Request{Path: "/api/campaigns/"})
	require.NoError(t, err)
	p.token = "a1"

	resp, err := c.recoverAuth(context.Background(), p, newAPIError(http.MethodGet, p.path, http.StatusUnauthorized, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Bearer a2", replayed.Load())
	require.Zero(t, refreshCalls.Load())
	require.True(t, p.retried)
}

func TestRefreshTimesOut(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(block) })
	c.RefreshTimeout = 50 * time.Millisecond

	_, err := c.refreshTokens(context.Background(), credstore.Credentials{Access: "a1", Refresh: "r1"})
	require.ErrorIs(t, err, ErrRefreshFailed)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}
