package dashboard_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

// TestExpiredAccessTokenIsRefreshed logs in, waits out the access token
// and checks that the next call succeeds on a refreshed token.
func TestExpiredAccessTokenIsRefreshed(t *testing.T) {
	baseURL := setupBackend(t, backendOptions{accessTTL: 2 * time.Second})
	a := newApp(t, baseConfig(baseURL))
	login(t, a)

	before := a.Credentials.Get()
	time.Sleep(3 * time.Second)

	platforms, err := a.Client.ListPlatforms(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, platforms)

	after := a.Credentials.Get()
	require.NotEqual(t, before.Access, after.Access, "access token should be replaced")
	require.Equal(t, before.Refresh, after.Refresh, "refresh token is kept without rotation")
	require.Zero(t, a.Notices.Len(), "a recovered 401 is not reported")
}

// TestConcurrentRequestsShareOneRefresh fires a burst of calls at an
// expired token against a rotating backend. Were two refreshes to run,
// the second would present a blacklisted refresh token and fail.
func TestConcurrentRequestsShareOneRefresh(t *testing.T) {
	baseURL := setupBackend(t, backendOptions{accessTTL: 2 * time.Second, rotate: true})
	a := newApp(t, baseConfig(baseURL))
	login(t, a)

	before := a.Credentials.Get()
	time.Sleep(3 * time.Second)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = a.Client.ListCampaigns(t.Context())
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "caller %d", i)
	}
	after := a.Credentials.Get()
	require.True(t, after.Authenticated())
	require.NotEqual(t, before.Refresh, after.Refresh, "refresh token should be rotated")
	require.Zero(t, a.Notices.Len())
}

// TestRejectedRefreshLogsOut checks that a refresh token the backend no
// longer accepts clears the session and leaves exactly one notice.
func TestRejectedRefreshLogsOut(t *testing.T) {
	baseURL := setupBackend(t, backendOptions{accessTTL: 2 * time.Second})
	a := newApp(t, baseConfig(baseURL))
	login(t, a)

	held := a.Credentials.Get()
	require.NoError(t, a.Credentials.SetAuth(t.Context(), held.Identity, held.Access, "not-a-refresh-token"))
	time.Sleep(3 * time.Second)

	_, err := a.Client.ListCampaigns(t.Context())
	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.Unauthorized())
	require.ErrorIs(t, err, apisdk.ErrRefreshFailed)

	require.False(t, a.Credentials.Get().Authenticated())
	require.Equal(t, 1, a.Notices.Len())
}
