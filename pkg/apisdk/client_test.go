package apisdk_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const tokenInvalidBody = `{"detail":"Given token not valid for any token type","code":"token_not_valid"}`

// fakeAPI is a minimal SimpleJWT-style backend. Access token "a1" starts
// out expired; a refresh with "r1" issues "a2".
type fakeAPI struct {
	t *testing.T

	mu          sync.Mutex
	valid       map[string]bool
	authHeaders map[string][][]string

	rotate        bool
	refreshStatus int
	refreshGate   chan struct{}

	refreshCalls atomic.Int32
	rejected     atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{
		t:           t,
		valid:       map[string]bool{},
		authHeaders: map[string][][]string{},
		rotate:      true,
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.authHeaders[r.URL.Path] = append(f.authHeaders[r.URL.Path], r.Header.Values("Authorization"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/accounts/token/refresh/":
		f.refresh(w, r)
	case "/accounts/login/":
		f.login(w, r)
	case "/api/queries/":
		if !f.authorized(r) {
			f.reject(w)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"search_term": ["This field is required."]}`))
	case "/api/polls/":
		// Rejects every token, refreshed or not.
		f.reject(w)
	case "/api/campaigns/":
		if !f.authorized(r) {
			f.reject(w)
			return
		}
		_, _ = w.Write([]byte(`[{"campaign_id": 1, "plt": 2, "name": "Launch"}]`))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid[tok]
}

func (f *fakeAPI) reject(w http.ResponseWriter) {
	f.rejected.Add(1)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(tokenInvalidBody))
}

func (f *fakeAPI) refresh(w http.ResponseWriter, r *http.Request) {
	f.refreshCalls.Add(1)
	if f.refreshGate != nil {
		<-f.refreshGate
	}
	if f.refreshStatus != 0 {
		w.WriteHeader(f.refreshStatus)
		_, _ = w.Write([]byte(`{"refresh": ["This field may not be blank."]}`))
		return
	}

	var in struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Refresh != "r1" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired","code":"token_not_valid"}`))
		return
	}

	f.mu.Lock()
	f.valid["a2"] = true
	f.mu.Unlock()

	out := map[string]string{"access": "a2"}
	if f.rotate {
		out["refresh"] = "r2"
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var in apisdk.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.Password != "hunter2" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "error": "Invalid Credentials Provided!"}`))
		return
	}

	f.mu.Lock()
	f.valid["a9"] = true
	f.mu.Unlock()

	_ = json.NewEncoder(w).Encode(apisdk.LoginResponse{
		Success: true,
		User:    credstore.Identity{ID: 7, Username: in.Username},
		Access:  "a9",
		Refresh: "r9",
	})
}

func (f *fakeAPI) headers(path string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.authHeaders[path]...)
}

type harness struct {
	api     *fakeAPI
	client  *apisdk.Client
	creds   *credstore.Store
	notices *notify.Channel
}

func newHarness(t *testing.T, api *fakeAPI) *harness {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	creds, err := credstore.Open(context.Background(), nil, slogx.Discard())
	require.NoError(t, err)
	notices := notify.New(notify.WithLogger(slogx.Discard()))

	client := apisdk.NewClient(srv.URL, creds, notices)
	client.Logger = slogx.Discard()
	client.HTTPClient = srv.Client()

	return &harness{api: api, client: client, creds: creds, notices: notices}
}

func (h *harness) login(t *testing.T, access, refresh string) {
	t.Helper()
	require.NoError(t, h.creds.SetAuth(context.Background(), &credstore.Identity{ID: 1, Username: "alice"}, access, refresh))
}

func TestSendAttachesBearer(t *testing.T) {
	t.Parallel()

	t.Run("token held", func(t *testing.T) {
		api := newFakeAPI(t)
		api.valid["a1"] = true
		h := newHarness(t, api)
		h.login(t, "a1", "r1")

		_, err := h.client.Send(context.Background(), apisdk.Request{
			Path:   "/api/campaigns/",
			Header: http.Header{"Authorization": {"Bearer forged"}},
		})
		require.NoError(t, err)
		require.Equal(t, [][]string{{"Bearer a1"}}, api.headers("/api/campaigns/"))
	})

	t.Run("no token held", func(t *testing.T) {
		api := newFakeAPI(t)
		h := newHarness(t, api)

		_, err := h.client.Send(context.Background(), apisdk.Request{Path: "/api/campaigns/"})
		require.Error(t, err)

		got := api.headers("/api/campaigns/")
		require.Len(t, got, 1)
		require.Empty(t, got[0])
	})
}

func TestRefreshSucceeds(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	h := newHarness(t, api)
	h.login(t, "a1", "r1")

	campaigns, err := h.client.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	require.Equal(t, "Launch", campaigns[0].Name)

	require.EqualValues(t, 1, api.refreshCalls.Load())
	require.Equal(t, [][]string{{"Bearer a1"}, {"Bearer a2"}}, api.headers("/api/campaigns/"))
	require.Empty(t, api.headers("/accounts/token/refresh/")[0])

	held := h.creds.Get()
	require.Equal(t, "a2", held.Access)
	require.Equal(t, "r2", held.Refresh)
	require.Equal(t, "alice", held.Identity.Username)
	require.Zero(t, h.notices.Len())
}

func TestRefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.rotate = false
	h := newHarness(t, api)
	h.login(t, "a1", "r1")

	_, err := h.client.ListCampaigns(context.Background())
	require.NoError(t, err)

	held := h.creds.Get()
	require.Equal(t, "a2", held.Access)
	require.Equal(t, "r1", held.Refresh)
}

func TestRefreshFails(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.refreshStatus = http.StatusBadRequest
	h := newHarness(t, api)
	h.login(t, "a1", "r1")

	_, err := h.client.ListCampaigns(context.Background())

	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.ErrorIs(t, err, apisdk.ErrRefreshFailed)

	require.True(t, h.creds.Get().IsZero())
	require.EqualValues(t, 1, api.refreshCalls.Load())

	notices := h.notices.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, "Given token not valid for any token type", notices[0].Message)
	require.Equal(t, notify.SeverityError, notices[0].Severity)
}

func TestUnauthorizedWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	h := newHarness(t, api)

	_, err := h.client.ListCampaigns(context.Background())
	require.ErrorIs(t, err, apisdk.ErrNoRefreshToken)
	require.Zero(t, api.refreshCalls.Load())
	require.Equal(t, 1, h.notices.Len())
}

func TestReplayIsNotRetriedAgain(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	h := newHarness(t, api)
	h.login(t, "a1", "r1")

	_, err := h.client.ListPolls(context.Background(), apisdk.PollFilter{})

	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.Unauthorized())

	require.EqualValues(t, 1, api.refreshCalls.Load())
	require.Equal(t, [][]string{{"Bearer a1"}, {"Bearer a2"}}, api.headers("/api/polls/"))
	require.Equal(t, 1, h.notices.Len())
}

func TestConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	t.Parallel()

	const n = 8

	run := func(t *testing.T, refreshStatus int) ([]error, *harness) {
		api := newFakeAPI(t)
		api.refreshStatus = refreshStatus
		api.refreshGate = make(chan struct{})
		h := newHarness(t, api)
		h.login(t, "a1", "r1")

		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = h.client.ListCampaigns(context.Background())
			}()
		}

		// Hold the refresh open until every request has seen its 401.
		require.Eventually(t, func() bool {
			return api.rejected.Load() == n
		}, 5*time.Second, 5*time.Millisecond)
		close(api.refreshGate)
		wg.Wait()

		require.EqualValues(t, 1, api.refreshCalls.Load())
		return errs, h
	}

	t.Run("refresh succeeds", func(t *testing.T) {
		t.Parallel()

		errs, h := run(t, 0)
		for _, err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, "a2", h.creds.Get().Access)
		require.Zero(t, h.notices.Len())
	})

	t.Run("refresh fails", func(t *testing.T) {
		t.Parallel()

		errs, h := run(t, http.StatusBadRequest)
		for _, err := range errs {
			var apiErr *apisdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.True(t, apiErr.Unauthorized())
		}
		require.True(t, h.creds.Get().IsZero())
		require.Equal(t, n, h.notices.Len())
	})
}

func TestConcurrentReplaysRejectedAfterRefresh(t *testing.T) {
	t.Parallel()

	const n = 8

	api := newFakeAPI(t)
	api.refreshGate = make(chan struct{})
	h := newHarness(t, api)
	h.login(t, "a1", "r1")

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.client.ListPolls(context.Background(), apisdk.PollFilter{})
		}()
	}

	require.Eventually(t, func() bool {
		return api.rejected.Load() == n
	}, 5*time.Second, 5*time.Millisecond)
	close(api.refreshGate)
	wg.Wait()

	for _, err := range errs {
		var apiErr *apisdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.Unauthorized())
	}

	// One refresh, one replay per caller and no further retries.
	require.EqualValues(t, 1, api.refreshCalls.Load())
	require.EqualValues(t, 2*n, api.rejected.Load())
	require.Len(t, api.headers("/api/polls/"), 2*n)
	require.Equal(t, "a2", h.creds.Get().Access)
	require.Equal(t, n, h.notices.Len())
}

func TestValidationErrorIsNotRefreshed(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.valid["a1"] = true
	h := newHarness(t, api)
	h.login(t, "a1", "r1")

	_, err := h.client.CreateQuery(context.Background(), apisdk.CreateQueryRequest{Campaign: 1})

	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, map[string][]string{"search_term": {"This field is required."}}, apiErr.FieldErrors())
	require.Zero(t, api.refreshCalls.Load())

	notices := h.notices.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, "search_term: This field is required.", notices[0].Message)
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	notices := notify.New(notify.WithLogger(slogx.Discard()))
	client := apisdk.NewClient(srv.URL, nil, notices)
	client.Logger = slogx.Discard()

	_, err := client.ListCampaigns(context.Background())
	require.ErrorIs(t, err, apisdk.ErrTransport)

	n, ok := notices.PeekFirst()
	require.True(t, ok)
	require.Equal(t, "Request failed.", n.Message)
}

func TestEncodeFailureIsReported(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	h := newHarness(t, api)

	_, err := h.client.Send(context.Background(), apisdk.Request{
		Method: http.MethodPost,
		Path:   "/api/queries/",
		Body:   map[string]float64{"plt": math.NaN()},
	})
	require.Error(t, err)
	require.Empty(t, api.headers("/api/queries/"), "nothing is sent")

	notices := h.notices.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, "Request failed.", notices[0].Message)
	require.Equal(t, notify.SeverityError, notices[0].Severity)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("stores the token pair", func(t *testing.T) {
		api := newFakeAPI(t)
		h := newHarness(t, api)
		h.login(t, "stale", "stale-refresh")

		user, err := h.client.Login(context.Background(), "bob", "hunter2")
		require.NoError(t, err)
		require.Equal(t, "bob", user.Username)

		held := h.creds.Get()
		require.Equal(t, "a9", held.Access)
		require.Equal(t, "r9", held.Refresh)
		require.EqualValues(t, 7, held.Identity.ID)

		// Login never carries a bearer token.
		require.Equal(t, [][]string{nil}, api.headers("/accounts/login/"))
	})

	t.Run("bad password does not refresh", func(t *testing.T) {
		api := newFakeAPI(t)
		h := newHarness(t, api)
		h.login(t, "a1", "r1")

		_, err := h.client.Login(context.Background(), "bob", "wrong")
		require.Error(t, err)
		require.Zero(t, api.refreshCalls.Load())
		require.Equal(t, "a1", h.creds.Get().Access)

		n, ok := h.notices.PeekFirst()
		require.True(t, ok)
		require.Equal(t, "error: Invalid Credentials Provided!", n.Message)
	})

	t.Run("logout clears", func(t *testing.T) {
		api := newFakeAPI(t)
		h := newHarness(t, api)
		h.login(t, "a1", "r1")

		require.NoError(t, h.client.Logout(context.Background()))
		require.True(t, h.creds.Get().IsZero())
	})
}
