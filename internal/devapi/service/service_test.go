package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/stretchr/testify/require"
)

func messages(t *testing.T, err error, field string) []string {
	t.Helper()
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	got, ok := verr.Fields.Get(field)
	require.True(t, ok, "no messages for %q in %v", field, err)
	return got
}

func register(t *testing.T, svc *service.Service, username string) credstore.Identity {
	t.Helper()
	id, err := svc.Register(context.Background(), apisdk.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return id
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.New()

	alice := register(t, svc, "alice")
	require.NotZero(t, alice.ID)

	t.Run("duplicate username and email", func(t *testing.T) {
		_, err := svc.Register(ctx, apisdk.RegisterRequest{Username: "Alice", Email: "alice@example.com", Password: "correct-horse"})
		require.Equal(t, []string{"Username already taken !"}, messages(t, err, "username"))
		require.Equal(t, []string{"Email is already registered !"}, messages(t, err, "email"))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, apisdk.RegisterRequest{Username: "bob", Password: "short"})
		require.Equal(t,
			[]string{"This password is too short. It must contain at least 8 characters."},
			messages(t, err, "password"))
	})

	t.Run("fields keep declaration order", func(t *testing.T) {
		_, err := svc.Register(ctx, apisdk.RegisterRequest{})
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "username", verr.Fields.Oldest().Key)
		require.Equal(t, "password", verr.Fields.Newest().Key)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "alice", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, alice, got)

		_, err = svc.Authenticate(ctx, "alice", "wrong-horse")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "nobody", "correct-horse")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestCampaignsAndQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.New()
	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	t.Run("campaign validation", func(t *testing.T) {
		_, err := svc.CreateCampaign(ctx, alice.ID, apisdk.CreateCampaignRequest{Name: " "})
		require.Equal(t, []string{"This field may not be blank."}, messages(t, err, "name"))
		require.Equal(t, []string{"Platform is required for a Campaign !"}, messages(t, err, "plt"))

		_, err = svc.CreateCampaign(ctx, alice.ID, apisdk.CreateCampaignRequest{Name: "x", Platform: 99})
		require.Equal(t, []string{`Invalid pk "99" - object does not exist.`}, messages(t, err, "plt"))
	})

	first, err := svc.CreateCampaign(ctx, alice.ID, apisdk.CreateCampaignRequest{Name: "Election", Platform: 1})
	require.NoError(t, err)
	second, err := svc.CreateCampaign(ctx, alice.ID, apisdk.CreateCampaignRequest{Name: "Budget", Platform: 2})
	require.NoError(t, err)

	t.Run("listing is per owner and newest first", func(t *testing.T) {
		got := svc.ListCampaigns(ctx, alice.ID)
		require.Len(t, got, 2)
		require.Equal(t, second.ID, got[0].ID)
		require.Empty(t, svc.ListCampaigns(ctx, bob.ID))

		_, err := svc.GetCampaign(ctx, bob.ID, first.ID)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("queries", func(t *testing.T) {
		_, err := svc.CreateQuery(ctx, alice.ID, apisdk.CreateQueryRequest{Campaign: first.ID, SearchTerm: "  "})
		require.Equal(t, []string{"Search term cannot be blank !"}, messages(t, err, "search_term"))

		_, err = svc.CreateQuery(ctx, bob.ID, apisdk.CreateQueryRequest{Campaign: first.ID, SearchTerm: "vote"})
		require.Equal(t, []string{"You do not own this campaign!"}, messages(t, err, "campaign"))

		q1, err := svc.CreateQuery(ctx, alice.ID, apisdk.CreateQueryRequest{Campaign: first.ID, SearchTerm: " vote "})
		require.NoError(t, err)
		require.Equal(t, "vote", q1.SearchTerm)
		q2, err := svc.CreateQuery(ctx, alice.ID, apisdk.CreateQueryRequest{Campaign: second.ID, SearchTerm: "tax"})
		require.NoError(t, err)

		all := svc.ListQueries(ctx, alice.ID, 0)
		require.Len(t, all, 2)
		require.Equal(t, q2.ID, all[0].ID)

		narrowed := svc.ListQueries(ctx, alice.ID, first.ID)
		require.Len(t, narrowed, 1)
		require.Equal(t, q1.ID, narrowed[0].ID)

		require.Empty(t, svc.ListQueries(ctx, bob.ID, 0))
	})
}

func TestPolls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.New()
	alice := register(t, svc, "alice")

	c, err := svc.CreateCampaign(ctx, alice.ID, apisdk.CreateCampaignRequest{Name: "Election", Platform: 1})
	require.NoError(t, err)
	q, err := svc.CreateQuery(ctx, alice.ID, apisdk.CreateQueryRequest{Campaign: c.ID, SearchTerm: "vote"})
	require.NoError(t, err)
	question, err := svc.CreateQuestion(ctx, alice.ID, "Who will you vote for?")
	require.NoError(t, err)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("ends before start", func(t *testing.T) {
		_, err := svc.CreatePoll(ctx, alice.ID, apisdk.CreatePollRequest{
			Query: q.ID, Question: question.ID, StartsAt: start, EndsAt: start.Add(-time.Hour),
		})
		require.Equal(t, []string{"End time must be greater than start time"}, messages(t, err, "ends_at"))
	})

	t.Run("created and filtered", func(t *testing.T) {
		p, err := svc.CreatePoll(ctx, alice.ID, apisdk.CreatePollRequest{
			Query: q.ID, Question: question.ID, StartsAt: start, EndsAt: start.Add(time.Hour),
		})
		require.NoError(t, err)
		require.True(t, p.IsActive)

		require.Len(t, svc.ListPolls(ctx, alice.ID, apisdk.PollFilter{Campaign: c.ID}), 1)
		require.Len(t, svc.ListPolls(ctx, alice.ID, apisdk.PollFilter{Query: q.ID}), 1)
		require.Empty(t, svc.ListPolls(ctx, alice.ID, apisdk.PollFilter{Query: q.ID + 1}))
	})
}

func TestQuestionsAndAnswers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.New()
	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	_, err := svc.CreateQuestion(ctx, alice.ID, "   ")
	require.Equal(t, []string{"Question text cannot be left blank!"}, messages(t, err, "question"))

	q, err := svc.CreateQuestion(ctx, alice.ID, "Favourite colour?")
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, alice.ID, "Best season?")
	require.NoError(t, err)

	t.Run("search ignores case", func(t *testing.T) {
		got := svc.ListQuestions(ctx, alice.ID, "COLOUR")
		require.Len(t, got, 1)
		require.Equal(t, q.ID, got[0].ID)
		require.Len(t, svc.ListQuestions(ctx, alice.ID, ""), 2)
	})

	t.Run("answers", func(t *testing.T) {
		_, err := svc.AddAnswer(ctx, alice.ID, q.ID, " ")
		require.Equal(t, []string{"Answer text cannot be blank!"}, messages(t, err, "answer"))

		_, err = svc.AddAnswer(ctx, bob.ID, q.ID, "Red")
		require.ErrorIs(t, err, service.ErrNotFound)

		red, err := svc.AddAnswer(ctx, alice.ID, q.ID, "Red")
		require.NoError(t, err)
		_, err = svc.AddAnswer(ctx, alice.ID, q.ID, "Blue")
		require.NoError(t, err)

		got, err := svc.ListAnswers(ctx, alice.ID, q.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, red.ID, got[0].ID)

		updated, err := svc.UpdateAnswer(ctx, alice.ID, red.ID, "Crimson")
		require.NoError(t, err)
		require.Equal(t, "Crimson", updated.Answer)
	})

	t.Run("delete cascades to answers", func(t *testing.T) {
		require.NoError(t, svc.DeleteQuestion(ctx, alice.ID, q.ID))
		_, err := svc.ListAnswers(ctx, alice.ID, q.ID)
		require.ErrorIs(t, err, service.ErrNotFound)
		require.ErrorIs(t, svc.DeleteQuestion(ctx, alice.ID, q.ID), service.ErrNotFound)
	})
}

func TestConnectCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.New()
	alice := register(t, svc, "alice")
	const plt = int64(1)

	t.Run("requires an app first", func(t *testing.T) {
		_, err := svc.ConnectCredentials(ctx, alice.ID, plt, apisdk.ConnectCredentialsRequest{
			ExternalAccountID: "42", AccessToken: "tok",
		})
		var list service.ErrorList
		require.ErrorAs(t, err, &list)
		require.Equal(t, service.ErrorList{"No active app found for this platform. Set client id / secret first!"}, list)
	})

	require.NoError(t, svc.UpsertApp(ctx, alice.ID, plt, apisdk.AppUpsertRequest{ClientID: "id", ClientSecret: "secret"}))
	info, err := svc.AppInfo(ctx, alice.ID, plt)
	require.NoError(t, err)
	require.True(t, info.Exists)
	require.True(t, info.Masked)

	tests := []struct {
		name  string
		req   apisdk.ConnectCredentialsRequest
		field string
		want  string
	}{
		{"oauth1a without account", apisdk.ConnectCredentialsRequest{OAuthVersion: apisdk.OAuth1a}, "external_account_id", "Required for OAuth1.0a."},
		{"oauth1a without secret", apisdk.ConnectCredentialsRequest{OAuthVersion: apisdk.OAuth1a, ExternalAccountID: "1", AccessToken: "a"}, service.NonFieldErrors, "OAuth1.0a requires access_token and token_secret."},
		{"oauth2 defaulted", apisdk.ConnectCredentialsRequest{}, "external_account_id", "Required for OAuth2 user tokens."},
		{"oauth2 without tokens", apisdk.ConnectCredentialsRequest{OAuthVersion: apisdk.OAuth2, ExternalAccountID: "1"}, service.NonFieldErrors, "OAuth2 requires access_token or bearer_token."},
		{"app without bearer", apisdk.ConnectCredentialsRequest{OAuthVersion: apisdk.OAuthApp}, service.NonFieldErrors, "App-only requires bearer_token."},
		{"unknown version", apisdk.ConnectCredentialsRequest{OAuthVersion: "oauth3"}, "oauth_version", "Invalid value."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ConnectCredentials(ctx, alice.ID, plt, tt.req)
			require.Equal(t, []string{tt.want}, messages(t, err, tt.field))
		})
	}

	t.Run("upsert and disconnect", func(t *testing.T) {
		first, err := svc.ConnectCredentials(ctx, alice.ID, plt, apisdk.ConnectCredentialsRequest{
			ExternalAccountID: "42", AccessToken: "tok",
		})
		require.NoError(t, err)
		again, err := svc.ConnectCredentials(ctx, alice.ID, plt, apisdk.ConnectCredentialsRequest{
			ExternalAccountID: "42", AccessToken: "tok2",
		})
		require.NoError(t, err)
		require.Equal(t, first.ID, again.ID)

		_, err = svc.ConnectCredentials(ctx, alice.ID, plt, apisdk.ConnectCredentialsRequest{
			OAuthVersion: apisdk.OAuthApp, ExternalAccountID: "ignored", BearerToken: "b",
		})
		require.NoError(t, err)

		conns := svc.Connections(ctx, alice.ID)
		require.Len(t, conns, 2)
		require.Nil(t, conns[1].ExternalAccountID)
		require.True(t, conns[0].Platform.Connected)

		n, err := svc.Disconnect(ctx, alice.ID, plt, "42", "")
		require.NoError(t, err)
		require.Equal(t, 1, n)

		n, err = svc.Disconnect(ctx, alice.ID, plt, "", "")
		require.NoError(t, err)
		require.Equal(t, 1, n)

		for _, p := range svc.ListPlatforms(ctx, alice.ID) {
			require.False(t, p.Connected, p.Name)
		}
	})
}
