/*
Package apisdk is the client for the FireMe campaign backend.

# Overview

Every call goes through Client.Send. Send attaches the held access token,
sends the request and, when the backend answers 401, tries once to get a
new access token with the held refresh token before replaying the call.
Failures that survive that are pushed to the notification channel and
returned to the caller.

	store, err := credstore.Open(ctx, backend, logger)
	notices := notify.New()
	client := apisdk.NewClient("http://127.0.0.1:8000", store, notices)

	user, err := client.Login(ctx, "alice", "secret")
	campaigns, err := client.ListCampaigns(ctx)

# Token Refresh

Only one refresh runs at a time. The first call to see a 401 becomes the
leader and talks to the refresh endpoint; calls that see a 401 while it
runs queue behind it and are resumed in arrival order with the leader's
outcome. A failed refresh clears the credential store.

A call is refreshed at most once. A replay that gets another 401 fails.

# Errors

HTTP failures come back as *APIError:

	_, err := client.CreateQuery(ctx, req)
	var apiErr *apisdk.APIError
	if errors.As(err, &apiErr) {
		fields := apiErr.FieldErrors() // {"search_term": ["..."]}
	}

Failures with no response wrap ErrTransport. A 401 that could not be
recovered also matches ErrNoRefreshToken or ErrRefreshFailed.

Normalize is exported for callers that want the same one-line rendering
of a DRF error body that the notices use.
*/
package apisdk
