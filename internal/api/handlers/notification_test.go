package handlers_test

import (
	"net/http"
	"testing"

	"github.com/lucasrosa/lembretes-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribeBody(endpoint string) map[string]interface{} {
	return map[string]interface{}{
		"endpoint": endpoint,
		"keys": map[string]string{
			"p256dh": "test-p256dh",
			"auth":   "test-auth",
		},
	}
}

func TestNotificationHandler_SubscriptionFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Not subscribed yet
	resp := doJSON(t, http.MethodGet, ts.APIURL("/notifications/status"), token, nil)
	var status struct {
		Subscribed bool   `json:"subscribed"`
		Endpoint   string `json:"endpoint"`
	}
	testutil.AssertJSONResponse(t, resp, &status)
	resp.Body.Close()
	assert.False(t, status.Subscribed)

	// Test notification without a subscription is rejected
	resp = doJSON(t, http.MethodPost, ts.APIURL("/notifications/test"), token, nil)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Enable notifications first")
	resp.Body.Close()

	// Subscribe
	resp = doJSON(t, http.MethodPost, ts.APIURL("/notifications/subscribe"), token,
		subscribeBody("https://push.example.com/flow"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Subscribing again from the same browser is an update, not a duplicate
	resp = doJSON(t, http.MethodPost, ts.APIURL("/notifications/subscribe"), token,
		subscribeBody("https://push.example.com/flow"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.APIURL("/notifications/status"), token, nil)
	testutil.AssertJSONResponse(t, resp, &status)
	resp.Body.Close()
	assert.True(t, status.Subscribed)
	assert.Equal(t, "https://push.example.com/flow", status.Endpoint)

	// Test notification now goes through the transport
	resp = doJSON(t, http.MethodPost, ts.APIURL("/notifications/test"), token,
		map[string]string{"title": "Olá", "body": "teste"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	sent := ts.Transport.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Olá")

	// Unsubscribe
	resp = doJSON(t, http.MethodPost, ts.APIURL("/notifications/unsubscribe"), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.APIURL("/notifications/status"), token, nil)
	testutil.AssertJSONResponse(t, resp, &status)
	resp.Body.Close()
	assert.False(t, status.Subscribed)
}

func TestNotificationHandler_SubscribeValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodPost, ts.APIURL("/notifications/subscribe"), token,
		map[string]interface{}{"endpoint": "https://push.example.com/no-keys"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationHandler_RequiresToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ts := testutil.NewTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.APIURL("/notifications/status"), "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
