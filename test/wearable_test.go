package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/2beens/swimstats/internal/swim/wearable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wearableTestUserID = 303

func (s *IntegrationTestSuite) TestWearableConnections() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	connectReq, err := json.Marshal(wearable.ProviderRequest{
		Provider: wearable.ProviderGarminConnect,
	})
	require.NoError(t, err)

	req := authedRequest(ctx, t, token, "POST", "/wearable/connect", wearableTestUserID, connectReq)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var conn wearable.Connection
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conn))
	assert.Equal(t, wearable.StatusConnected, conn.Status)
	assert.Equal(t, wearableTestUserID, conn.UserID)

	// list connections
	req = authedRequest(ctx, t, token, "GET", "/wearable/connections", wearableTestUserID, nil)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var connections []wearable.Connection
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&connections))
	require.Len(t, connections, 1)
	assert.Equal(t, wearable.ProviderGarminConnect, connections[0].Provider)

	// disconnect
	req = authedRequest(ctx, t, token, "DELETE", "/wearable/garmin_connect", wearableTestUserID, nil)
	discResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	discResp.Body.Close()
	require.Equal(t, http.StatusOK, discResp.StatusCode)

	// unknown provider is rejected
	badReq, err := json.Marshal(wearable.ProviderRequest{Provider: "abacus"})
	require.NoError(t, err)
	req = authedRequest(ctx, t, token, "POST", "/wearable/connect", wearableTestUserID, badReq)
	badResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	badResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

// the webhook endpoint answers with a fake positive response no matter
// what, so that probing it reveals nothing
func (s *IntegrationTestSuite) TestWearableWebhookDecoy() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, "POST",
		serverEndpoint+"/wearable/webhook",
		bytes.NewBufferString(`{"provider": "strava"}`),
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-SWIMSTATS-TOKEN", "not-the-secret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "synced", string(respBytes))
}
