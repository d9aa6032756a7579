package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/swim/goals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goalsTestUserID = 202

func (s *IntegrationTestSuite) deleteAllGoals(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM goal")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) TestGoalsLifecycle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllGoals(ctx)
	token := doLogin(ctx, t)

	now := time.Now()
	createReq, err := json.Marshal(goals.CreateGoalRequest{
		Title:       "swim 2k this month",
		Type:        goals.TypeDistance,
		TargetValue: 2000,
		Unit:        "m",
		StartDate:   now.AddDate(0, 0, -7),
		EndDate:     now.AddDate(0, 0, 21),
	})
	require.NoError(t, err)

	req := authedRequest(ctx, t, token, "POST", "/goals", goalsTestUserID, createReq)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created goals.Goal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotZero(t, created.ID)
	assert.Equal(t, goals.StatusActive, created.Status)

	// log a swim covering half the target, then recompute progress
	inputJson, err := json.Marshal(swim.Input{
		Date:     now,
		Distance: 1000,
		Duration: 25,
		Style:    swim.StyleFreestyle,
	})
	require.NoError(t, err)
	addReq := authedRequest(ctx, t, token, "POST", "/swim", goalsTestUserID, inputJson)
	addResp, err := http.DefaultClient.Do(addReq)
	require.NoError(t, err)
	addResp.Body.Close()
	require.Equal(t, http.StatusCreated, addResp.StatusCode)

	req = authedRequest(ctx, t, token, "GET", fmt.Sprintf("/goals/%d", created.ID), goalsTestUserID, nil)
	getResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var fetched goals.Goal
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&fetched))
	assert.Equal(t, float64(1000), fetched.CurrentValue)
	assert.InDelta(t, 50, fetched.Progress, 0.01)
	assert.Equal(t, goals.StatusActive, fetched.Status)

	// stats
	req = authedRequest(ctx, t, token, "GET", "/goals/stats", goalsTestUserID, nil)
	statsResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer statsResp.Body.Close()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	var stats goals.Stats
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalGoals)
	assert.Equal(t, 1, stats.ActiveGoals)

	// delete
	req = authedRequest(ctx, t, token, "DELETE", fmt.Sprintf("/goals/%d", created.ID), goalsTestUserID, nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	var deleted goals.DeleteGoalResponse
	require.NoError(t, json.NewDecoder(delResp.Body).Decode(&deleted))
	assert.Equal(t, created.ID, deleted.DeletedID)
}

func (s *IntegrationTestSuite) TestGoalValidation() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	createReq, err := json.Marshal(goals.CreateGoalRequest{
		Title:       "mystery goal",
		Type:        "levitation",
		TargetValue: 10,
	})
	require.NoError(t, err)

	req := authedRequest(ctx, t, token, "POST", "/goals", goalsTestUserID, createReq)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
