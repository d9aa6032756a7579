package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/swim/activities"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swimTestUserID = 101

func (s *IntegrationTestSuite) deleteAllActivities(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM swim_activity")
	require.NoError(s.T(), err)
	_, err = s.dbPool.Exec(ctx, "DELETE FROM achievement")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) addActivity(
	ctx context.Context,
	token string,
	input swim.Input,
) activities.AddActivityResponse {
	t := s.T()

	inputJson, err := json.Marshal(input)
	require.NoError(t, err)

	req := authedRequest(ctx, t, token, "POST", "/swim", swimTestUserID, inputJson)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var addResp activities.AddActivityResponse
	require.NoError(t, json.Unmarshal(respBytes, &addResp))
	return addResp
}

func (s *IntegrationTestSuite) TestSwimActivities() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllActivities(ctx)
	token := doLogin(ctx, t)

	now := time.Now()
	added := s.addActivity(ctx, token, swim.Input{
		Date:     now.AddDate(0, 0, -1),
		Distance: 1500,
		Duration: 30,
		Style:    swim.StyleFreestyle,
		Notes:    gofakeit.Sentence(5),
	})
	require.NotZero(t, added.ID)
	assert.Equal(t, swimTestUserID, added.UserID)
	assert.InDelta(t, 2, added.AveragePace, 0.01)
	// the very first session unlocks at least the first-training achievement
	assert.NotEmpty(t, added.NewAchievements)

	second := s.addActivity(ctx, token, swim.Input{
		Date:     now,
		Distance: 2000,
		Duration: 35,
		Style:    swim.StyleBackstroke,
		Notes:    gofakeit.Sentence(5),
	})
	require.NotNil(t, second.Analysis)
	assert.True(t, second.Analysis.IsNewRecord)

	// list first page
	req := authedRequest(ctx, t, token, "GET", "/swim/list/page/1/size/10", swimTestUserID, nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listResp activities.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listResp))
	assert.Equal(t, 2, listResp.Total)
	require.Len(t, listResp.Activities, 2)
	// newest first
	assert.Equal(t, second.ID, listResp.Activities[0].ID)

	// aggregated stats
	req = authedRequest(ctx, t, token, "GET", "/swim/stats", swimTestUserID, nil)
	statsResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer statsResp.Body.Close()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	var stats swim.AggregatedStats
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.Equal(t, float64(3500), stats.TotalDistance)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 2, stats.StreakDays)

	// delete the second activity
	req = authedRequest(ctx, t, token, "DELETE", fmt.Sprintf("/swim/%d", second.ID), swimTestUserID, nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	var deleteResp activities.DeleteActivityResponse
	require.NoError(t, json.NewDecoder(delResp.Body).Decode(&deleteResp))
	assert.Equal(t, second.ID, deleteResp.DeletedID)
}

func (s *IntegrationTestSuite) TestSwimActivityValidation() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	invalidInput, err := json.Marshal(swim.Input{
		Date:     time.Now(),
		Distance: -100,
		Duration: 30,
		Style:    swim.StyleFreestyle,
	})
	require.NoError(t, err)

	req := authedRequest(ctx, t, token, "POST", "/swim", swimTestUserID, invalidInput)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
