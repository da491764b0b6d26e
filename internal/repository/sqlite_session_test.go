package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionTestSetup creates the topic scaffolding needed by session tests.
func sessionTestSetup(t *testing.T) (*SQLiteSessionRepo, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	topicRepo := NewSQLiteTopicRepo(db)
	sessRepo := NewSQLiteSessionRepo(db)

	topic := testutil.NewTestTopic("Calculus", testutil.WithColor(domain.ColorGreen))
	require.NoError(t, topicRepo.Create(ctx, topic))

	return sessRepo, topic.ID
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	start := testutil.MSAt(2024, time.January, 17, 9, 0)
	end := testutil.MSAt(2024, time.January, 17, 10, 30)
	sess := testutil.NewTestSession(topicID, start, end)
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	assert.Equal(t, start, fetched.StartMS)
	require.NotNil(t, fetched.EndMS)
	assert.Equal(t, end, *fetched.EndMS)
	assert.Equal(t, domain.SessionStopped, fetched.Status)
	assert.Equal(t, "Calculus", fetched.TopicTitle, "topic title joins in on load")
	assert.Equal(t, domain.ColorGreen, fetched.Color)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := sessionTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_LiveSessionRoundTripsNullEnd(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(topicID, testutil.MSAt(2024, time.January, 17, 9, 0), 0, testutil.Live())
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.EndMS)
	assert.Equal(t, domain.SessionActive, fetched.Status)
	assert.True(t, fetched.Live())
}

func TestSessionRepo_ListInRange(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	inRange := testutil.NewTestSession(topicID,
		testutil.MSAt(2024, time.January, 16, 9, 0), testutil.MSAt(2024, time.January, 16, 10, 0))
	straddlesStart := testutil.NewTestSession(topicID,
		testutil.MSAt(2024, time.January, 13, 23, 0), testutil.MSAt(2024, time.January, 14, 1, 0))
	before := testutil.NewTestSession(topicID,
		testutil.MSAt(2024, time.January, 10, 9, 0), testutil.MSAt(2024, time.January, 10, 10, 0))
	after := testutil.NewTestSession(topicID,
		testutil.MSAt(2024, time.January, 22, 9, 0), testutil.MSAt(2024, time.January, 22, 10, 0))
	for _, s := range []*domain.StudySession{inRange, straddlesStart, before, after} {
		require.NoError(t, repo.Create(ctx, s))
	}

	weekStart := testutil.MSAt(2024, time.January, 14, 0, 0)
	weekEnd := testutil.MSAt(2024, time.January, 21, 0, 0) - 1

	sessions, err := repo.ListInRange(ctx, weekStart, weekEnd)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, straddlesStart.ID, sessions[0].ID, "ordered by start")
	assert.Equal(t, inRange.ID, sessions[1].ID)
}

func TestSessionRepo_ListInRange_IncludesLiveFromThePast(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	live := testutil.NewTestSession(topicID, testutil.MSAt(2024, time.January, 10, 9, 0), 0, testutil.Live())
	require.NoError(t, repo.Create(ctx, live))

	sessions, err := repo.ListInRange(ctx,
		testutil.MSAt(2024, time.January, 14, 0, 0), testutil.MSAt(2024, time.January, 21, 0, 0))
	require.NoError(t, err)
	require.Len(t, sessions, 1, "a still-running session overlaps every later range")
	assert.Equal(t, live.ID, sessions[0].ID)
}

func TestSessionRepo_GetActive(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	stopped := testutil.NewTestSession(topicID, 1000, 2000)
	require.NoError(t, repo.Create(ctx, stopped))
	live := testutil.NewTestSession(topicID, 3000, 0, testutil.Live())
	require.NoError(t, repo.Create(ctx, live))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, live.ID, active.ID)
}

func TestSessionRepo_UpdateStopsSession(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(topicID, testutil.MSAt(2024, time.January, 17, 9, 0), 0, testutil.Live())
	require.NoError(t, repo.Create(ctx, sess))

	end := testutil.MSAt(2024, time.January, 17, 11, 0)
	sess.EndMS = &end
	sess.Status = domain.SessionStopped
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.EndMS)
	assert.Equal(t, end, *fetched.EndMS)
	assert.False(t, fetched.Live())
}

func TestSessionRepo_Delete(t *testing.T) {
	repo, topicID := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(topicID, 1000, 2000)
	require.NoError(t, repo.Create(ctx, sess))

	require.NoError(t, repo.Delete(ctx, sess.ID))
	_, err := repo.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, sess.ID), ErrNotFound)
}

func TestSessionRepo_ListByTopic(t *testing.T) {
	db := testutil.NewTestDB(t)
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	math := testutil.NewTestTopic("Math")
	history := testutil.NewTestTopic("History")
	require.NoError(t, topicRepo.Create(ctx, math))
	require.NoError(t, topicRepo.Create(ctx, history))

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(math.ID, 1000, 2000)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(history.ID, 1500, 2500)))

	sessions, err := repo.ListByTopic(ctx, math.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, math.ID, sessions[0].TopicID)
}
