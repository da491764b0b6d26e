package service

import (
	"context"
	"testing"
	"time"

	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/repository"
	"github.com/mkaminska/studycal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionServiceSetup wires a session service over an in-memory database
// with a fixed clock and one topic.
func sessionServiceSetup(t *testing.T, nowMS int64) (SessionService, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	topicRepo := repository.NewSQLiteTopicRepo(database)
	topic := testutil.NewTestTopic("Physics")
	require.NoError(t, topicRepo.Create(ctx, topic))

	svc := NewSessionService(
		repository.NewSQLiteSessionRepo(database),
		topicRepo,
		testutil.NewTestUoW(database),
		calendar.FixedClock(nowMS),
	)
	return svc, topic.ID
}

func TestSessionService_StartOpensLiveSession(t *testing.T) {
	now := testutil.MSAt(2024, time.January, 17, 9, 0)
	svc, topicID := sessionServiceSetup(t, now)
	ctx := context.Background()

	sess, err := svc.Start(ctx, topicID)
	require.NoError(t, err)
	assert.Equal(t, now, sess.StartMS)
	assert.Nil(t, sess.EndMS)
	assert.Equal(t, domain.SessionActive, sess.Status)
	assert.Equal(t, "Physics", sess.TopicTitle)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, active.ID)
}

func TestSessionService_StartRejectsSecondLiveSession(t *testing.T) {
	svc, topicID := sessionServiceSetup(t, testutil.MSAt(2024, time.January, 17, 9, 0))
	ctx := context.Background()

	_, err := svc.Start(ctx, topicID)
	require.NoError(t, err)

	_, err = svc.Start(ctx, topicID)
	assert.ErrorIs(t, err, ErrSessionRunning)
}

func TestSessionService_StartUnknownTopic(t *testing.T) {
	svc, _ := sessionServiceSetup(t, testutil.MSAt(2024, time.January, 17, 9, 0))

	_, err := svc.Start(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionService_StopClosesAtClock(t *testing.T) {
	now := testutil.MSAt(2024, time.January, 17, 9, 0)
	svc, topicID := sessionServiceSetup(t, now)
	ctx := context.Background()

	started, err := svc.Start(ctx, topicID)
	require.NoError(t, err)

	stopped, err := svc.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, started.ID, stopped.ID)
	require.NotNil(t, stopped.EndMS)
	assert.Equal(t, now, *stopped.EndMS)
	assert.Equal(t, domain.SessionStopped, stopped.Status)

	_, err = svc.Active(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionService_StopWithoutActive(t *testing.T) {
	svc, _ := sessionServiceSetup(t, testutil.MSAt(2024, time.January, 17, 9, 0))

	_, err := svc.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSessionService_LogRecordsFinishedSession(t *testing.T) {
	svc, topicID := sessionServiceSetup(t, testutil.MSAt(2024, time.January, 17, 12, 0))
	ctx := context.Background()

	start := testutil.MSAt(2024, time.January, 17, 9, 0)
	end := testutil.MSAt(2024, time.January, 17, 10, 30)
	sess, err := svc.Log(ctx, topicID, start, end)
	require.NoError(t, err)
	assert.False(t, sess.Live())

	listed, err := svc.ListInRange(ctx, start-1000, end+1000)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, sess.ID, listed[0].ID)
}

func TestSessionService_LogRejectsInvertedRange(t *testing.T) {
	svc, topicID := sessionServiceSetup(t, testutil.MSAt(2024, time.January, 17, 12, 0))

	_, err := svc.Log(context.Background(), topicID,
		testutil.MSAt(2024, time.January, 17, 10, 0), testutil.MSAt(2024, time.January, 17, 9, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSessionService_LogAllowsZeroLength(t *testing.T) {
	svc, topicID := sessionServiceSetup(t, testutil.MSAt(2024, time.January, 17, 12, 0))

	at := testutil.MSAt(2024, time.January, 17, 9, 0)
	sess, err := svc.Log(context.Background(), topicID, at, at)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sess.DurationMS(at))
}

func TestTopicService_TotalStudiedIncludesLive(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	now := testutil.MSAt(2024, time.January, 17, 12, 0)

	topicRepo := repository.NewSQLiteTopicRepo(database)
	sessRepo := repository.NewSQLiteSessionRepo(database)
	topic := testutil.NewTestTopic("Chemistry")
	require.NoError(t, topicRepo.Create(ctx, topic))

	// One finished hour plus a live session running for 30 minutes.
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestSession(topic.ID,
		testutil.MSAt(2024, time.January, 16, 9, 0), testutil.MSAt(2024, time.January, 16, 10, 0))))
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestSession(topic.ID,
		testutil.MSAt(2024, time.January, 17, 11, 30), 0, testutil.Live())))

	svc := NewTopicService(topicRepo, sessRepo, calendar.FixedClock(now))

	total, err := svc.TotalStudiedMS(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 90*calendar.MSPerMinute, total)
}

func TestPrefsService_ClampsOnUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewPrefsService(repository.NewSQLitePrefsRepo(database))
	ctx := context.Background()

	stored, err := svc.Update(ctx, domain.ViewPrefs{
		DisplayMode:  "fortnight",
		WeekStartsOn: 9,
		CellHeightPx: -4,
		ZoomLevel:    99,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeWeek, stored.DisplayMode)
	assert.Equal(t, 0, stored.WeekStartsOn)
	assert.Equal(t, domain.DefaultCellHeightPx, stored.CellHeightPx)
	assert.Equal(t, domain.MaxZoomLevel, stored.ZoomLevel)

	fetched, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, fetched)
}
