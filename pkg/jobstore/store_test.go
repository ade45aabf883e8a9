package jobstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/models"
)

func testStore(ttl time.Duration) *Store {
	return New(&config.StoreConfig{TTL: ttl, SweepInterval: time.Minute})
}

func TestPutAndGet(t *testing.T) {
	s := testStore(time.Hour)

	s.Put(models.JobResult{
		JobID:  "job-1",
		Status: models.JobStatusCompleted,
		Completed: &models.CompletedResult{
			VideoURL: "/media/videos/scene/480p15/MainScene.mp4",
		},
	})

	result, ok := s.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, models.JobStatusCompleted, result.Status)
	assert.False(t, result.Timestamp.IsZero(), "timestamp filled on Put")

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestFirstTerminalResultWins(t *testing.T) {
	s := testStore(time.Hour)

	s.Put(models.JobResult{JobID: "job-1", Status: models.JobStatusCompleted,
		Completed: &models.CompletedResult{VideoURL: "/media/a.mp4"}})
	s.Put(models.JobResult{JobID: "job-1", Status: models.JobStatusFailed,
		Failed: &models.FailedResult{Error: "late failure"}})

	result, ok := s.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, models.JobStatusCompleted, result.Status, "status must never regress")
	assert.Equal(t, 1, s.Len())
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	s := testStore(time.Hour)
	now := time.Now()

	s.Put(models.JobResult{JobID: "old", Status: models.JobStatusFailed,
		Failed: &models.FailedResult{Error: "x"}, Timestamp: now.Add(-2 * time.Hour)})
	s.Put(models.JobResult{JobID: "fresh", Status: models.JobStatusFailed,
		Failed: &models.FailedResult{Error: "y"}, Timestamp: now.Add(-time.Minute)})

	removed := s.Sweep(now)

	assert.Equal(t, 1, removed)
	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("fresh")
	assert.True(t, ok)
}

func TestSweepKeepsEntriesWithinTTL(t *testing.T) {
	s := testStore(time.Hour)
	s.Put(models.JobResult{JobID: "job-1", Status: models.JobStatusCompleted,
		Completed: &models.CompletedResult{}})

	assert.Zero(t, s.Sweep(time.Now()))
	assert.Equal(t, 1, s.Len())
}

func TestStopIsIdempotent(t *testing.T) {
	s := testStore(time.Hour)
	s.Stop()
	s.Stop()
}
