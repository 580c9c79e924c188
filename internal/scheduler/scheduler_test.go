package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwatch/scanner/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())

	job := &fakeJob{name: "refresh", schedule: "0 45 9 * * 1-5"}
	require.NoError(t, s.AddJob(job))

	assert.Error(t, s.AddJob(job), "duplicate name rejected")
}

func TestAddJob_BadSchedule(t *testing.T) {
	s := New(logger.Nop())

	job := &fakeJob{name: "broken", schedule: "not a cron expression"}
	assert.Error(t, s.AddJob(job))
}

func TestRunJob_Unknown(t *testing.T) {
	s := New(logger.Nop())
	assert.Error(t, s.RunJob("nope"))
}

func TestRunJob_RecordsHistory(t *testing.T) {
	s := New(logger.Nop())
	s.retryDelay = time.Millisecond

	job := &fakeJob{name: "refresh", schedule: "0 45 9 * * 1-5"}
	require.NoError(t, s.AddJob(job))

	// Run synchronously to avoid sleeping in the test.
	s.runJob(job)

	history := s.History("refresh")
	require.NotNil(t, history)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, "refresh", history.Results[0].JobName)
	assert.Equal(t, 1, job.runs)
}

func TestRunJob_RetriesFailures(t *testing.T) {
	s := New(logger.Nop())
	s.retryDelay = time.Millisecond

	job := &fakeJob{name: "flaky", schedule: "@daily", err: fmt.Errorf("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	assert.Equal(t, s.maxRetries+1, job.runs, "initial attempt plus retries")

	history := s.History("flaky")
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "boom", history.Results[0].Error)
}

func TestJobHistory_Bounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "j", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, 100)
}

func TestJobHistory_LatestResults(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 5; i++ {
		h.AddResult(JobResult{JobName: fmt.Sprintf("run-%d", i)})
	}

	latest := h.LatestResults(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "run-3", latest[0].JobName)
	assert.Equal(t, "run-4", latest[1].JobName)

	assert.Len(t, h.LatestResults(10), 5)
	assert.Empty(t, (&JobHistory{}).LatestResults(3))
}

func TestJobHistory_SuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.SuccessRate())

	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	assert.Equal(t, 0.75, h.SuccessRate())
}
