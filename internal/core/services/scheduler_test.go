package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqmweb/catalog/internal/core/domain"
)

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := NewScheduler("every now and then", svc)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewScheduler_Task(t *testing.T) {
	svc, _ := newTestService(t)

	s, err := NewScheduler("*/15 * * * *", svc)
	require.NoError(t, err)

	task := s.Task()
	assert.Equal(t, domain.TaskIDCatalogReload, task.ID)
	assert.Equal(t, "*/15 * * * *", task.Schedule)
	assert.True(t, task.LastRun.IsZero())
}

func TestScheduler_RunNow(t *testing.T) {
	svc, src := newTestService(t, record("1", "Taza", []string{"tazas"}))
	s, err := NewScheduler("@hourly", svc)
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }

	result := s.RunNow(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ItemsProcessed)
	assert.Equal(t, 1, src.Reads())

	task := s.Task()
	assert.Equal(t, testNow, task.LastSuccess)
	assert.Equal(t, testNow.Add(time.Hour).Truncate(time.Hour), task.NextRun)
	assert.Empty(t, task.LastError)
}

func TestScheduler_RunNowFailure(t *testing.T) {
	svc, src := newTestService(t)
	src.SetError(domain.ErrSourceUnavailable)
	s, err := NewScheduler("@hourly", svc)
	require.NoError(t, err)

	result := s.RunNow(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "catalog source unavailable")
	assert.Equal(t, result.Error, s.Task().LastError)
	assert.True(t, s.Task().LastSuccess.IsZero())
}

func TestScheduler_StartStop(t *testing.T) {
	svc, src := newTestService(t, record("1", "Taza", []string{"tazas"}))
	s, err := NewScheduler("@every 1s", svc)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool { return src.Reads() >= 1 }, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	assert.NoError(t, s.Stop(), "stopping twice is a no-op")
}

func TestScheduler_ContextCancel(t *testing.T) {
	svc, _ := newTestService(t)
	s, err := NewScheduler("@daily", svc)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
