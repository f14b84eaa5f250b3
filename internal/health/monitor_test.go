package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Almas2004/led/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	mu    sync.Mutex
	err   error
	calls atomic.Int32
}

func (f *fakeProber) ListLeads(context.Context) ([]models.Lead, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []models.Lead{}, nil
}

func (f *fakeProber) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeProber) recover() { f.fail(nil) }

func TestMonitor_StartsUnknown(t *testing.T) {
	m := NewMonitor(&fakeProber{}, "http://localhost:8080/api")
	assert.Equal(t, StatusUnknown, m.Status())
	assert.Empty(t, m.Banner())
}

func TestMonitor_ProbeClassifies(t *testing.T) {
	p := &fakeProber{}
	m := NewMonitor(p, "http://localhost:8080/api")

	var changes []Status
	m.Subscribe(func(s Status) { changes = append(changes, s) })

	assert.Equal(t, StatusOnline, m.Probe(context.Background()))
	assert.Empty(t, m.Banner())
	assert.NoError(t, m.LastError())

	p.fail(errors.New("network unavailable: connection refused"))
	assert.Equal(t, StatusOffline, m.Probe(context.Background()))
	assert.Contains(t, m.Banner(), "http://localhost:8080/api")
	assert.Error(t, m.LastError())

	m.Probe(context.Background())
	assert.Equal(t, []Status{StatusOnline, StatusOffline}, changes)
	assert.False(t, m.CheckedAt().IsZero())
}

func TestMonitor_RetryRunsProbeAndReload(t *testing.T) {
	p := &fakeProber{}
	p.fail(errors.New("down"))
	m := NewMonitor(p, "backend")
	m.Probe(context.Background())
	require.Equal(t, StatusOffline, m.Status())

	p.recover()
	reloaded := 0
	st, err := m.Retry(context.Background(), func(context.Context) error { reloaded++; return nil })
	require.NoError(t, err)
	assert.Equal(t, StatusOnline, st)
	assert.Equal(t, 1, reloaded)
	assert.Empty(t, m.Banner())
}

func TestMonitor_RetryReloadsEvenWhenOffline(t *testing.T) {
	p := &fakeProber{}
	p.fail(errors.New("down"))
	m := NewMonitor(p, "backend")

	reloadErr := errors.New("list failed")
	st, err := m.Retry(context.Background(), func(context.Context) error { return reloadErr })
	assert.Equal(t, StatusOffline, st)
	assert.ErrorIs(t, err, reloadErr)
}

func TestMonitor_Schedule(t *testing.T) {
	p := &fakeProber{}
	m := NewMonitor(p, "backend")

	require.Error(t, m.Schedule("not a spec", time.Second))
	require.NoError(t, m.Schedule("@every 1s", time.Second))
	assert.ErrorIs(t, m.Schedule("@every 1s", time.Second), ErrAlreadyScheduled)

	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	m.Stop()
	assert.Equal(t, StatusOnline, m.Status())

	require.NoError(t, m.Schedule("@every 1s", time.Second))
	m.Stop()
}
