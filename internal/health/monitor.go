// Package health tracks whether the content backend is reachable. It is a
// liveness indicator only; nothing here blocks an operation from being tried.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Almas2004/led/internal/metrics"
	"github.com/Almas2004/led/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Status is the last known availability of the backend.
type Status int

const (
	StatusUnknown Status = iota
	StatusOnline
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	}
	return "unknown"
}

// DefaultProbeTimeout bounds a scheduled probe.
const DefaultProbeTimeout = 5 * time.Second

var ErrAlreadyScheduled = errors.New("health probe already scheduled")

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Prober is the lightweight read used to classify the backend.
type Prober interface {
	ListLeads(ctx context.Context) ([]models.Lead, error)
}

type Monitor struct {
	prober Prober
	target string

	mu        sync.RWMutex
	status    Status
	lastErr   error
	checkedAt time.Time
	subs      []func(Status)

	sched *cron.Cron
}

// NewMonitor creates a monitor in StatusUnknown. target names the backend in
// the offline banner.
func NewMonitor(prober Prober, target string) *Monitor {
	return &Monitor{prober: prober, target: target}
}

// Probe lists leads and records the outcome. Any error means offline.
func (m *Monitor) Probe(ctx context.Context) Status {
	_, err := m.prober.ListLeads(ctx)

	next := StatusOnline
	if err != nil {
		next = StatusOffline
	}

	m.mu.Lock()
	prev := m.status
	m.status, m.lastErr, m.checkedAt = next, err, time.Now()
	subs := make([]func(Status), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	metrics.BackendProbesTotal.WithLabelValues(next.String()).Inc()
	if next == StatusOnline {
		metrics.BackendOnline.Set(1)
	} else {
		metrics.BackendOnline.Set(0)
	}

	if prev != next {
		ev := log.Info()
		if next == StatusOffline {
			ev = log.Warn().Err(err)
		}
		ev.Str("from", prev.String()).Str("to", next.String()).Msg("Backend status changed")
		for _, fn := range subs {
			fn(next)
		}
	}
	return next
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// LastError returns the error of the most recent failed probe, nil when online.
func (m *Monitor) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *Monitor) CheckedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkedAt
}

// Banner returns the message shown while offline, and "" otherwise.
func (m *Monitor) Banner() string {
	if m.Status() != StatusOffline {
		return ""
	}
	return fmt.Sprintf("Бэкенд недоступен. Убедитесь, что сервер запущен: %s", m.target)
}

// Retry re-runs the probe and then reload. The reload runs even when the
// probe fails, since the banner never gates an operation.
func (m *Monitor) Retry(ctx context.Context, reload func(ctx context.Context) error) (Status, error) {
	st := m.Probe(ctx)
	if reload == nil {
		return st, nil
	}
	return st, reload(ctx)
}

// Subscribe registers fn to be called on every status change.
func (m *Monitor) Subscribe(fn func(Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Schedule probes on a cron spec ("@every 30s", "*/10 * * * * *") until Stop.
func (m *Monitor) Schedule(spec string, timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sched != nil {
		return ErrAlreadyScheduled
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	c := cron.New(cron.WithParser(cronParser))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		m.Probe(ctx)
	}); err != nil {
		return fmt.Errorf("invalid probe schedule %q: %w", spec, err)
	}
	c.Start()
	m.sched = c
	log.Info().Str("schedule", spec).Msg("Backend probe scheduled")
	return nil
}

// Stop halts scheduled probing and waits for a running probe to finish.
func (m *Monitor) Stop() {
	m.mu.Lock()
	c := m.sched
	m.sched = nil
	m.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
