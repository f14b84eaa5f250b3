package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Almas2004/led/internal/metrics"
	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/utils"
)

const defaultLeadSource = "general"

// notifyTimeout bounds each asynchronous notification.
const notifyTimeout = 10 * time.Second

// LeadStore is the persistence a LeadService needs.
type LeadStore interface {
	List(ctx context.Context) ([]models.Lead, error)
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	Create(ctx context.Context, l *models.Lead) error
	Update(ctx context.Context, id int64, upd models.LeadUpdate) error
}

// LeadNotifier is told about lead changes after they are persisted.
type LeadNotifier interface {
	Name() string
	LeadCreated(ctx context.Context, l models.Lead) error
	LeadUpdated(ctx context.Context, l models.Lead) error
}

// LeadService captures leads and applies staff updates.
type LeadService struct {
	repo      LeadStore
	notifiers []LeadNotifier
	now       func() time.Time
	async     bool
}

// NewLeadService constructs a LeadService. Notifiers run in the background.
func NewLeadService(repo LeadStore, notifiers ...LeadNotifier) *LeadService {
	return &LeadService{repo: repo, notifiers: notifiers, now: time.Now, async: true}
}

func (s *LeadService) List(ctx context.Context) ([]models.Lead, error) {
	return s.repo.List(ctx)
}

// Create persists a new lead. Status and creation time are always set here,
// whatever the payload carried.
func (s *LeadService) Create(ctx context.Context, l *models.Lead) (*models.Lead, error) {
	l.ID = 0
	l.Status = models.LeadStatusNew
	l.CreatedAt = s.now().UTC()
	l.ManagerNote = nil
	if strings.TrimSpace(l.Source) == "" {
		l.Source = defaultLeadSource
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	metrics.LeadsCapturedTotal.WithLabelValues(l.Source).Inc()
	log.Info().Int64("lead_id", l.ID).Str("source", l.Source).Msg("Lead created")

	s.notify(*l, LeadNotifier.LeadCreated)
	return l, nil
}

// Update applies a partial update and returns the stored lead.
func (s *LeadService) Update(ctx context.Context, id int64, upd models.LeadUpdate) (*models.Lead, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, utils.ErrInvalidStatus
	}
	if err := s.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("lead_id", id).Str("status", string(l.Status)).Msg("Lead updated")

	s.notify(*l, LeadNotifier.LeadUpdated)
	return l, nil
}

func (s *LeadService) notify(l models.Lead, fn func(LeadNotifier, context.Context, models.Lead) error) {
	for _, n := range s.notifiers {
		run := func(n LeadNotifier) {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := fn(n, ctx, l); err != nil {
				metrics.NotificationErrorsTotal.WithLabelValues(n.Name()).Inc()
				log.Error().Err(err).Str("notifier", n.Name()).Int64("lead_id", l.ID).Msg("Lead notification failed")
			}
		}
		if s.async {
			go run(n)
		} else {
			run(n)
		}
	}
}
