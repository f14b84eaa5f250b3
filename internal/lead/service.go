package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Almas2004/led/internal/contentapi"
	"github.com/Almas2004/led/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// DefaultSource tags leads whose form did not name one.
const DefaultSource = "general"

// Store is the persistence the lifecycle needs.
type Store interface {
	ListLeads(ctx context.Context) ([]models.Lead, error)
	CreateLead(ctx context.Context, l models.Lead) (*models.Lead, error)
	UpdateLead(ctx context.Context, id int64, upd models.LeadUpdate) error
}

// Submission is what a visitor's form sends. Status and CreatedAt are
// accepted so forms can round-trip a Lead, but Capture ignores both.
type Submission struct {
	Name       string `validate:"required"`
	Phone      string `validate:"required"`
	City       string `validate:"required"`
	Message    string
	PageURL    string
	Source     string
	ProductID  string
	SolutionID string

	Status    models.LeadStatus
	CreatedAt time.Time
}

type Service struct {
	store    Store
	policy   Policy
	validate *validator.Validate
	now      func() time.Time
}

func NewService(store Store, policy Policy) *Service {
	return &Service{
		store:    store,
		policy:   policy,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *Service) Policy() Policy { return s.policy }

// Capture validates a submission and persists it as a new lead.
func (s *Service) Capture(ctx context.Context, sub Submission) (*models.Lead, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.City = strings.TrimSpace(sub.City)
	if err := s.validate.Struct(sub); err != nil {
		return nil, fmt.Errorf("invalid lead: %w", err)
	}

	source := strings.TrimSpace(sub.Source)
	if source == "" {
		source = DefaultSource
	}
	l := models.Lead{
		CreatedAt:  s.now().UTC(),
		Name:       sub.Name,
		Phone:      sub.Phone,
		City:       sub.City,
		Message:    sub.Message,
		PageURL:    sub.PageURL,
		Source:     source,
		ProductID:  optional(sub.ProductID),
		SolutionID: optional(sub.SolutionID),
		Status:     models.LeadStatusNew,
	}

	created, err := s.store.CreateLead(ctx, l)
	if err = contentapi.Lenient(err); err != nil {
		return nil, fmt.Errorf("failed to submit lead: %w", err)
	}
	log.Info().Str("source", l.Source).Str("city", l.City).Msg("Lead captured")
	if created == nil {
		// accepted without a readable body
		return &l, nil
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]models.Lead, error) {
	return s.store.ListLeads(ctx)
}

// Transition moves lead id to status to and returns the re-fetched list.
// Under Strict the current status is read from the backend first.
func (s *Service) Transition(ctx context.Context, id int64, to models.LeadStatus) ([]models.Lead, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if s.policy == Strict {
		leads, err := s.store.ListLeads(ctx)
		if err != nil {
			return nil, err
		}
		current, ok := find(leads, id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrLeadNotFound, id)
		}
		if err := s.policy.CanTransition(current.Status, to); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateLead(ctx, id, models.LeadUpdate{Status: &to}); err != nil {
		return nil, fmt.Errorf("failed to update lead %d: %w", id, err)
	}
	log.Info().Int64("lead_id", id).Str("status", string(to)).Msg("Lead status changed")
	return s.store.ListLeads(ctx)
}

// Annotate replaces the manager note of lead id and returns the re-fetched list.
func (s *Service) Annotate(ctx context.Context, id int64, note string) ([]models.Lead, error) {
	if err := s.store.UpdateLead(ctx, id, models.LeadUpdate{ManagerNote: &note}); err != nil {
		return nil, fmt.Errorf("failed to update lead %d: %w", id, err)
	}
	return s.store.ListLeads(ctx)
}

func find(leads []models.Lead, id int64) (models.Lead, bool) {
	for _, l := range leads {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
