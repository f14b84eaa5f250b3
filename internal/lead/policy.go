// Package lead captures visitor inquiries and moves them through the staff
// workflow new, in_progress, done.
package lead

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Almas2004/led/internal/models"
)

var (
	ErrUnknownStatus     = errors.New("unknown lead status")
	ErrInvalidTransition = errors.New("lead status transition not allowed")
	ErrUnknownPolicy     = errors.New("unknown transition policy")
	ErrLeadNotFound      = errors.New("lead not found")
)

// Policy decides which status transitions staff may perform.
type Policy int

const (
	// Permissive allows moving between any two known statuses, backwards included.
	Permissive Policy = iota
	// Strict only allows single forward steps.
	Strict
)

var strictTransitions = map[models.LeadStatus]models.LeadStatus{
	models.LeadStatusNew:        models.LeadStatusInProgress,
	models.LeadStatusInProgress: models.LeadStatusDone,
}

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// ParsePolicy accepts "permissive" or "strict"; empty means permissive.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	}
	return Permissive, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// CanTransition reports whether a lead in status from may be moved to to.
func (p Policy) CanTransition(from, to models.LeadStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if p == Permissive {
		return nil
	}
	if next, ok := strictTransitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// StatusOption is a selectable status with its display label.
type StatusOption struct {
	Status models.LeadStatus
	Label  string
}

var statusOptions = []StatusOption{
	{Status: models.LeadStatusNew, Label: "Новая"},
	{Status: models.LeadStatusInProgress, Label: "В работе"},
	{Status: models.LeadStatusDone, Label: "Завершена"},
}

// Statuses lists every status in workflow order.
func Statuses() []StatusOption {
	return append([]StatusOption(nil), statusOptions...)
}

// Label returns the display label of s, or s itself when unknown.
func Label(s models.LeadStatus) string {
	for _, o := range statusOptions {
		if o.Status == s {
			return o.Label
		}
	}
	return string(s)
}

// ParseStatus validates a raw status value.
func ParseStatus(s string) (models.LeadStatus, error) {
	st := models.LeadStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// CountByStatus tallies leads per status. Every known status is present.
func CountByStatus(leads []models.Lead) map[models.LeadStatus]int {
	counts := make(map[models.LeadStatus]int, len(statusOptions))
	for _, o := range statusOptions {
		counts[o.Status] = 0
	}
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts
}
