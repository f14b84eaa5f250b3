// Package memory provides in-process repositories with the same contract as
// the PostgreSQL ones: unique slugs per entity, ErrNotFound on missing ids,
// leads listed newest first.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/utils"
)

type entity[T any] interface {
	*T
	models.Content
}

// ContentRepository stores one content kind in memory.
type ContentRepository[T any, P entity[T]] struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]T
}

func NewContentRepository[T any, P entity[T]]() *ContentRepository[T, P] {
	return &ContentRepository[T, P]{items: map[int64]T{}}
}

func NewProductRepository() *ContentRepository[models.Product, *models.Product] {
	return NewContentRepository[models.Product]()
}

func NewSolutionRepository() *ContentRepository[models.Solution, *models.Solution] {
	return NewContentRepository[models.Solution]()
}

func NewCaseRepository() *ContentRepository[models.Case, *models.Case] {
	return NewContentRepository[models.Case]()
}

func (r *ContentRepository[T, P]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ContentRepository[T, P]) GetBySlug(_ context.Context, slug string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if P(&item).GetSlug() == slug {
			return &item, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *ContentRepository[T, P]) Create(_ context.Context, item *T) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugTaken(P(item).GetSlug(), 0) {
		return 0, utils.ErrSlugTaken
	}
	r.nextID++
	stored := *item
	P(&stored).SetID(r.nextID)
	r.items[r.nextID] = stored
	return r.nextID, nil
}

func (r *ContentRepository[T, P]) Update(_ context.Context, id int64, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return utils.ErrNotFound
	}
	if r.slugTaken(P(item).GetSlug(), id) {
		return utils.ErrSlugTaken
	}
	stored := *item
	P(&stored).SetID(id)
	r.items[id] = stored
	return nil
}

func (r *ContentRepository[T, P]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ContentRepository[T, P]) slugTaken(slug string, except int64) bool {
	for id, item := range r.items {
		if id != except && P(&item).GetSlug() == slug {
			return true
		}
	}
	return false
}

// LeadRepository stores leads in memory.
type LeadRepository struct {
	mu     sync.RWMutex
	nextID int64
	leads  []models.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{}
}

func (r *LeadRepository) List(_ context.Context) ([]models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Lead, 0, len(r.leads))
	for i := len(r.leads) - 1; i >= 0; i-- {
		out = append(out, r.leads[i])
	}
	return out, nil
}

func (r *LeadRepository) GetByID(_ context.Context, id int64) (*models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.leads {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *LeadRepository) Create(_ context.Context, l *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	l.ID = r.nextID
	r.leads = append(r.leads, *l)
	return nil
}

func (r *LeadRepository) Update(_ context.Context, id int64, upd models.LeadUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID != id {
			continue
		}
		if upd.Status != nil {
			r.leads[i].Status = *upd.Status
		}
		if upd.ManagerNote != nil {
			note := *upd.ManagerNote
			r.leads[i].ManagerNote = &note
		}
		return nil
	}
	return utils.ErrNotFound
}
