package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/utils"
)

// ContentStore is the persistence a ContentService needs. Both the
// PostgreSQL and the in-memory repositories satisfy it.
type ContentStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	Create(ctx context.Context, item *T) (int64, error)
	Update(ctx context.Context, id int64, item *T) error
	Delete(ctx context.Context, id int64) error
}

// CollectionCache caches serialized collections by name.
type CollectionCache interface {
	Get(ctx context.Context, name string) ([]byte, bool)
	Set(ctx context.Context, name string, data []byte)
	Invalidate(ctx context.Context, name string)
}

// NopCache disables collection caching.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NopCache) Set(context.Context, string, []byte)        {}
func (NopCache) Invalidate(context.Context, string)         {}

type entity[T any] interface {
	*T
	models.Content
}

// ContentService provides list/create/update/delete for one content kind.
type ContentService[T any, P entity[T]] struct {
	kind  string
	repo  ContentStore[T]
	cache CollectionCache
}

// NewContentService constructs a ContentService. A nil cache disables caching.
func NewContentService[T any, P entity[T]](kind string, repo ContentStore[T], cache CollectionCache) *ContentService[T, P] {
	if cache == nil {
		cache = NopCache{}
	}
	return &ContentService[T, P]{kind: kind, repo: repo, cache: cache}
}

func (s *ContentService[T, P]) Kind() string { return s.kind }

// List returns the full collection, from cache when fresh.
func (s *ContentService[T, P]) List(ctx context.Context) ([]T, error) {
	if data, ok := s.cache.Get(ctx, s.kind); ok {
		var items []T
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		log.Warn().Str("kind", s.kind).Msg("Discarding undecodable cached collection")
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		s.cache.Set(ctx, s.kind, data)
	}
	return items, nil
}

func (s *ContentService[T, P]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Create stores a new item. Any id in the payload is ignored.
func (s *ContentService[T, P]) Create(ctx context.Context, item *T) (*T, error) {
	if strings.TrimSpace(P(item).GetSlug()) == "" {
		return nil, utils.ErrSlugRequired
	}
	P(item).SetID(0)
	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}
	P(item).SetID(id)
	s.cache.Invalidate(ctx, s.kind)

	log.Info().Str("kind", s.kind).Int64("id", id).Str("slug", P(item).GetSlug()).Msg("Content created")
	return item, nil
}

// Update overwrites the item with the given id.
func (s *ContentService[T, P]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	if strings.TrimSpace(P(item).GetSlug()) == "" {
		return nil, utils.ErrSlugRequired
	}
	P(item).SetID(id)
	if err := s.repo.Update(ctx, id, item); err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", s.kind, id, err)
	}
	s.cache.Invalidate(ctx, s.kind)

	log.Info().Str("kind", s.kind).Int64("id", id).Msg("Content updated")
	return item, nil
}

// Delete permanently removes the item with the given id.
func (s *ContentService[T, P]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", s.kind, id, err)
	}
	s.cache.Invalidate(ctx, s.kind)

	log.Info().Str("kind", s.kind).Int64("id", id).Msg("Content deleted")
	return nil
}
