package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/repository/memory"
	"github.com/Almas2004/led/internal/utils"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, name string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[name]
	if ok {
		c.hits++
	}
	return d, ok
}

func (c *mapCache) Set(_ context.Context, name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = data
}

func (c *mapCache) Invalidate(_ context.Context, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, name)
}

func newProductService(cache CollectionCache) *ContentService[models.Product, *models.Product] {
	return NewContentService[models.Product]("products", memory.NewProductRepository(), cache)
}

func TestContentService_CreateAssignsIDAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newProductService(nil)

	p, err := svc.Create(ctx, &models.Product{ID: 500, Slug: "indoor-p2-5"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	_, err = svc.Create(ctx, &models.Product{Slug: "indoor-p2-5"})
	assert.ErrorIs(t, err, utils.ErrSlugTaken)

	_, err = svc.Create(ctx, &models.Product{Slug: "  "})
	assert.ErrorIs(t, err, utils.ErrSlugRequired)
}

func TestContentService_CacheInvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	svc := newProductService(cache)

	_, err := svc.Create(ctx, &models.Product{Slug: "a"})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, cache.hits)

	_, err = svc.Create(ctx, &models.Product{Slug: "b"})
	require.NoError(t, err)
	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, svc.Delete(ctx, 1))
	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Slug)
}

func TestContentService_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	svc := newProductService(nil)

	_, err := svc.Update(ctx, 9, &models.Product{Slug: "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 9), utils.ErrNotFound)

	created, err := svc.Create(ctx, &models.Product{Slug: "x", Name: "old"})
	require.NoError(t, err)
	updated, err := svc.Update(ctx, created.ID, &models.Product{Slug: "x", Name: "new"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := svc.GetBySlug(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []models.Lead
	updated []models.Lead
	err     error
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) LeadCreated(_ context.Context, l models.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, l)
	return n.err
}

func (n *recordingNotifier) LeadUpdated(_ context.Context, l models.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, l)
	return n.err
}

func newSyncLeadService(notifiers ...LeadNotifier) *LeadService {
	svc := NewLeadService(memory.NewLeadRepository(), notifiers...)
	svc.async = false
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestLeadService_CreateForcesServerFields(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	svc := newSyncLeadService(n)

	note := "pre-filled"
	l, err := svc.Create(ctx, &models.Lead{
		ID: 40, Name: "Aigerim", Status: models.LeadStatusDone, ManagerNote: &note,
		CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
	assert.Equal(t, models.LeadStatusNew, l.Status)
	assert.Equal(t, "general", l.Source)
	assert.Nil(t, l.ManagerNote)
	assert.Equal(t, 2024, l.CreatedAt.Year())
	require.Len(t, n.created, 1)
	assert.Equal(t, "Aigerim", n.created[0].Name)
}

func TestLeadService_CreateKeepsSubSecondTimestamp(t *testing.T) {
	svc := newSyncLeadService()
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.FixedZone("ALMT", 5*3600)) }

	l, err := svc.Create(context.Background(), &models.Lead{Name: "Dana"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 4, 30, 0, 123456789, time.UTC), l.CreatedAt)
}

func TestLeadService_NotifierFailureDoesNotFailCreate(t *testing.T) {
	svc := newSyncLeadService(&recordingNotifier{err: errors.New("telegram down")})
	_, err := svc.Create(context.Background(), &models.Lead{Name: "A"})
	assert.NoError(t, err)
}

func TestLeadService_Update(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	svc := newSyncLeadService(n)

	for _, name := range []string{"A", "B"} {
		_, err := svc.Create(ctx, &models.Lead{Name: name})
		require.NoError(t, err)
	}

	bogus := models.LeadStatus("archived")
	_, err := svc.Update(ctx, 1, models.LeadUpdate{Status: &bogus})
	assert.ErrorIs(t, err, utils.ErrInvalidStatus)

	done := models.LeadStatusDone
	l, err := svc.Update(ctx, 1, models.LeadUpdate{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusDone, l.Status)
	require.Len(t, n.updated, 1)

	leads, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusNew, leads[0].Status)
	assert.Equal(t, models.LeadStatusDone, leads[1].Status)

	_, err = svc.Update(ctx, 99, models.LeadUpdate{Status: &done})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
