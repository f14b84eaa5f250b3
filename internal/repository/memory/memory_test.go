package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/utils"
)

func TestContentRepository_SlugUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	id, err := repo.Create(ctx, &models.Product{Slug: "indoor-p2-5"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = repo.Create(ctx, &models.Product{Slug: "indoor-p2-5"})
	assert.ErrorIs(t, err, utils.ErrSlugTaken)

	id2, err := repo.Create(ctx, &models.Product{Slug: "outdoor-p10"})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, id2, &models.Product{Slug: "indoor-p2-5"}), utils.ErrSlugTaken)
	require.NoError(t, repo.Update(ctx, id, &models.Product{ID: 77, Slug: "indoor-p2-5", Name: "renamed"}))

	got, err := repo.GetBySlug(ctx, "indoor-p2-5")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "renamed", got.Name)
}

func TestContentRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCaseRepository()

	for _, slug := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, &models.Case{Slug: slug})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 2), utils.ErrNotFound)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Slug)
	assert.Equal(t, "c", items[1].Slug)

	_, err = repo.GetBySlug(ctx, "b")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestLeadRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	for _, name := range []string{"first", "second"} {
		require.NoError(t, repo.Create(ctx, &models.Lead{Name: name, Status: models.LeadStatusNew}))
	}
	done := models.LeadStatusDone
	require.NoError(t, repo.Update(ctx, 1, models.LeadUpdate{Status: &done}))
	assert.ErrorIs(t, repo.Update(ctx, 9, models.LeadUpdate{Status: &done}), utils.ErrNotFound)

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "second", leads[0].Name)
	assert.Equal(t, models.LeadStatusNew, leads[0].Status)
	assert.Equal(t, models.LeadStatusDone, leads[1].Status)
}
