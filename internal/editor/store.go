package editor

import (
	"context"
	"fmt"

	"github.com/Almas2004/led/internal/contentapi"
	"github.com/Almas2004/led/internal/models"
)

// ContentAPI is the subset of the content repository client the editor
// persists through.
type ContentAPI interface {
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error)
	CreateSolution(ctx context.Context, s models.Solution) (*models.Solution, error)
	UpdateSolution(ctx context.Context, id int64, s models.Solution) (*models.Solution, error)
	CreateCase(ctx context.Context, c models.Case) (*models.Case, error)
	UpdateCase(ctx context.Context, id int64, c models.Case) (*models.Case, error)
}

type contentStore struct {
	api ContentAPI
}

// NewContentStore adapts a content repository client to Store.
func NewContentStore(api ContentAPI) Store {
	return &contentStore{api: api}
}

func (s *contentStore) Create(ctx context.Context, d Draft) error {
	var err error
	switch v := d.(type) {
	case *ProductDraft:
		item := v.Item
		item.ID = 0
		_, err = s.api.CreateProduct(ctx, item)
	case *SolutionDraft:
		item := v.Item
		item.ID = 0
		_, err = s.api.CreateSolution(ctx, item)
	case *CaseDraft:
		item := v.Item
		item.ID = 0
		_, err = s.api.CreateCase(ctx, item)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedStoreOp, d)
	}
	// a 2xx without a JSON body still means the write landed
	return contentapi.Lenient(err)
}

func (s *contentStore) Update(ctx context.Context, id int64, d Draft) error {
	var err error
	switch v := d.(type) {
	case *ProductDraft:
		_, err = s.api.UpdateProduct(ctx, id, v.Item)
	case *SolutionDraft:
		_, err = s.api.UpdateSolution(ctx, id, v.Item)
	case *CaseDraft:
		_, err = s.api.UpdateCase(ctx, id, v.Item)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedStoreOp, d)
	}
	// a 2xx without a JSON body still means the write landed
	return contentapi.Lenient(err)
}
