package contentapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Almas2004/led/internal/models"
)

// ListCases returns the whole case collection.
func (c *Client) ListCases(ctx context.Context) ([]models.Case, error) {
	var items []models.Case
	if err := c.doRequest(ctx, http.MethodGet, "/cases", nil, &items); err != nil {
		return []models.Case{}, err
	}
	if items == nil {
		items = []models.Case{}
	}
	return items, nil
}

// CreateCase stores a new case.
func (c *Client) CreateCase(ctx context.Context, cs models.Case) (*models.Case, error) {
	cs.ID = 0
	created := cs
	if err := c.doRequest(ctx, http.MethodPost, "/cases", cs, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCase overwrites the case with the given id.
func (c *Client) UpdateCase(ctx context.Context, id int64, cs models.Case) (*models.Case, error) {
	cs.ID = id
	updated := cs
	if err := c.doRequest(ctx, http.MethodPut, "/cases/"+strconv.FormatInt(id, 10), cs, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCase permanently removes a case.
func (c *Client) DeleteCase(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, "/cases/"+strconv.FormatInt(id, 10), nil, nil)
}
