package contentapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Almas2004/led/internal/models"
)

// ListSolutions returns the whole solution collection.
func (c *Client) ListSolutions(ctx context.Context) ([]models.Solution, error) {
	var items []models.Solution
	if err := c.doRequest(ctx, http.MethodGet, "/solutions", nil, &items); err != nil {
		return []models.Solution{}, err
	}
	if items == nil {
		items = []models.Solution{}
	}
	return items, nil
}

// CreateSolution stores a new solution.
func (c *Client) CreateSolution(ctx context.Context, s models.Solution) (*models.Solution, error) {
	s.ID = 0
	created := s
	if err := c.doRequest(ctx, http.MethodPost, "/solutions", s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSolution overwrites the solution with the given id.
func (c *Client) UpdateSolution(ctx context.Context, id int64, s models.Solution) (*models.Solution, error) {
	s.ID = id
	updated := s
	if err := c.doRequest(ctx, http.MethodPut, "/solutions/"+strconv.FormatInt(id, 10), s, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSolution permanently removes a solution.
func (c *Client) DeleteSolution(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, "/solutions/"+strconv.FormatInt(id, 10), nil, nil)
}
