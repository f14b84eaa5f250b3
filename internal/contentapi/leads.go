package contentapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Almas2004/led/internal/models"
)

// ListLeads returns all leads, newest first as ordered by the backend.
func (c *Client) ListLeads(ctx context.Context) ([]models.Lead, error) {
	var items []models.Lead
	if err := c.doRequest(ctx, http.MethodGet, "/leads", nil, &items); err != nil {
		return []models.Lead{}, err
	}
	if items == nil {
		items = []models.Lead{}
	}
	return items, nil
}

// CreateLead submits a captured lead. When the backend answers without a
// body the submitted lead is returned as-is.
func (c *Client) CreateLead(ctx context.Context, l models.Lead) (*models.Lead, error) {
	l.ID = 0
	created := l
	if err := c.doRequest(ctx, http.MethodPost, "/leads", l, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLead applies a partial update (status, manager note).
func (c *Client) UpdateLead(ctx context.Context, id int64, upd models.LeadUpdate) error {
	return c.doRequest(ctx, http.MethodPatch, "/leads/"+strconv.FormatInt(id, 10), upd, nil)
}
