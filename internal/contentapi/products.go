package contentapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Almas2004/led/internal/models"
)

// ListProducts returns the whole product collection.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products", nil, &items); err != nil {
		return []models.Product{}, err
	}
	if items == nil {
		items = []models.Product{}
	}
	return items, nil
}

// GetProductBySlug fetches a single product.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct stores a new product and returns the server copy.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	p.ID = 0
	created := p
	if err := c.doRequest(ctx, http.MethodPost, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct overwrites the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
	p.ID = id
	updated := p
	if err := c.doRequest(ctx, http.MethodPut, "/products/"+strconv.FormatInt(id, 10), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct permanently removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil)
}
