// ABOUTME: Product resource client for the catalog backend
// ABOUTME: List, search, category-filtered list, and admin CRUD operations

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Product is a catalog product record.
// CategoryName is a denormalized display field; the id is authoritative.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
}

// ProductDraft is the payload for creating or updating a product
type ProductDraft struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID int64   `json:"categoryId"`
}

// ListProducts calls GET /products with pagination
func (c *Client) ListProducts(ctx context.Context, page, size int) (*Page[Product], error) {
	data, err := c.do(ctx, http.MethodGet, "/products", pageQuery(page, size), nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Product](data)
}

// GetProduct calls GET /products/{id}
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductsByCategory calls GET /products/category/{categoryId}
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int64, page, size int) (*Page[Product], error) {
	path := fmt.Sprintf("/products/category/%d", categoryID)
	data, err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Product](data)
}

// CreateProduct calls POST /products after client-side validation
func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error) {
	if err := ValidateProductDraft(draft); err != nil {
		return nil, err
	}
	draft.Name = strings.TrimSpace(draft.Name)

	data, err := c.do(ctx, http.MethodPost, "/products", nil, draft)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &p, nil
}

// UpdateProduct calls PUT /products/{id} after client-side validation
func (c *Client) UpdateProduct(ctx context.Context, id int64, draft ProductDraft) (*Product, error) {
	if err := ValidateProductDraft(draft); err != nil {
		return nil, err
	}
	draft.Name = strings.TrimSpace(draft.Name)

	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, draft)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &p, nil
}

// DeleteProduct calls DELETE /products/{id}
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
	return err
}

// SearchProducts calls GET /products/search with a name term
func (c *Client) SearchProducts(ctx context.Context, name string, page, size int) (*Page[Product], error) {
	q := pageQuery(page, size)
	q.Set("name", strings.TrimSpace(name))

	data, err := c.do(ctx, http.MethodGet, "/products/search", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Product](data)
}

// FormatPrice renders a price for display
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
