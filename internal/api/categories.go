// ABOUTME: Category resource client for the catalog backend
// ABOUTME: List, search, detail-with-products, and admin CRUD operations

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Category is a catalog category record
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryDraft is the payload for creating or updating a category
type CategoryDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryWithProducts is the category detail response including its products
type CategoryWithProducts struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
}

// ListCategories calls GET /categories with pagination
func (c *Client) ListCategories(ctx context.Context, page, size int) (*Page[Category], error) {
	data, err := c.do(ctx, http.MethodGet, "/categories", pageQuery(page, size), nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Category](data)
}

// GetCategory calls GET /categories/{id}
func (c *Client) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var cat Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CategoryProducts calls GET /categories/{id}/products
func (c *Client) CategoryProducts(ctx context.Context, id int64) (*CategoryWithProducts, error) {
	var detail CategoryWithProducts
	if err := c.get(ctx, fmt.Sprintf("/categories/%d/products", id), nil, &detail); err != nil {
		return nil, err
	}
	if detail.Products == nil {
		detail.Products = []Product{}
	}
	return &detail, nil
}

// CreateCategory calls POST /categories after client-side validation
func (c *Client) CreateCategory(ctx context.Context, draft CategoryDraft) (*Category, error) {
	if err := ValidateCategoryDraft(draft); err != nil {
		return nil, err
	}
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Description = strings.TrimSpace(draft.Description)

	data, err := c.do(ctx, http.MethodPost, "/categories", nil, draft)
	if err != nil {
		return nil, err
	}
	var cat Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &cat, nil
}

// UpdateCategory calls PUT /categories/{id} after client-side validation
func (c *Client) UpdateCategory(ctx context.Context, id int64, draft CategoryDraft) (*Category, error) {
	if err := ValidateCategoryDraft(draft); err != nil {
		return nil, err
	}
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Description = strings.TrimSpace(draft.Description)

	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, draft)
	if err != nil {
		return nil, err
	}
	var cat Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &cat, nil
}

// DeleteCategory calls DELETE /categories/{id}.
// Deleting a category that still has products surfaces a conflict error.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
	return err
}

// SearchCategories calls GET /categories/search with a name term
func (c *Client) SearchCategories(ctx context.Context, name string, page, size int) (*Page[Category], error) {
	q := pageQuery(page, size)
	q.Set("name", strings.TrimSpace(name))

	data, err := c.do(ctx, http.MethodGet, "/categories/search", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Category](data)
}

// AllCategories fetches every category for filter dropdowns.
// The page size is deliberately large; category counts stay small.
func (c *Client) AllCategories(ctx context.Context) ([]Category, error) {
	page, err := c.ListCategories(ctx, 0, 100)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}
