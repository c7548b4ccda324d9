package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Veraticus/ledger/internal/model"
)

// ListCategories returns every category of typ as a flat snapshot. The
// hierarchy endpoint is tried first; if it fails with a server response the
// plain listing is used instead.
func (c *Client) ListCategories(ctx context.Context, typ model.CategoryType) ([]model.Category, error) {
	base := "/categories/type/" + url.PathEscape(string(typ))

	var dtos []categoryDTO
	err := c.get(ctx, base+"/hierarchy", nil, &dtos)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.logger.Debug("hierarchy endpoint failed, falling back to flat listing",
			"type", typ,
			"status", apiErr.Status)
		dtos = nil
		err = c.get(ctx, base, nil, &dtos)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", typ, err)
	}
	return c.flattenCategories(dtos, typ), nil
}

// CreateCategory creates a category and returns it as stored.
func (c *Client) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	var dto categoryDTO
	if err := c.send(ctx, http.MethodPost, "/categories", newCategoryRequest(in), &dto); err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return c.savedCategory(dto, in)
}

// UpdateCategory replaces the name, type and parent of category id.
func (c *Client) UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (model.Category, error) {
	var dto categoryDTO
	path := "/categories/" + strconv.FormatInt(id, 10)
	if err := c.send(ctx, http.MethodPut, path, newCategoryRequest(in), &dto); err != nil {
		return model.Category{}, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	if dto.ID == 0 {
		dto.ID = id
	}
	return c.savedCategory(dto, in)
}

// DeleteCategory removes category id.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	path := "/categories/" + strconv.FormatInt(id, 10)
	if err := c.send(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

// savedCategory fills what the server left out of a write response from the input.
func (c *Client) savedCategory(dto categoryDTO, in model.CategoryInput) (model.Category, error) {
	if dto.Name == "" {
		dto.Name = in.Name
	}
	cat, err := dto.toModel(in.Type)
	if err != nil {
		return model.Category{}, err
	}
	if cat.Parent == nil && in.ParentID != 0 {
		cat.Parent = &model.CategoryRef{ID: in.ParentID}
	}
	return cat, nil
}
