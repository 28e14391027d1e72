package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mustafa-app/console/internal/domain"
)

// ListFotos returns photo records matching the filter, newest first.
func (c *Client) ListFotos(ctx context.Context, filter domain.FotoFilter) ([]domain.Foto, error) {
	const op = "backend.ListFotos"

	fotos := []domain.Foto{}
	if err := c.doJSON(ctx, op, http.MethodGet, "/fotos", filter.Query(), nil, "", &fotos); err != nil {
		return nil, err
	}
	return fotos, nil
}

// DeleteFoto removes a photo record and its stored file.
func (c *Client) DeleteFoto(ctx context.Context, id int) error {
	const op = "backend.DeleteFoto"

	if id <= 0 {
		return domain.Invalid(op, "A valid photo ID is required")
	}
	return c.doJSON(ctx, op, http.MethodDelete, fmt.Sprintf("/fotos/%d", id), nil, nil, "", nil)
}
