package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mustafa-app/console/internal/domain"
)

// ListPromotores returns all promoters for the caller's company.
func (c *Client) ListPromotores(ctx context.Context) ([]domain.Promotor, error) {
	const op = "backend.ListPromotores"

	promotores := []domain.Promotor{}
	if err := c.doJSON(ctx, op, http.MethodGet, "/users", nil, nil, "", &promotores); err != nil {
		return nil, err
	}
	return promotores, nil
}

// CreatePromotor registers a new promoter account.
func (c *Client) CreatePromotor(ctx context.Context, params domain.CreatePromotorParams) (*domain.Promotor, error) {
	const op = "backend.CreatePromotor"

	if err := params.Validate(); err != nil {
		return nil, err
	}

	var created domain.Promotor
	if err := c.postJSON(ctx, op, "/users", params, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePromotor applies a partial update to an existing promoter.
func (c *Client) UpdatePromotor(ctx context.Context, id int, params domain.UpdatePromotorParams) (*domain.Promotor, error) {
	const op = "backend.UpdatePromotor"

	if id <= 0 {
		return nil, domain.Invalid(op, "A valid promoter ID is required")
	}
	if params.Perfil != nil && !params.Perfil.Valid() {
		return nil, domain.Invalid(op, "Profile must be one of ADMIN, GESTOR or OPERADOR")
	}

	var updated domain.Promotor
	if err := c.putJSON(ctx, op, fmt.Sprintf("/users/%d", id), params, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
