package query

import (
	"context"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// ResourceView is a resource with its derived available quantity. This is
// the one place the availability computation is exposed; callers must not
// recompute quantity - assigned_quantity themselves.
type ResourceView struct {
	domain.Resource
	AvailableQuantity float64 `json:"available_quantity"`
}

// NewResourceView derives the view for one resource, logging the
// data-integrity violation when the stored numbers are inconsistent
// instead of silently hiding it behind the clamp
func NewResourceView(ctx context.Context, resource *domain.Resource) ResourceView {
	if resource.Inconsistent() {
		logger.Error(ctx).
			Uint("resource_id", resource.ID).
			Float64("quantity", resource.Quantity).
			Float64("assigned_quantity", resource.AssignedQuantity).
			Msg("Resource stock numbers violate assigned <= quantity invariant")
	}
	return ResourceView{Resource: *resource, AvailableQuantity: resource.Available()}
}

// GetResourceQuery fetches one resource by type and id
type GetResourceQuery struct {
	ResourceType domain.ResourceType
	ResourceID   uint
}

// GetResourceHandler handles the get resource query
type GetResourceHandler struct {
	repo domain.ResourceRepository
}

// NewGetResourceHandler creates a new get resource handler
func NewGetResourceHandler(repo domain.ResourceRepository) *GetResourceHandler {
	return &GetResourceHandler{repo: repo}
}

// Handle executes the get resource query
func (h *GetResourceHandler) Handle(ctx context.Context, q GetResourceQuery) (*ResourceView, error) {
	resource, err := h.repo.FindByID(q.ResourceID)
	if err != nil {
		return nil, err
	}
	if q.ResourceType != "" && resource.Type != q.ResourceType {
		return nil, domain.ErrNotFound
	}
	view := NewResourceView(ctx, resource)
	return &view, nil
}
