package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

var tracer = otel.Tracer("stock-repository")

// ReservationStoreWithTracing wraps a ReservationStore with tracing
type ReservationStoreWithTracing struct {
	inner domain.ReservationStore
}

// NewGormReservationStoreWithTracing creates a traced reservation store
func NewGormReservationStoreWithTracing(db *gorm.DB) *ReservationStoreWithTracing {
	return &ReservationStoreWithTracing{inner: NewGormReservationStore(db)}
}

// Reserve with tracing
func (s *ReservationStoreWithTracing) Reserve(ctx context.Context, p domain.ReserveParams) (*domain.Resource, *domain.AttributionEntry, error) {
	ctx, span := tracer.Start(ctx, "reservation.Reserve",
		trace.WithAttributes(
			attribute.String("resource.type", string(p.ResourceType)),
			attribute.Int("resource.id", int(p.ResourceID)),
			attribute.Int("technician.id", int(p.TechnicianID)),
			attribute.Float64("quantity", p.Quantity),
		),
	)
	defer span.End()

	resource, entry, err := s.inner.Reserve(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("ledger.entry_id", int(entry.ID)),
		attribute.Float64("resource.assigned_quantity", resource.AssignedQuantity),
	)
	return resource, entry, nil
}

// Release with tracing
func (s *ReservationStoreWithTracing) Release(ctx context.Context, p domain.ReserveParams) (*domain.Resource, *domain.AttributionEntry, error) {
	ctx, span := tracer.Start(ctx, "reservation.Release",
		trace.WithAttributes(
			attribute.String("resource.type", string(p.ResourceType)),
			attribute.Int("resource.id", int(p.ResourceID)),
			attribute.Int("technician.id", int(p.TechnicianID)),
			attribute.Float64("quantity", p.Quantity),
		),
	)
	defer span.End()

	resource, entry, err := s.inner.Release(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("ledger.entry_id", int(entry.ID)),
		attribute.Float64("resource.assigned_quantity", resource.AssignedQuantity),
	)
	return resource, entry, nil
}

// CancelAttribution with tracing
func (s *ReservationStoreWithTracing) CancelAttribution(ctx context.Context, entryID uint, author string) (*domain.Resource, *domain.AttributionEntry, error) {
	ctx, span := tracer.Start(ctx, "reservation.CancelAttribution",
		trace.WithAttributes(attribute.Int("ledger.entry_id", int(entryID))),
	)
	defer span.End()

	resource, entry, err := s.inner.CancelAttribution(ctx, entryID, author)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	return resource, entry, nil
}

// UpdateDetails with tracing
func (s *ReservationStoreWithTracing) UpdateDetails(ctx context.Context, u domain.ResourceUpdate) (*domain.Resource, *domain.Movement, error) {
	ctx, span := tracer.Start(ctx, "reservation.UpdateDetails",
		trace.WithAttributes(
			attribute.String("resource.type", string(u.ResourceType)),
			attribute.Int("resource.id", int(u.ResourceID)),
		),
	)
	defer span.End()

	resource, movement, err := s.inner.UpdateDetails(ctx, u)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	return resource, movement, nil
}

// TransferDepot with tracing
func (s *ReservationStoreWithTracing) TransferDepot(ctx context.Context, resourceType domain.ResourceType, resourceID uint, toDepotID *uint, author string) (*domain.Resource, *domain.Movement, error) {
	ctx, span := tracer.Start(ctx, "reservation.TransferDepot",
		trace.WithAttributes(
			attribute.String("resource.type", string(resourceType)),
			attribute.Int("resource.id", int(resourceID)),
		),
	)
	defer span.End()

	resource, movement, err := s.inner.TransferDepot(ctx, resourceType, resourceID, toDepotID, author)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	return resource, movement, nil
}
