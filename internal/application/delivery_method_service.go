package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/ports"

	"github.com/rs/zerolog"
)

// CatalogPublisher broadcasts catalog change events to in-process subscribers.
type CatalogPublisher interface {
	Publish(event *domain.CatalogEvent)
}

// DeliveryMethodService handles the shipping-option catalog.
type DeliveryMethodService struct {
	repo   ports.DeliveryMethodRepository
	events CatalogPublisher
	logger zerolog.Logger
}

// NewDeliveryMethodService creates a new delivery method service.
func NewDeliveryMethodService(
	repo ports.DeliveryMethodRepository,
	events CatalogPublisher,
	logger zerolog.Logger,
) *DeliveryMethodService {
	return &DeliveryMethodService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// CreateDeliveryMethodInput represents input for creating a delivery method.
type CreateDeliveryMethodInput struct {
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	Description           string          `json:"description"`
	Price                 float64         `json:"price"`
	Currency              domain.Currency `json:"currency"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime"`
	IsActive              *bool           `json:"isActive"`
}

// Create validates the input and inserts a new delivery method.
// Uniqueness of name and code is enforced by the repository's indexes and
// surfaces as domain.ErrConflict.
func (s *DeliveryMethodService) Create(ctx context.Context, input CreateDeliveryMethodInput) (*domain.DeliveryMethod, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	method, err := domain.NewDeliveryMethod(
		input.Name,
		input.Code,
		input.Description,
		input.Price,
		input.Currency,
		input.EstimatedDeliveryTime,
		isActive,
	)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, method)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery method: %w", err)
	}

	s.logger.Info().
		Str("id", created.ID).
		Str("code", created.Code).
		Msg("Created delivery method")

	s.publish(ctx, domain.CatalogMethodCreated, created)
	return created, nil
}

// List returns the full catalog in insertion order.
func (s *DeliveryMethodService) List(ctx context.Context) ([]*domain.DeliveryMethod, error) {
	methods, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery methods: %w", err)
	}
	return methods, nil
}

// Get returns the delivery method with the given id.
func (s *DeliveryMethodService) Get(ctx context.Context, id string) (*domain.DeliveryMethod, error) {
	method, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return method, nil
}

// Update applies only the supplied fields, re-validating any invariant
// touched, and persists the result as a new value.
func (s *DeliveryMethodService) Update(ctx context.Context, id string, update domain.DeliveryMethodUpdate) (*domain.DeliveryMethod, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := existing.WithUpdates(update)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateFields(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update delivery method: %w", err)
	}

	s.logger.Info().
		Str("id", updated.ID).
		Str("code", updated.Code).
		Msg("Updated delivery method")

	s.publish(ctx, domain.CatalogMethodUpdated, updated)
	return updated, nil
}

// Delete removes the delivery method with the given id.
func (s *DeliveryMethodService) Delete(ctx context.Context, id string) error {
	method, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("id", id).
		Str("code", method.Code).
		Msg("Deleted delivery method")

	s.publish(ctx, domain.CatalogMethodDeleted, method)
	return nil
}

// EnsureSeeded inserts the default catalog when the store is empty. It runs
// once at startup; the empty-store check plus the unique indexes on name and
// code make a concurrent double seed degrade to duplicate-key no-ops.
func (s *DeliveryMethodService) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count delivery methods: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, def := range domain.DefaultDeliveryMethods() {
		method := def
		if _, err := s.repo.Insert(ctx, &method); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// Another instance seeded this record first.
				continue
			}
			return fmt.Errorf("failed to seed delivery method %s: %w", method.Code, err)
		}
		s.logger.Info().
			Str("code", method.Code).
			Msg("Seeded default delivery method")
	}
	return nil
}

func (s *DeliveryMethodService) publish(ctx context.Context, eventType domain.CatalogEventType, method *domain.DeliveryMethod) {
	if s.events == nil {
		return
	}
	// The admin email reads better in the audit trail than the object id.
	actor := domain.GetAdminEmailFromContext(ctx)
	if actor == "" {
		actor = domain.GetAdminIDFromContext(ctx)
	}
	if actor == "" {
		actor = "system"
	}
	s.events.Publish(&domain.CatalogEvent{
		Type:       eventType,
		MethodID:   method.ID,
		MethodCode: method.Code,
		Actor:      actor,
		OccurredAt: time.Now(),
	})
}
