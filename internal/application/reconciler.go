package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/infrastructure/metrics"
	"commerce-admin-core/internal/ports"

	"github.com/rs/zerolog"
)

// ExternalMethod is one shipping-option descriptor supplied by the
// storefront. Its ID is the correlation key matched against the catalog's
// code field. Price is a pointer so a missing field is distinguishable
// from a zero price.
type ExternalMethod struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Currency string   `json:"currency,omitempty"`
}

// SyncedMethod is one element of the reconciler's output: the catalog record
// after reconciliation, carrying both the internal id and the external id so
// the caller can re-map.
type SyncedMethod struct {
	InternalID            string          `json:"_id"`
	ExternalID            string          `json:"id"`
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	Price                 float64         `json:"price"`
	Currency              domain.Currency `json:"currency"`
	Description           string          `json:"description"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime"`
	IsActive              bool            `json:"isActive"`
}

// Reconciler aligns the stored catalog with an externally supplied list of
// shipping options, creating records that are absent and updating records
// whose fields diverge.
type Reconciler struct {
	repo   ports.DeliveryMethodRepository
	events CatalogPublisher
	logger zerolog.Logger
}

// NewReconciler creates a new reconciler.
func NewReconciler(repo ports.DeliveryMethodRepository, events CatalogPublisher, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// Reconcile processes the external list entry by entry. Entries missing an
// id, name or price are skipped with a warning; per-entry persistence
// failures are logged and skipped without aborting the batch. The output
// preserves the input order of the entries that were processed. A nil list
// fails the whole call with domain.ErrInvalidInput.
func (r *Reconciler) Reconcile(ctx context.Context, external []ExternalMethod) ([]SyncedMethod, error) {
	if external == nil {
		return nil, fmt.Errorf("%w: frontendMethods must be a list", domain.ErrInvalidInput)
	}

	metrics.ReconcilerRuns.Inc()

	synced := make([]SyncedMethod, 0, len(external))
	for i, entry := range external {
		if entry.ID == "" || entry.Name == "" || entry.Price == nil {
			r.logger.Warn().
				Int("index", i).
				Str("externalId", entry.ID).
				Msg("Skipping reconciliation entry with missing id, name or price")
			metrics.ReconcilerEntries.WithLabelValues(metrics.OutcomeSkipped).Inc()
			continue
		}

		method, err := r.reconcileEntry(ctx, entry)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Int("index", i).
				Str("externalId", entry.ID).
				Msg("Skipping reconciliation entry after failure")
			metrics.ReconcilerEntries.WithLabelValues(metrics.OutcomeSkipped).Inc()
			continue
		}

		synced = append(synced, SyncedMethod{
			InternalID:            method.ID,
			ExternalID:            entry.ID,
			Name:                  method.Name,
			Code:                  method.Code,
			Price:                 method.Price,
			Currency:              method.Currency,
			Description:           method.Description,
			EstimatedDeliveryTime: method.EstimatedDeliveryTime,
			IsActive:              method.IsActive,
		})
	}

	return synced, nil
}

// reconcileEntry applies one external entry: create-if-absent, otherwise
// update only the fields that diverge.
func (r *Reconciler) reconcileEntry(ctx context.Context, entry ExternalMethod) (*domain.DeliveryMethod, error) {
	currency := domain.Currency(strings.ToUpper(strings.TrimSpace(entry.Currency)))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	name := strings.TrimSpace(entry.Name)
	code := strings.ToUpper(strings.TrimSpace(entry.ID))
	existing, err := r.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		method, err := domain.NewDeliveryMethod(
			name,
			code,
			name+" delivery",
			*entry.Price,
			currency,
			estimateDeliveryTime(name),
			true,
		)
		if err != nil {
			return nil, err
		}

		created, err := r.repo.Insert(ctx, method)
		if err != nil {
			return nil, err
		}

		r.logger.Info().
			Str("id", created.ID).
			Str("code", created.Code).
			Msg("Reconciler created delivery method")
		metrics.ReconcilerEntries.WithLabelValues(metrics.OutcomeCreated).Inc()
		r.publish(created)
		return created, nil
	}

	if existing.Name == name && existing.Price == *entry.Price && existing.Currency == currency {
		metrics.ReconcilerEntries.WithLabelValues(metrics.OutcomeUnchanged).Inc()
		return existing, nil
	}

	next := *existing
	next.Name = name
	next.Price = *entry.Price
	next.Currency = currency
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := r.repo.UpdateFields(ctx, &next)
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("id", updated.ID).
		Str("code", updated.Code).
		Msg("Reconciler updated delivery method")
	metrics.ReconcilerEntries.WithLabelValues(metrics.OutcomeUpdated).Inc()
	r.publish(updated)
	return updated, nil
}

// estimateDeliveryTime derives an ETA from the option name: names carrying a
// "1-2" range advertise next-day style shipping, everything else gets the
// standard window.
func estimateDeliveryTime(name string) string {
	if strings.Contains(name, "1-2") {
		return "1-2 business days"
	}
	return "3-5 business days"
}

func (r *Reconciler) publish(method *domain.DeliveryMethod) {
	if r.events == nil {
		return
	}
	r.events.Publish(&domain.CatalogEvent{
		Type:       domain.CatalogMethodReconciled,
		MethodID:   method.ID,
		MethodCode: method.Code,
		Actor:      "reconciler",
		OccurredAt: time.Now(),
	})
}
