package domain

import "time"

// CatalogEventType identifies what happened to a delivery method.
type CatalogEventType string

const (
	CatalogMethodCreated    CatalogEventType = "delivery_method.created"
	CatalogMethodUpdated    CatalogEventType = "delivery_method.updated"
	CatalogMethodDeleted    CatalogEventType = "delivery_method.deleted"
	CatalogMethodReconciled CatalogEventType = "delivery_method.reconciled"
)

// CatalogEvent is broadcast on every catalog mutation so in-process
// subscribers (audit log, metrics) can observe changes.
type CatalogEvent struct {
	Type       CatalogEventType
	MethodID   string
	MethodCode string
	Actor      string // admin id or "reconciler"
	OccurredAt time.Time
}
