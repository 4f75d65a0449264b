package pubsub

import (
	"context"
	"fmt"
	"sync"

	"commerce-admin-core/internal/domain"

	"github.com/rs/zerolog"
)

// CatalogEventChannel represents a subscription channel
type CatalogEventChannel struct {
	ID     string
	Filter *CatalogEventFilter
	Events chan *domain.CatalogEvent
	ctx    context.Context
	cancel context.CancelFunc
}

// CatalogEventFilter filters catalog events
type CatalogEventFilter struct {
	Types []domain.CatalogEventType // Filter by event types
	Code  string                    // Filter by delivery method code
}

// CatalogPubSub manages in-process catalog event subscriptions
type CatalogPubSub struct {
	mu       sync.RWMutex
	channels map[string]*CatalogEventChannel
	logger   zerolog.Logger
	nextID   int64
	idMu     sync.Mutex
}

// NewCatalogPubSub creates a new catalog pub/sub system
func NewCatalogPubSub(logger zerolog.Logger) *CatalogPubSub {
	return &CatalogPubSub{
		channels: make(map[string]*CatalogEventChannel),
		logger:   logger,
	}
}

// Subscribe creates a new subscription channel
func (ps *CatalogPubSub) Subscribe(ctx context.Context, filter *CatalogEventFilter) *CatalogEventChannel {
	ps.idMu.Lock()
	id := ps.generateID()
	ps.idMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)

	channel := &CatalogEventChannel{
		ID:     id,
		Filter: filter,
		Events: make(chan *domain.CatalogEvent, 16),
		ctx:    subCtx,
		cancel: cancel,
	}

	ps.mu.Lock()
	ps.channels[id] = channel
	ps.mu.Unlock()

	ps.logger.Debug().
		Str("channelId", id).
		Msg("Catalog subscription created")

	// Cleanup when context is cancelled
	go func() {
		<-subCtx.Done()
		ps.Unsubscribe(id)
	}()

	return channel
}

// Unsubscribe removes a subscription channel
func (ps *CatalogPubSub) Unsubscribe(channelID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	channel, exists := ps.channels[channelID]
	if !exists {
		return
	}

	close(channel.Events)
	channel.cancel()
	delete(ps.channels, channelID)

	ps.logger.Debug().
		Str("channelId", channelID).
		Msg("Catalog subscription removed")
}

// Publish broadcasts a catalog event to all matching subscribers
func (ps *CatalogPubSub) Publish(event *domain.CatalogEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, channel := range ps.channels {
		if !ps.matchesFilter(event, channel.Filter) {
			continue
		}
		select {
		case channel.Events <- event:
		case <-channel.ctx.Done():
			// Subscriber gone, skip
		default:
			// Channel buffer full, skip (non-blocking)
			ps.logger.Warn().
				Str("channelId", channel.ID).
				Msg("Channel buffer full, dropping catalog event")
		}
	}
}

// matchesFilter checks if an event matches the subscription filter
func (ps *CatalogPubSub) matchesFilter(event *domain.CatalogEvent, filter *CatalogEventFilter) bool {
	if filter == nil {
		return true // No filter, match all
	}

	if len(filter.Types) > 0 {
		typeMatch := false
		for _, t := range filter.Types {
			if event.Type == t {
				typeMatch = true
				break
			}
		}
		if !typeMatch {
			return false
		}
	}

	if filter.Code != "" && event.MethodCode != filter.Code {
		return false
	}

	return true
}

// generateID generates a unique channel ID
func (ps *CatalogPubSub) generateID() string {
	ps.nextID++
	return fmt.Sprintf("channel-%d", ps.nextID)
}

// ActiveSubscriptions returns the number of live subscription channels
func (ps *CatalogPubSub) ActiveSubscriptions() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.channels)
}

// StartAuditLogger subscribes to all catalog events and logs them until the
// context is cancelled. Started once from main.
func StartAuditLogger(ctx context.Context, ps *CatalogPubSub, logger zerolog.Logger) {
	channel := ps.Subscribe(ctx, nil)
	go func() {
		for event := range channel.Events {
			logger.Info().
				Str("event", string(event.Type)).
				Str("methodId", event.MethodID).
				Str("code", event.MethodCode).
				Str("actor", event.Actor).
				Time("occurredAt", event.OccurredAt).
				Msg("Catalog change")
		}
	}()
}
