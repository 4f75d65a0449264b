package application

import (
	"context"
	"errors"
	"testing"

	"commerce-admin-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestDeliveryService(repo *fakeDeliveryRepo) *DeliveryMethodService {
	return NewDeliveryMethodService(repo, nil, zerolog.Nop())
}

func TestCreate_ThenGetReturnsSameValues(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDeliveryMethodInput{
		Name:                  "Same Day",
		Code:                  "SAME",
		Description:           "Same day delivery",
		Price:                 8000,
		Currency:              domain.CurrencyNGN,
		EstimatedDeliveryTime: "same day",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.True(t, created.IsActive, "isActive defaults to true")

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreate_PublishesEventWithContextActor(t *testing.T) {
	repo := newFakeDeliveryRepo()
	events := &fakeCatalogPublisher{}
	svc := NewDeliveryMethodService(repo, events, zerolog.Nop())

	ctx := domain.WithAdminID(context.Background(), "admin-1")
	ctx = domain.WithAdminEmail(ctx, "ops@example.com")

	created, err := svc.Create(ctx, CreateDeliveryMethodInput{Name: "Pickup", Code: "PICKUP", Price: 0})
	require.NoError(t, err)

	published := events.published()
	require.Len(t, published, 1)
	require.Equal(t, domain.CatalogMethodCreated, published[0].Type)
	require.Equal(t, created.ID, published[0].MethodID)
	require.Equal(t, "ops@example.com", published[0].Actor, "audit actor is the admin email from the request context")

	// Without an authenticated caller the actor falls back to system.
	_, err = svc.Create(context.Background(), CreateDeliveryMethodInput{Name: "Dropoff", Code: "DROP", Price: 1000})
	require.NoError(t, err)
	published = events.published()
	require.Len(t, published, 2)
	require.Equal(t, "system", published[1].Actor)
}

func TestCreate_DuplicateNameOrCode(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateDeliveryMethodInput{Name: "Standard", Code: "STD", Price: 2500})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateDeliveryMethodInput{Name: "Standard", Code: "OTHER", Price: 2500})
	require.True(t, errors.Is(err, domain.ErrConflict), "duplicate name: got %v", err)

	_, err = svc.Create(ctx, CreateDeliveryMethodInput{Name: "Other", Code: "STD", Price: 2500})
	require.True(t, errors.Is(err, domain.ErrConflict), "duplicate code: got %v", err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count, "no record persisted on conflict")
}

func TestCreate_InvalidInputLeavesStorageUnchanged(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateDeliveryMethodInput{Name: "Bad", Code: "BAD", Price: -5})
	require.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.Create(ctx, CreateDeliveryMethodInput{Name: "Bad", Code: "BAD", Price: 5, Currency: "GBP"})
	require.True(t, errors.Is(err, domain.ErrValidation))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestEnsureSeeded_SeedsOnceAndOnlyOnce(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeeded(ctx))

	methods, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 3)
	require.Equal(t, "STD", methods[0].Code)
	require.Equal(t, "EXP", methods[1].Code)
	require.Equal(t, "INT", methods[2].Code)

	// Running again against a non-empty store must not duplicate records.
	require.NoError(t, svc.EnsureSeeded(ctx))

	methods, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 3)
}

func TestUpdate_AppliesOnlySuppliedFields(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDeliveryMethodInput{
		Name:     "Standard",
		Code:     "STD",
		Price:    2500,
		Currency: domain.CurrencyNGN,
	})
	require.NoError(t, err)

	price := 3000.0
	updated, err := svc.Update(ctx, created.ID, domain.DeliveryMethodUpdate{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 3000.0, updated.Price)
	require.Equal(t, "Standard", updated.Name, "untouched fields survive")
	require.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt is immutable")
	require.Equal(t, created.ID, updated.ID)
}

func TestUpdate_RevalidatesInvariants(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDeliveryMethodInput{Name: "Standard", Code: "STD", Price: 2500})
	require.NoError(t, err)

	bad := -10.0
	_, err = svc.Update(ctx, created.ID, domain.DeliveryMethodUpdate{Price: &bad})
	require.True(t, errors.Is(err, domain.ErrValidation))

	badCurrency := domain.Currency("GBP")
	_, err = svc.Update(ctx, created.ID, domain.DeliveryMethodUpdate{Currency: &badCurrency})
	require.True(t, errors.Is(err, domain.ErrValidation))

	// Storage unchanged after rejected updates.
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 2500.0, got.Price)
	require.Equal(t, domain.CurrencyNGN, got.Currency)
}

func TestUpdate_UnknownID(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)

	price := 100.0
	_, err := svc.Update(context.Background(), "missing", domain.DeliveryMethodUpdate{Price: &price})
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := newTestDeliveryService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDeliveryMethodInput{Name: "Standard", Code: "STD", Price: 2500})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))

	err = svc.Delete(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
