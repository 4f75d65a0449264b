package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"commerce-admin-core/internal/domain"
)

// fakeDeliveryRepo is an in-memory DeliveryMethodRepository that enforces the
// same uniqueness semantics as the Mongo implementation and counts writes so
// tests can assert idempotence.
type fakeDeliveryRepo struct {
	mu      sync.Mutex
	methods []*domain.DeliveryMethod
	nextID  int
	inserts int
	updates int
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{}
}

func (f *fakeDeliveryRepo) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inserts + f.updates
}

func (f *fakeDeliveryRepo) Insert(_ context.Context, method *domain.DeliveryMethod) (*domain.DeliveryMethod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.methods {
		if existing.Name == method.Name || existing.Code == method.Code {
			return nil, fmt.Errorf("%w: delivery method with that name or code", domain.ErrConflict)
		}
	}

	f.nextID++
	stored := *method
	stored.ID = fmt.Sprintf("000000000000000000000%03d", f.nextID)
	stored.CreatedAt = time.Now()
	f.methods = append(f.methods, &stored)
	f.inserts++

	out := stored
	return &out, nil
}

func (f *fakeDeliveryRepo) GetByID(_ context.Context, id string) (*domain.DeliveryMethod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.methods {
		if m.ID == id {
			out := *m
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, id)
}

func (f *fakeDeliveryRepo) FindByCode(_ context.Context, code string) (*domain.DeliveryMethod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.methods {
		if m.Code == code {
			out := *m
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeDeliveryRepo) FindAll(_ context.Context) ([]*domain.DeliveryMethod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.DeliveryMethod, 0, len(f.methods))
	for _, m := range f.methods {
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeDeliveryRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.methods)), nil
}

func (f *fakeDeliveryRepo) UpdateFields(_ context.Context, method *domain.DeliveryMethod) (*domain.DeliveryMethod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.methods {
		if existing.ID != method.ID && (existing.Name == method.Name || existing.Code == method.Code) {
			return nil, fmt.Errorf("%w: delivery method with that name or code", domain.ErrConflict)
		}
	}

	for i, existing := range f.methods {
		if existing.ID == method.ID {
			updated := *method
			updated.CreatedAt = existing.CreatedAt
			f.methods[i] = &updated
			f.updates++
			out := updated
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, method.ID)
}

func (f *fakeDeliveryRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, m := range f.methods {
		if m.ID == id {
			f.methods = append(f.methods[:i], f.methods[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, id)
}

// fakeCatalogPublisher records published catalog events.
type fakeCatalogPublisher struct {
	mu     sync.Mutex
	events []*domain.CatalogEvent
}

func (f *fakeCatalogPublisher) Publish(event *domain.CatalogEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeCatalogPublisher) published() []*domain.CatalogEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.CatalogEvent, len(f.events))
	copy(out, f.events)
	return out
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins []*domain.Admin
	nextID int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{}
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.admins {
		if existing.Email == admin.Email {
			return nil, fmt.Errorf("%w: admin with that email", domain.ErrConflict)
		}
	}

	f.nextID++
	stored := *admin
	stored.ID = fmt.Sprintf("admin-%d", f.nextID)
	stored.CreatedAt = time.Now()
	f.admins = append(f.admins, &stored)

	out := stored
	return &out, nil
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.admins {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.admins {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: admin %s", domain.ErrNotFound, id)
}

// fakeTokenStore is an in-memory TokenStore.
type fakeTokenStore struct {
	mu       sync.Mutex
	revoked  map[string]struct{}
	attempts map[string]int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		revoked:  make(map[string]struct{}),
		attempts: make(map[string]int64),
	}
}

func (f *fakeTokenStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = struct{}{}
	return nil
}

func (f *fakeTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

func (f *fakeTokenStore) RecordFailedLogin(_ context.Context, email string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[email]++
	return f.attempts[email], nil
}

func (f *fakeTokenStore) ResetFailedLogins(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attempts, email)
	return nil
}
