package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// RepoMock единый мок хранилища, покрывающий интерфейсы всех сервисов.
type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetSubscriber(ctx context.Context, uid string) (*models.Subscriber, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func (m *RepoMock) CreateSubscriber(ctx context.Context, sub models.Subscriber) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) UpdateSubscriber(ctx context.Context, uid string, sub models.Subscriber) (int, error) {
	args := m.Called(ctx, uid, sub)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *RepoMock) ListScorableProducts(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *RepoMock) ListRejectedProductIDs(ctx context.Context, subscriberUID string) (map[int64]bool, error) {
	args := m.Called(ctx, subscriberUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *RepoMock) CreateInteraction(ctx context.Context, interaction models.Interaction) (int64, error) {
	args := m.Called(ctx, interaction)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListFavorites(ctx context.Context, subscriberUID string) ([]models.Product, error) {
	args := m.Called(ctx, subscriberUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *RepoMock) FindBrand(ctx context.Context, nameOrSlug string) (*models.Brand, error) {
	args := m.Called(ctx, nameOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *RepoMock) CountQualifyingProducts(ctx context.Context, brandID int64, gender string) (int, error) {
	args := m.Called(ctx, brandID, gender)
	return args.Int(0), args.Error(1)
}

// fakeCache кеш в памяти поверх JSON, повторяющий поведение redis-кеша.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}
