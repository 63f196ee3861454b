package mocks

import (
	"context"
	"sync"
	"time"

	"storefront/storefront-service/internal/app/storefront/entity"

	"github.com/stretchr/testify/mock"
)

// MockSessionRepository мок для SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string, ttl time.Duration) (*entity.Session, error) {
	args := m.Called(ctx, id, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewStore мок для ReviewStore
type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) FetchReviews(ctx context.Context, productID entity.ID) []entity.Review {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return []entity.Review{}
	}
	return args.Get(0).([]entity.Review)
}

func (m *MockReviewStore) FetchAverageRating(ctx context.Context, productID entity.ID) float64 {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64)
}

func (m *MockReviewStore) CreateReview(ctx context.Context, payload *entity.CreateReviewPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockCatalogStore мок для CatalogStore
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) ListProducts(ctx context.Context) []entity.Product {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []entity.Product{}
	}
	return args.Get(0).([]entity.Product)
}

func (m *MockCatalogStore) CreateProduct(ctx context.Context, form *entity.ProductForm) (entity.ID, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(entity.ID), args.Error(1)
}

func (m *MockCatalogStore) UpdateProduct(ctx context.Context, form *entity.ProductForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockCatalogStore) DeleteProduct(ctx context.Context, productID entity.ID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockAccountStore мок для AccountStore
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Login(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountStore) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockHealthChecker мок для HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	mu       sync.Mutex
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, value)
	m.mu.Unlock()
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
