package infrastructure

import (
	"context"

	"storefront/storefront-service/internal/app/storefront/entity"
)

// MessagePublisher интерфейс для отправки событий в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// ReviewStore - доступ к отзывам на backend.
// Методы чтения никогда не возвращают ошибку: при сбое отдают пустой результат
type ReviewStore interface {
	FetchReviews(ctx context.Context, productID entity.ID) []entity.Review
	FetchAverageRating(ctx context.Context, productID entity.ID) float64
	CreateReview(ctx context.Context, payload *entity.CreateReviewPayload) error
}

// CatalogStore - CRUD товаров на backend
type CatalogStore interface {
	ListProducts(ctx context.Context) []entity.Product
	CreateProduct(ctx context.Context, form *entity.ProductForm) (entity.ID, error)
	UpdateProduct(ctx context.Context, form *entity.ProductForm) error
	DeleteProduct(ctx context.Context, productID entity.ID) error
}

// AccountStore - аутентификация и регистрация на backend
type AccountStore interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.User, error)
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
}

// HealthChecker - проверка доступности backend
type HealthChecker interface {
	Ping(ctx context.Context) error
}
