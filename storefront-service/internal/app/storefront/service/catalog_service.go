package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/infrastructure"

	"github.com/go-playground/validator/v10"
)

// CatalogService собирает карточки каталога и проксирует изменения товаров в backend
type CatalogService struct {
	catalogStore  infrastructure.CatalogStore
	reviewStore   infrastructure.ReviewStore
	kafkaProducer infrastructure.MessagePublisher
	validator     *validator.Validate
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(
	catalogStore infrastructure.CatalogStore,
	reviewStore infrastructure.ReviewStore,
	kafkaProducer infrastructure.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		catalogStore:  catalogStore,
		reviewStore:   reviewStore,
		kafkaProducer: kafkaProducer,
		validator:     validator.New(),
	}
}

// ListCards возвращает все товары со сводкой отзывов.
// Отзывы загружаются последовательно, по одному запросу на товар
func (s *CatalogService) ListCards(ctx context.Context) []entity.ProductCard {
	products := s.catalogStore.ListProducts(ctx)

	cards := make([]entity.ProductCard, 0, len(products))
	for _, product := range products {
		reviews := s.reviewStore.FetchReviews(ctx, product.ID)
		cards = append(cards, entity.ProductCard{
			Product: product,
			Summary: Summarize(reviews),
		})
	}

	return cards
}

// GetDetail возвращает товар с панелью отзывов.
// BackendAverage только для справки: на экране показывается пересчитанное среднее
func (s *CatalogService) GetDetail(ctx context.Context, productID entity.ID) (*entity.ProductDetail, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews := s.reviewStore.FetchReviews(ctx, productID)

	return &entity.ProductDetail{
		Product: *product,
		Panel: entity.ReviewPanel{
			ProductID: productID,
			Reviews:   reviews,
			Summary:   Summarize(reviews),
		},
		BackendAverage: s.reviewStore.FetchAverageRating(ctx, productID),
	}, nil
}

// SaveProduct создаёт товар, если ID пустой, иначе обновляет существующий.
// После создания form.ID содержит ID, присвоенный backend
func (s *CatalogService) SaveProduct(ctx context.Context, form *entity.ProductForm) error {
	form.Title = strings.TrimSpace(form.Title)
	if err := s.validator.Struct(form); err != nil {
		return fmt.Errorf("%w: title and price are required", ErrValidation)
	}

	operation := "update"
	var err error
	if form.ID == "" {
		operation = "create"
		form.ID, err = s.catalogStore.CreateProduct(ctx, form)
	} else {
		err = s.catalogStore.UpdateProduct(ctx, form)
	}

	if err != nil {
		metrics.ProductMutations.WithLabelValues(operation, "failed").Inc()
		return fmt.Errorf("failed to %s product: %w", operation, err)
	}
	metrics.ProductMutations.WithLabelValues(operation, "success").Inc()

	s.publish(ctx, entity.StorefrontEvent{
		EventType: entity.EventProductSaved,
		ProductID: form.ID,
		Timestamp: time.Now(),
	})

	return nil
}

// DeleteProduct удаляет товар. Отзывы товара удаляет backend
func (s *CatalogService) DeleteProduct(ctx context.Context, productID entity.ID) error {
	if productID == "" {
		return fmt.Errorf("%w: product id is required", ErrValidation)
	}

	if err := s.catalogStore.DeleteProduct(ctx, productID); err != nil {
		metrics.ProductMutations.WithLabelValues("delete", "failed").Inc()
		return fmt.Errorf("failed to delete product: %w", err)
	}
	metrics.ProductMutations.WithLabelValues("delete", "success").Inc()

	s.publish(ctx, entity.StorefrontEvent{
		EventType: entity.EventProductDeleted,
		ProductID: productID,
		Timestamp: time.Now(),
	})

	return nil
}

// findProduct ищет товар в списке: отдельного GET /products/{id} у backend нет
func (s *CatalogService) findProduct(ctx context.Context, productID entity.ID) (*entity.Product, error) {
	for _, product := range s.catalogStore.ListProducts(ctx) {
		if product.ID == productID {
			p := product
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *CatalogService) publish(ctx context.Context, event entity.StorefrontEvent) {
	if err := publishEvent(ctx, s.kafkaProducer, event); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Str("product_id", event.ProductID.String()).
			Msg("Failed to publish catalog event")
	}
}
