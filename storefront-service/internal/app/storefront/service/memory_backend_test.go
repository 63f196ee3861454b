package service

import (
	"context"
	"strconv"
	"sync"

	"storefront/storefront-service/internal/app/storefront/entity"
	backend "storefront/storefront-service/internal/app/storefront/infrastructure/http"
)

// memoryBackend - backend в памяти: товары и отзывы с каскадным удалением
type memoryBackend struct {
	mu       sync.Mutex
	nextID   int
	products []entity.Product
	reviews  map[entity.ID][]entity.Review
}

func newMemoryBackend(products ...entity.Product) *memoryBackend {
	return &memoryBackend{
		nextID:   100,
		products: products,
		reviews:  make(map[entity.ID][]entity.Review),
	}
}

func (b *memoryBackend) newID() entity.ID {
	b.nextID++
	return entity.ID(strconv.Itoa(b.nextID))
}

func (b *memoryBackend) FetchReviews(ctx context.Context, productID entity.ID) []entity.Review {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.Review, len(b.reviews[productID]))
	copy(out, b.reviews[productID])
	return out
}

func (b *memoryBackend) FetchAverageRating(ctx context.Context, productID entity.ID) float64 {
	return Aggregate(b.FetchReviews(ctx, productID)).Mean
}

func (b *memoryBackend) CreateReview(ctx context.Context, payload *entity.CreateReviewPayload) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reviews[payload.ProductID] = append(b.reviews[payload.ProductID], entity.Review{
		ID:        b.newID(),
		ProductID: payload.ProductID,
		UserID:    payload.UserID,
		Rating:    entity.NewRating(payload.Rating),
		Text:      payload.Text,
	})
	return nil
}

func (b *memoryBackend) ListProducts(ctx context.Context) []entity.Product {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.Product, len(b.products))
	copy(out, b.products)
	return out
}

func (b *memoryBackend) CreateProduct(ctx context.Context, form *entity.ProductForm) (entity.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.newID()
	b.products = append(b.products, productFromForm(id, form))
	return id, nil
}

func (b *memoryBackend) UpdateProduct(ctx context.Context, form *entity.ProductForm) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.products {
		if b.products[i].ID == form.ID {
			b.products[i] = productFromForm(form.ID, form)
			return nil
		}
	}
	return &backend.StatusError{Operation: "update_product", Code: 404, Message: "Product not found"}
}

func (b *memoryBackend) DeleteProduct(ctx context.Context, productID entity.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.products {
		if b.products[i].ID == productID {
			b.products = append(b.products[:i], b.products[i+1:]...)
			delete(b.reviews, productID)
			return nil
		}
	}
	return &backend.StatusError{Operation: "delete_product", Code: 404, Message: "Product not found"}
}

func productFromForm(id entity.ID, form *entity.ProductForm) entity.Product {
	product := entity.Product{
		ID:          id,
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
	}
	if form.Price != nil {
		product.Price = *form.Price
	}
	return product
}
