package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func price(v float64) *entity.Price {
	p := entity.Price(v)
	return &p
}

func newCatalogMocks() (*mocks.MockCatalogStore, *mocks.MockReviewStore, *mocks.MockMessagePublisher) {
	return new(mocks.MockCatalogStore), new(mocks.MockReviewStore), &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
}

func TestListCards_Success(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	catalogStore.On("ListProducts", ctx).Return([]entity.Product{
		{ID: "1", Title: "Tea", Price: 3.5},
		{ID: "2", Title: "Coffee", Price: 4},
	})
	reviewStore.On("FetchReviews", ctx, entity.ID("1")).Return(reviewsWithRatings("5", "3"))
	reviewStore.On("FetchReviews", ctx, entity.ID("2")).Return([]entity.Review{})

	cards := service.ListCards(ctx)

	require.Len(t, cards, 2)
	assert.Equal(t, "Tea", cards[0].Product.Title)
	assert.Equal(t, 2, cards[0].Summary.ReviewCount)
	assert.Equal(t, 4.0, cards[0].Summary.Rating.Mean)
	assert.Equal(t, 0, cards[1].Summary.ReviewCount)
	assert.Equal(t, 0.0, cards[1].Summary.Rating.Mean)
}

func TestListCards_BackendDown(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	catalogStore.On("ListProducts", ctx).Return([]entity.Product{})

	cards := service.ListCards(ctx)

	assert.NotNil(t, cards)
	assert.Empty(t, cards)
	reviewStore.AssertNotCalled(t, "FetchReviews", mock.Anything, mock.Anything)
}

func TestGetDetail_Success(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	catalogStore.On("ListProducts", ctx).Return([]entity.Product{{ID: "1", Title: "Tea"}})
	reviewStore.On("FetchReviews", ctx, entity.ID("1")).Return(reviewsWithRatings(`"abc"`, "4"))
	reviewStore.On("FetchAverageRating", ctx, entity.ID("1")).Return(3.0)

	detail, err := service.GetDetail(ctx, "1")

	require.NoError(t, err)
	assert.Equal(t, "Tea", detail.Product.Title)
	assert.Equal(t, 2, detail.Panel.Summary.ReviewCount)
	assert.Equal(t, 4.0, detail.Panel.Summary.Rating.Mean)
	// Справочное значение backend не подменяет пересчитанное среднее
	assert.Equal(t, 3.0, detail.BackendAverage)
}

func TestGetDetail_NotFound(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	catalogStore.On("ListProducts", ctx).Return([]entity.Product{{ID: "1"}})

	detail, err := service.GetDetail(ctx, "404")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, detail)
}

func TestSaveProduct_CreateWhenNoID(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	form := &entity.ProductForm{Title: "  Tea ", Price: price(3.5)}
	catalogStore.On("CreateProduct", ctx, form).Return(entity.ID("101"), nil)
	kafkaProducer.On("PublishMessage", ctx, "101", mock.Anything).Return(nil)

	err := service.SaveProduct(ctx, form)

	assert.NoError(t, err)
	assert.Equal(t, "Tea", form.Title)
	assert.Equal(t, entity.ID("101"), form.ID)
	catalogStore.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	kafkaProducer.AssertExpectations(t)

	require.Len(t, kafkaProducer.Messages, 1)
	var event entity.StorefrontEvent
	require.NoError(t, json.Unmarshal(kafkaProducer.Messages[0], &event))
	assert.Equal(t, entity.EventProductSaved, event.EventType)
	assert.Equal(t, entity.ID("101"), event.ProductID)
}

func TestSaveProduct_CreateEventCarriesBackendID(t *testing.T) {
	store := newMemoryBackend()
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	service := NewCatalogService(store, store, kafkaProducer)

	ctx := context.Background()
	first := &entity.ProductForm{Title: "Tea", Price: price(3)}
	second := &entity.ProductForm{Title: "Coffee", Price: price(4)}
	require.NoError(t, service.SaveProduct(ctx, first))
	require.NoError(t, service.SaveProduct(ctx, second))

	require.NotEmpty(t, first.ID)
	require.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	require.Len(t, kafkaProducer.Messages, 2)
	for i, form := range []*entity.ProductForm{first, second} {
		var event entity.StorefrontEvent
		require.NoError(t, json.Unmarshal(kafkaProducer.Messages[i], &event))
		assert.Equal(t, form.ID, event.ProductID)
	}
	kafkaProducer.AssertCalled(t, "PublishMessage", ctx, first.ID.String(), mock.Anything)
	kafkaProducer.AssertCalled(t, "PublishMessage", ctx, second.ID.String(), mock.Anything)

	cards := service.ListCards(ctx)
	require.Len(t, cards, 2)
	assert.Equal(t, first.ID, cards[0].Product.ID)
}

func TestSaveProduct_UpdateWhenID(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	form := &entity.ProductForm{ID: "7", Title: "Tea", Price: price(3)}
	catalogStore.On("UpdateProduct", ctx, form).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, "7", mock.Anything).Return(nil)

	err := service.SaveProduct(ctx, form)

	assert.NoError(t, err)
	catalogStore.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	kafkaProducer.AssertExpectations(t)
}

func TestSaveProduct_MissingRequiredFields(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	forms := []*entity.ProductForm{
		{Title: "", Price: price(1)},
		{Title: "   ", Price: price(1)},
		{Title: "Tea"},
	}

	for _, form := range forms {
		err := service.SaveProduct(context.Background(), form)
		assert.ErrorIs(t, err, ErrValidation)
	}
	catalogStore.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestSaveProduct_BackendError(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	backendErr := errors.New("backend error")
	catalogStore.On("CreateProduct", ctx, mock.Anything).Return(entity.ID(""), backendErr)

	err := service.SaveProduct(ctx, &entity.ProductForm{Title: "Tea", Price: price(1)})

	assert.ErrorIs(t, err, backendErr)
	assert.Empty(t, kafkaProducer.Messages)
}

func TestDeleteProduct_Success(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	catalogStore.On("DeleteProduct", ctx, entity.ID("7")).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, "7", mock.Anything).Return(nil)

	err := service.DeleteProduct(ctx, "7")

	assert.NoError(t, err)
	require.Len(t, kafkaProducer.Messages, 1)
	var event entity.StorefrontEvent
	require.NoError(t, json.Unmarshal(kafkaProducer.Messages[0], &event))
	assert.Equal(t, entity.EventProductDeleted, event.EventType)
}

func TestDeleteProduct_BackendError(t *testing.T) {
	catalogStore, reviewStore, kafkaProducer := newCatalogMocks()
	service := NewCatalogService(catalogStore, reviewStore, kafkaProducer)

	ctx := context.Background()
	catalogStore.On("DeleteProduct", ctx, entity.ID("7")).Return(errors.New("not found"))

	err := service.DeleteProduct(ctx, "7")

	assert.Error(t, err)
	assert.Empty(t, kafkaProducer.Messages)
}

func TestDeleteProduct_RemovesProductAndReviews(t *testing.T) {
	store := newMemoryBackend(
		entity.Product{ID: "1", Title: "Tea"},
		entity.Product{ID: "2", Title: "Coffee"},
	)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	catalog := NewCatalogService(store, store, kafkaProducer)
	reviews := NewReviewService(store, kafkaProducer)

	ctx := context.Background()
	_, err := reviews.SubmitReview(ctx, testUserSession(), "1", entity.ReviewDraft{Rating: 5})
	require.NoError(t, err)
	require.Len(t, store.FetchReviews(ctx, "1"), 1)

	require.NoError(t, catalog.DeleteProduct(ctx, "1"))

	cards := catalog.ListCards(ctx)
	require.Len(t, cards, 1)
	assert.Equal(t, entity.ID("2"), cards[0].Product.ID)

	orphaned := store.FetchReviews(ctx, "1")
	assert.NotNil(t, orphaned)
	assert.Empty(t, orphaned)

	_, err = catalog.GetDetail(ctx, "1")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
