package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/infrastructure"
	backend "storefront/storefront-service/internal/app/storefront/infrastructure/http"

	"github.com/go-playground/validator/v10"
)

const submitFailedMessage = "Failed to submit review"

// ReviewService ведёт панель отзывов товара и процесс отправки отзыва.
// Для каждой пары (сессия, товар) одновременно выполняется не более одной отправки
type ReviewService struct {
	reviewStore   infrastructure.ReviewStore
	kafkaProducer infrastructure.MessagePublisher
	validator     *validator.Validate

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewStore infrastructure.ReviewStore,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewStore:   reviewStore,
		kafkaProducer: kafkaProducer,
		validator:     validator.New(),
		inFlight:      make(map[string]struct{}),
	}
}

// LoadPanel загружает отзывы товара и пересчитывает сводку.
// Сбой backend даёт пустую панель с нулевым рейтингом
func (s *ReviewService) LoadPanel(ctx context.Context, productID entity.ID) entity.ReviewPanel {
	reviews := s.reviewStore.FetchReviews(ctx, productID)
	if reviews == nil {
		reviews = []entity.Review{}
	}

	return entity.ReviewPanel{
		ProductID: productID,
		Reviews:   reviews,
		Summary:   Summarize(reviews),
	}
}

// SubmitReview отправляет отзыв от имени пользователя сессии
// 1. Подставляет оценку по умолчанию и проверяет шкалу
// 2. Отправляет POST /reviews, один раз, без повторов
// 3. При успехе заново загружает весь список и возвращает новую панель
// 4. Отправляет событие REVIEW_SUBMITTED в Kafka
func (s *ReviewService) SubmitReview(ctx context.Context, session *entity.Session, productID entity.ID, draft entity.ReviewDraft) (*entity.ReviewPanel, error) {
	if session == nil {
		return nil, ErrUnauthenticated
	}

	submitted := draft
	if submitted.Rating == 0 {
		submitted.Rating = entity.DefaultRating
	}
	if err := s.validator.Struct(submitted); err != nil {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, entity.MinRating, entity.MaxRating)
	}

	release, ok := s.acquire(session.ID, productID)
	if !ok {
		metrics.ReviewsSubmitted.WithLabelValues("busy").Inc()
		return nil, ErrSubmissionInProgress
	}
	defer release()

	payload := &entity.CreateReviewPayload{
		UserID:    session.User.ID,
		ProductID: productID,
		Rating:    submitted.Rating,
		Text:      submitted.Text,
	}

	if err := s.reviewStore.CreateReview(ctx, payload); err != nil {
		metrics.ReviewsSubmitted.WithLabelValues("failed").Inc()
		logger.Warn().
			Err(err).
			Str("product_id", productID.String()).
			Str("user_id", session.User.ID.String()).
			Msg("Review submission rejected")

		return nil, &SubmitError{
			Message: submitErrorMessage(err),
			Draft:   draft,
			Err:     err,
		}
	}

	metrics.ReviewsSubmitted.WithLabelValues("success").Inc()
	metrics.ReviewsRating.Observe(float64(submitted.Rating))

	event := entity.StorefrontEvent{
		EventType: entity.EventReviewSubmitted,
		ProductID: productID,
		UserID:    session.User.ID,
		Rating:    submitted.Rating,
		Timestamp: time.Now(),
	}
	if err := publishEvent(ctx, s.kafkaProducer, event); err != nil {
		// Отзыв уже сохранён, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("product_id", productID.String()).Msg("Failed to publish review submitted event")
	}

	panel := s.LoadPanel(ctx, productID)
	return &panel, nil
}

// acquire помечает пару (сессия, товар) как отправляющую.
// Возвращает false, если отправка для этой пары уже идёт
func (s *ReviewService) acquire(sessionID string, productID entity.ID) (func(), bool) {
	key := sessionID + "/" + productID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[key]; busy {
		return nil, false
	}
	s.inFlight[key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, true
}

// submitErrorMessage берёт текст ошибки из ответа backend, иначе текст статуса
func submitErrorMessage(err error) string {
	if statusErr, ok := backend.AsStatusError(err); ok {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		if text := http.StatusText(statusErr.Code); text != "" {
			return text
		}
	}
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) {
		return "Backend is unavailable"
	}
	return submitFailedMessage
}

// publishEvent отправляет событие витрины в Kafka; ключ - ID товара
func publishEvent(ctx context.Context, publisher infrastructure.MessagePublisher, event entity.StorefrontEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal storefront event: %w", err)
	}

	if err := publisher.PublishMessage(ctx, event.ProductID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
