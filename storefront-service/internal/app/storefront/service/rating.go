package service

import (
	"math"

	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"
)

// Aggregate считает количество валидных оценок и их среднее.
// Невалидные оценки не входят ни в числитель, ни в знаменатель
func Aggregate(reviews []entity.Review) entity.AggregateRating {
	var (
		sum   float64
		count int
	)
	for _, review := range reviews {
		value, ok := review.Rating.Value()
		if !ok {
			continue
		}
		sum += value
		count++
	}

	if count == 0 {
		return entity.AggregateRating{}
	}
	return entity.AggregateRating{Count: count, Mean: sum / float64(count)}
}

// Summarize строит сводку для показа: ReviewCount - все загруженные отзывы,
// среднее - только по валидным оценкам
func Summarize(reviews []entity.Review) entity.ReviewSummary {
	rating := Aggregate(reviews)

	if skipped := len(reviews) - rating.Count; skipped > 0 {
		metrics.InvalidRatingsSkipped.Add(float64(skipped))
	}

	return entity.ReviewSummary{
		ReviewCount: len(reviews),
		Rating:      rating,
		Stars:       RoundedStars(rating.Mean),
	}
}

// RoundedStars - количество закрашенных звёзд, округление половины вверх
func RoundedStars(mean float64) int {
	if math.IsNaN(mean) || mean <= 0 {
		return 0
	}
	stars := int(math.Floor(mean + 0.5))
	if stars > entity.MaxRating {
		return entity.MaxRating
	}
	return stars
}
