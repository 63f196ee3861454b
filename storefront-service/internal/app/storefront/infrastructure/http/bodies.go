package http

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"
)

// reviewListBody принимает ответ GET /reviews/{id} в двух формах:
// голый массив отзывов или объект {reviews: [...], averageRating: x}
type reviewListBody struct {
	Reviews       []entity.Review
	AverageRating float64
}

func (b *reviewListBody) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var records []json.RawMessage
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return err
		}
	} else {
		var obj struct {
			Reviews       []json.RawMessage `json:"reviews"`
			AverageRating json.RawMessage   `json:"averageRating"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		records = obj.Reviews
		b.AverageRating = parseNumber(obj.AverageRating)
	}

	b.Reviews = decodeReviews(records)
	return nil
}

// decodeReviews разбирает отзывы по одному: запись с неверным типом поля
// пропускается, остальные показываются
func decodeReviews(records []json.RawMessage) []entity.Review {
	reviews := make([]entity.Review, 0, len(records))
	for i, record := range records {
		record = bytes.TrimSpace(record)
		if len(record) == 0 || bytes.Equal(record, []byte("null")) {
			continue
		}

		var review entity.Review
		if err := json.Unmarshal(record, &review); err != nil {
			metrics.MalformedReviewsSkipped.Inc()
			logger.Debug().Err(err).Int("index", i).Msg("Skipping malformed review record")
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews
}

// productListBody принимает массив товаров или объект {products: [...]}
type productListBody struct {
	Products []entity.Product
}

func (b *productListBody) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &b.Products); err != nil {
			return err
		}
	} else {
		var obj struct {
			Products []entity.Product `json:"products"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		b.Products = obj.Products
	}

	if b.Products == nil {
		b.Products = []entity.Product{}
	}
	return nil
}

// userBody принимает пользователя как есть или обёрнутого в {user: {...}}
type userBody struct {
	entity.User
	Nested *entity.User `json:"user"`
}

func (b *userBody) user() *entity.User {
	if b.Nested != nil {
		return b.Nested
	}
	u := b.User
	return &u
}

// createdProductBody принимает созданный товар как есть или в {product: {...}}
type createdProductBody struct {
	entity.Product
	Nested *entity.Product `json:"product"`
}

func (b *createdProductBody) id() entity.ID {
	if b.Nested != nil {
		return b.Nested.ID
	}
	return b.Product.ID
}

// productBody - тело POST/PUT /products
type productBody struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       entity.Price `json:"price"`
	Category    string       `json:"category"`
	ImageURL    string       `json:"image,omitempty"`
}

func newProductBody(form *entity.ProductForm) *productBody {
	body := &productBody{
		Title:       strings.TrimSpace(form.Title),
		Description: form.Description,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
	}
	if form.Price != nil {
		body.Price = *form.Price
	}
	return body
}

// parseNumber разбирает число или числовую строку, всё остальное даёт 0
func parseNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var v float64
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		v = parsed
	} else if json.Unmarshal(raw, &v) != nil {
		return 0
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
