package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Шкала оценок звёздного виджета
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3 // середина шкалы, подставляется если оценка не выбрана
)

// legacyDisplayNameKey - безымянная вычисляемая колонка, которую backend
// отдаёт вместо имени автора отзыва
const legacyDisplayNameKey = `concat (first_name, " ", last_name)`

// ID - непрозрачный идентификатор backend. Приходит строкой или числом
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}
		*id = ID(n.String())
	}
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Rating хранит сырое значение оценки как его прислал backend:
// число, строку, null или мусор. Приведение выполняется лениво через Value
type Rating struct {
	raw json.RawMessage
}

// NewRating создаёт оценку из целого значения
func NewRating(v int) Rating {
	return Rating{raw: json.RawMessage(strconv.Itoa(v))}
}

// RawRating создаёт оценку из произвольного JSON фрагмента
func RawRating(raw string) Rating {
	return Rating{raw: json.RawMessage(raw)}
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	r.raw = append(r.raw[:0], data...)
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// Value приводит оценку к числу. ok=false если значение отсутствует,
// не является числом или числовой строкой, не конечно или вне шкалы 1..5
func (r Rating) Value() (float64, bool) {
	data := bytes.TrimSpace(r.raw)
	if len(data) == 0 {
		return 0, false
	}

	var v float64
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	} else if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinRating || v > MaxRating {
		return 0, false
	}
	return v, true
}

// Price - цена без валюты. Backend может отдавать DECIMAL строкой
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("price must be a number: %q", s)
		}
		*p = Price(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("price must be a number: %w", err)
	}
	*p = Price(v)
	return nil
}

// Review - отзыв о товаре. После создания в клиенте не изменяется
type Review struct {
	ID          ID     `json:"id"`
	ProductID   ID     `json:"product_id"`
	UserID      ID     `json:"user_id"`
	Rating      Rating `json:"rating"`
	Text        string `json:"text,omitempty"`
	DisplayName string `json:"display_name"`
}

// UnmarshalJSON принимает имя автора из display_name, displayName,
// legacy-колонки или собирает его из first_name/last_name
func (r *Review) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID               ID      `json:"id"`
		ProductID        ID      `json:"product_id"`
		UserID           ID      `json:"user_id"`
		Rating           Rating  `json:"rating"`
		Text             *string `json:"text"`
		DisplayName      string  `json:"display_name"`
		DisplayNameCamel string  `json:"displayName"`
		FirstName        string  `json:"first_name"`
		LastName         string  `json:"last_name"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = Review{
		ID:        wire.ID,
		ProductID: wire.ProductID,
		UserID:    wire.UserID,
		Rating:    wire.Rating,
	}
	if wire.Text != nil {
		r.Text = *wire.Text
	}

	switch {
	case wire.DisplayName != "":
		r.DisplayName = wire.DisplayName
	case wire.DisplayNameCamel != "":
		r.DisplayName = wire.DisplayNameCamel
	default:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err == nil {
			if raw, ok := fields[legacyDisplayNameKey]; ok {
				var name string
				if json.Unmarshal(raw, &name) == nil {
					r.DisplayName = name
				}
			}
		}
		if r.DisplayName == "" {
			r.DisplayName = FullName(wire.FirstName, wire.LastName)
		}
	}

	return nil
}

// FullName форматирует имя как "first last"
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Product - товар каталога. Удаление каскадно удаляет отзывы на стороне backend
type Product struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image,omitempty"`
}

// User - пользователь витрины. Пароль никогда не хранится в клиенте
type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Session - запись о текущем пользователе, привязанная к одной вкладке браузера
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// AggregateRating - производная пара (количество валидных оценок, среднее).
// Не сохраняется, пересчитывается при каждой загрузке
type AggregateRating struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// ReviewSummary - то, что показывается пользователю: ReviewCount считает все
// загруженные отзывы, а Rating.Count только отзывы с валидной оценкой
type ReviewSummary struct {
	ReviewCount int             `json:"review_count"`
	Rating      AggregateRating `json:"rating"`
	Stars       int             `json:"stars"`
}

// StorefrontEvent - событие витрины для Kafka
type StorefrontEvent struct {
	EventType string    `json:"event_type"` // REVIEW_SUBMITTED, PRODUCT_SAVED, PRODUCT_DELETED
	ProductID ID        `json:"product_id"`
	UserID    ID        `json:"user_id,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventReviewSubmitted = "REVIEW_SUBMITTED"
	EventProductSaved    = "PRODUCT_SAVED"
	EventProductDeleted  = "PRODUCT_DELETED"
)
