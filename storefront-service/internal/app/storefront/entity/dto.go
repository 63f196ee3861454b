package entity

// LoginRequest - форма входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest - форма регистрации, уходит в backend как есть
type RegisterRequest struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// AuthResponse - токен сессии и текущий пользователь
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProductForm - форма создания/редактирования товара.
// Пустой ID означает создание, иначе обновление
type ProductForm struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Price       *Price `json:"price" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image,omitempty"`
}

// ReviewDraft - незавершённый ввод формы отзыва.
// Rating 0 означает "не выбрано" и заменяется на DefaultRating
type ReviewDraft struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Text   string `json:"text"`
}

// CreateReviewPayload - тело POST /reviews для backend
type CreateReviewPayload struct {
	UserID    ID     `json:"user_id"`
	ProductID ID     `json:"product_id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

// ReviewPanel - список отзывов товара вместе с пересчитанной сводкой.
// Заменяется целиком после каждой загрузки
type ReviewPanel struct {
	ProductID ID            `json:"product_id"`
	Reviews   []Review      `json:"reviews"`
	Summary   ReviewSummary `json:"summary"`
}

// ProductCard - карточка товара в сетке каталога
type ProductCard struct {
	Product Product       `json:"product"`
	Summary ReviewSummary `json:"summary"`
}

// ProductDetail - карточка товара с отзывами.
// BackendAverage носит справочный характер, на экране используется Summary
type ProductDetail struct {
	Product        Product     `json:"product"`
	Panel          ReviewPanel `json:"panel"`
	BackendAverage float64     `json:"backend_average"`
}

// ProductListResponse - ответ со списком карточек
type ProductListResponse struct {
	Products []ProductCard `json:"products"`
	Total    int           `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SubmitErrorResponse - ошибка отправки отзыва вместе с сохранённым вводом
type SubmitErrorResponse struct {
	Error string      `json:"error"`
	Draft ReviewDraft `json:"draft"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
