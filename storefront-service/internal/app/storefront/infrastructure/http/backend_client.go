package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"
)

const (
	opFetchReviews   = "fetch_reviews"
	opAverageRating  = "average_rating"
	opCreateReview   = "create_review"
	opListProducts   = "list_products"
	opCreateProduct  = "create_product"
	opUpdateProduct  = "update_product"
	opDeleteProduct  = "delete_product"
	opLogin          = "login"
	opRegister       = "register"
	opPing           = "ping"
	maxErrorBodySize = 64 << 10
)

// BackendClient клиент внешнего REST API витрины (товары, отзывы, пользователи).
// Запросы на чтение деградируют до пустого результата, запросы на запись
// возвращают ошибку вызывающему
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient создает клиент. timeout 0 отключает таймаут
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchReviews получает отзывы товара: GET /reviews/{productId}.
// При любой ошибке пишет в лог и возвращает пустой список
func (c *BackendClient) FetchReviews(ctx context.Context, productID entity.ID) []entity.Review {
	var body reviewListBody
	if err := c.do(ctx, opFetchReviews, http.MethodGet, reviewsPath(productID), nil, &body); err != nil {
		logReadFailure(err, productID, "Failed to fetch product reviews, showing none")
		return []entity.Review{}
	}

	return body.Reviews
}

// FetchAverageRating получает среднюю оценку, посчитанную backend.
// Возвращает 0 при ошибке или если backend её не прислал
func (c *BackendClient) FetchAverageRating(ctx context.Context, productID entity.ID) float64 {
	var body reviewListBody
	if err := c.do(ctx, opAverageRating, http.MethodGet, reviewsPath(productID), nil, &body); err != nil {
		logReadFailure(err, productID, "Failed to fetch average rating")
		return 0
	}

	return body.AverageRating
}

// CreateReview отправляет новый отзыв: POST /reviews
func (c *BackendClient) CreateReview(ctx context.Context, payload *entity.CreateReviewPayload) error {
	return c.do(ctx, opCreateReview, http.MethodPost, "/reviews", payload, nil)
}

// ListProducts получает каталог: GET /products. При ошибке возвращает пустой список
func (c *BackendClient) ListProducts(ctx context.Context) []entity.Product {
	var body productListBody
	if err := c.do(ctx, opListProducts, http.MethodGet, "/products", nil, &body); err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch products, showing empty catalog")
		return []entity.Product{}
	}

	return body.Products
}

// CreateProduct создает товар: POST /products и возвращает ID, присвоенный backend.
// Товар уже создан, если ответ 2xx без разбираемого тела: тогда ID пустой
func (c *BackendClient) CreateProduct(ctx context.Context, form *entity.ProductForm) (entity.ID, error) {
	var body createdProductBody
	err := c.do(ctx, opCreateProduct, http.MethodPost, "/products", newProductBody(form), &body)
	if errors.Is(err, ErrDecode) {
		logger.Warn().Err(err).Msg("Product created but response has no product id")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return body.id(), nil
}

// UpdateProduct обновляет товар: PUT /products/{id}
func (c *BackendClient) UpdateProduct(ctx context.Context, form *entity.ProductForm) error {
	return c.do(ctx, opUpdateProduct, http.MethodPut, productPath(form.ID), newProductBody(form), nil)
}

// DeleteProduct удаляет товар: DELETE /products/{id}.
// Отзывы товара backend удаляет каскадно
func (c *BackendClient) DeleteProduct(ctx context.Context, productID entity.ID) error {
	return c.do(ctx, opDeleteProduct, http.MethodDelete, productPath(productID), nil, nil)
}

// Login проверяет учётные данные на стороне backend: POST /login
func (c *BackendClient) Login(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	var body userBody
	if err := c.do(ctx, opLogin, http.MethodPost, "/login", req, &body); err != nil {
		return nil, err
	}
	return body.user(), nil
}

// Register регистрирует пользователя: POST /register
func (c *BackendClient) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	var body userBody
	if err := c.do(ctx, opRegister, http.MethodPost, "/register", req, &body); err != nil {
		return nil, err
	}
	return body.user(), nil
}

// Ping проверяет доступность backend. Ответ 4xx считается признаком живого сервера
func (c *BackendClient) Ping(ctx context.Context) error {
	err := c.do(ctx, opPing, http.MethodGet, "/products", nil, nil)
	if statusErr, ok := AsStatusError(err); ok && statusErr.Code < http.StatusInternalServerError {
		return nil
	}
	return err
}

// do выполняет один запрос к backend и разбирает JSON ответ в out (если out != nil)
func (c *BackendClient) do(ctx context.Context, operation, method, path string, in interface{}, out interface{}) error {
	timer := metrics.NewBackendTimer(operation)

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Fail("transport")
		return &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		timer.Fail("status")
		return &StatusError{
			Operation: operation,
			Code:      resp.StatusCode,
			Message:   errorMessage(resp),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		timer.Success()
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		timer.Fail("decode")
		return fmt.Errorf("%s: %w: %v", operation, ErrDecode, err)
	}

	timer.Success()
	return nil
}

// errorMessage извлекает текст ошибки: поле error или message из JSON,
// иначе сам текст ответа, иначе стандартный текст статуса
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}

	if text := strings.TrimSpace(string(data)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func logReadFailure(err error, productID entity.ID, msg string) {
	event := logger.Warn()
	if statusErr, ok := AsStatusError(err); ok && statusErr.Code == http.StatusNotFound {
		// Отзывы удалённого товара недоступны - это не сбой
		event = logger.Debug()
	} else if errors.Is(err, context.Canceled) {
		event = logger.Debug()
	}
	event.Err(err).Str("product_id", productID.String()).Msg(msg)
}

func reviewsPath(productID entity.ID) string {
	return "/reviews/" + url.PathEscape(productID.String())
}

func productPath(productID entity.ID) string {
	return "/products/" + url.PathEscape(productID.String())
}
