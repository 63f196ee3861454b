package service

import (
	"context"

	"storefront/storefront-service/internal/app/storefront/entity"
)

type ReviewServiceInterface interface {
	LoadPanel(ctx context.Context, productID entity.ID) entity.ReviewPanel
	SubmitReview(ctx context.Context, session *entity.Session, productID entity.ID, draft entity.ReviewDraft) (*entity.ReviewPanel, error)
}

type CatalogServiceInterface interface {
	ListCards(ctx context.Context) []entity.ProductCard
	GetDetail(ctx context.Context, productID entity.ID) (*entity.ProductDetail, error)
	SaveProduct(ctx context.Context, form *entity.ProductForm) error
	DeleteProduct(ctx context.Context, productID entity.ID) error
}

type SessionServiceInterface interface {
	Restore(ctx context.Context, sessionID string) (*entity.Session, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}
