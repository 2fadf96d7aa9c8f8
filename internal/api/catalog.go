package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type CatalogAPI interface {
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	CreateVariant(ctx context.Context, req CreateVariantRequest) (*model.Variant, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, req UpdateVariantRequest) (*model.Variant, error)
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

var _ CatalogAPI = (*Client)(nil)

type ListProductsParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

func (p ListProductsParams) query() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

type CreateVariantRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	SKU       string    `json:"sku"`
	Stock     int       `json:"stock"`
}

type UpdateVariantRequest struct {
	Color *string `json:"color,omitempty"`
	Size  *string `json:"size,omitempty"`
	SKU   *string `json:"sku,omitempty"`
	Stock *int    `json:"stock,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products"+params.query(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodPost, "/products", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil)
}

func (c *Client) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	var variants []model.Variant
	if err := c.do(ctx, http.MethodGet, "/products/"+productID.String()+"/variants", nil, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (c *Client) CreateVariant(ctx context.Context, req CreateVariantRequest) (*model.Variant, error) {
	var v model.Variant
	if err := c.do(ctx, http.MethodPost, "/variants", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateVariant(ctx context.Context, id uuid.UUID, req UpdateVariantRequest) (*model.Variant, error) {
	var v model.Variant
	if err := c.do(ctx, http.MethodPut, "/variants/"+id.String(), req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/variants/"+id.String(), nil, nil)
}
