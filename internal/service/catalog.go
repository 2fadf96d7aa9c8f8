package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

const productCacheTTL = 60 * time.Second

// CatalogService fronts the backend catalog with a short-lived redis
// read cache on single-product lookups. Writes invalidate the cache
// and pass straight through.
type CatalogService struct {
	catalog     api.CatalogAPI
	redisClient *redis.Client
}

func NewCatalogService(catalog api.CatalogAPI, redisClient *redis.Client) *CatalogService {
	return &CatalogService{catalog: catalog, redisClient: redisClient}
}

func (s *CatalogService) ListProducts(ctx context.Context, params api.ListProductsParams) ([]model.Product, error) {
	products, err := s.catalog.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	cacheKey := "product:" + id.String()

	// Try cache
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var p model.Product
			if json.Unmarshal([]byte(cached), &p) == nil {
				return &p, nil
			}
		}
	}

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	// Write to cache
	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}

	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req api.CreateProductRequest) (*model.Product, error) {
	product, err := s.catalog.CreateProduct(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req api.UpdateProductRequest) (*model.Product, error) {
	product, err := s.catalog.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateCache(ctx, id)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *CatalogService) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	variants, err := s.catalog.ListVariants(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	return variants, nil
}

func (s *CatalogService) CreateVariant(ctx context.Context, req api.CreateVariantRequest) (*model.Variant, error) {
	variant, err := s.catalog.CreateVariant(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}
	return variant, nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, id uuid.UUID, req api.UpdateVariantRequest) (*model.Variant, error) {
	variant, err := s.catalog.UpdateVariant(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update variant: %w", err)
	}
	return variant, nil
}

func (s *CatalogService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	if err := s.catalog.DeleteVariant(ctx, id); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}

func (s *CatalogService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, "product:"+id.String())
	}
}
