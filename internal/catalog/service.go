package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

const cachePrefix = "catalog:"

type repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListPackingByName(ctx context.Context, name string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Service orchestrates product reads, price quotes, and caching.
type Service struct {
	repo  repository
	cache *Cache
}

// NewService constructs a Service.
func NewService(repo repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ListProducts returns the full catalog, served from cache when warm.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	key := cachePrefix + "products:list"
	var cached []Product
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	_ = s.cache.SetJSON(ctx, key, products)
	return products, nil
}

// ListPacking returns the packing variants registered under a product name.
func (s *Service) ListPacking(ctx context.Context, name string) ([]PackingOption, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrBadRequest("product name is required")
	}
	key := cachePrefix + "packing:" + name
	var cached []PackingOption
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	rows, err := s.repo.ListPackingByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound("no products found with that name")
	}
	options := make([]PackingOption, 0, len(rows))
	for _, p := range rows {
		options = append(options, PackingOption{
			ID:             p.ID,
			Name:           p.Name,
			PackingSize:    p.PackingSize,
			BottlesPerCase: p.BottlesPerCase,
			BottleVolume:   p.BottleVolume,
			MOQ:            p.MOQ,
		})
	}
	_ = s.cache.SetJSON(ctx, key, options)
	return options, nil
}

// Quote prices a quantity of cases for a product. The raw quantity may
// arrive as any numeric shape; anything unparseable quotes as zero.
func (s *Service) Quote(ctx context.Context, productID string, rawQuantity string) (PriceQuote, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return PriceQuote{}, common.ErrBadRequest("product id is required")
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return PriceQuote{}, err
	}

	quantity, _ := pricing.Coerce(rawQuantity)
	if quantity.Sign() < 0 {
		quantity = decimal.Zero
	}

	unit := product.DealerPricePerBottle.Mul(decimal.NewFromInt(int64(product.BottlesPerCase)))
	total := unit.Mul(quantity)
	gst := pricing.GST(total, product.GSTPercentage)

	return PriceQuote{
		ProductID:     product.ID,
		Quantity:      quantity,
		UnitPrice:     unit,
		TotalPrice:    total,
		GSTPercentage: product.GSTPercentage,
		GSTAmount:     gst,
		TotalWithGST:  total.Add(gst),
		Display: QuoteDisplay{
			UnitPrice:    pricing.INR(unit),
			TotalPrice:   pricing.INR(total),
			GSTAmount:    pricing.INR(gst),
			TotalWithGST: pricing.INR(total.Add(gst)),
		},
	}, nil
}

// GetProduct fetches a single product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// CreateProduct stores a new product and invalidates catalog caches.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	if err := validateInput(in); err != nil {
		return Product{}, err
	}
	product, err := s.repo.CreateProduct(ctx, in)
	if err != nil {
		return Product{}, err
	}
	_ = s.cache.Invalidate(ctx, cachePrefix)
	return product, nil
}

// UpdateProduct overwrites a product and invalidates catalog caches.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	if err := validateInput(in); err != nil {
		return Product{}, err
	}
	product, err := s.repo.UpdateProduct(ctx, id, in)
	if err != nil {
		return Product{}, err
	}
	_ = s.cache.Invalidate(ctx, cachePrefix)
	return product, nil
}

// DeleteProduct removes a product and invalidates catalog caches.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func validateInput(in ProductInput) error {
	if err := common.ValidateStruct(in); err != nil {
		return err
	}
	if in.GSTPercentage.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return common.ErrValidation(fmt.Sprintf("gst_percentage %s exceeds 100", in.GSTPercentage.Decimal), map[string]any{"field": "gst_percentage"})
	}
	return nil
}
