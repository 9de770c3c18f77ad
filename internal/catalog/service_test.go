package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

type fakeRepo struct {
	products  []Product
	listCalls int
}

func (f *fakeRepo) ListProducts(ctx context.Context) ([]Product, error) {
	f.listCalls++
	return f.products, nil
}

func (f *fakeRepo) ListPackingByName(ctx context.Context, name string) ([]Product, error) {
	var out []Product
	for _, p := range f.products {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetProduct(ctx context.Context, id string) (Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, common.ErrNotFound("product not found")
}

func (f *fakeRepo) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	p := Product{ID: "new", Name: in.Name}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeRepo) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	return Product{ID: id, Name: in.Name}, nil
}

func (f *fakeRepo) DeleteProduct(ctx context.Context, id string) error {
	return nil
}

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func sampleProducts() []Product {
	return []Product{
		{
			ID:                   "p1",
			Name:                 "NexGrow Boost",
			PackingSize:          "250ml x 24",
			BottlesPerCase:       24,
			MOQ:                  5,
			DealerPricePerBottle: decimal.NewFromInt(120),
			GSTPercentage:        decimal.NewFromInt(18),
		},
		{
			ID:                   "p2",
			Name:                 "NexGrow Boost",
			PackingSize:          "1L x 12",
			BottlesPerCase:       12,
			DealerPricePerBottle: decimal.NewFromInt(400),
			GSTPercentage:        decimal.NewFromInt(18),
		},
	}
}

func TestQuoteComputesCasePriceWithGST(t *testing.T) {
	cache, _ := testCache(t)
	svc := NewService(&fakeRepo{products: sampleProducts()}, cache)

	quote, err := svc.Quote(context.Background(), "p1", "5")
	require.NoError(t, err)

	// 24 bottles x 120 = 2880 per case, 5 cases = 14400, GST 18% = 2592.
	require.True(t, quote.UnitPrice.Equal(decimal.NewFromInt(2880)), "unit price %s", quote.UnitPrice)
	require.True(t, quote.TotalPrice.Equal(decimal.NewFromInt(14400)), "total %s", quote.TotalPrice)
	require.True(t, quote.GSTAmount.Equal(decimal.NewFromInt(2592)), "gst %s", quote.GSTAmount)
	require.True(t, quote.TotalWithGST.Equal(decimal.NewFromInt(16992)))
	require.Equal(t, "14,400", quote.Display.TotalPrice)
}

func TestQuoteToleratesGarbageQuantity(t *testing.T) {
	cache, _ := testCache(t)
	svc := NewService(&fakeRepo{products: sampleProducts()}, cache)

	quote, err := svc.Quote(context.Background(), "p1", "abc")
	require.NoError(t, err)
	require.True(t, quote.TotalPrice.IsZero())
	require.True(t, quote.GSTAmount.IsZero())
}

func TestQuoteUnknownProduct(t *testing.T) {
	cache, _ := testCache(t)
	svc := NewService(&fakeRepo{}, cache)

	_, err := svc.Quote(context.Background(), "missing", "5")
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestListProductsServedFromCache(t *testing.T) {
	cache, _ := testCache(t)
	repo := &fakeRepo{products: sampleProducts()}
	svc := NewService(repo, cache)

	first, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Equal(t, 1, repo.listCalls)
}

func TestCreateInvalidatesCache(t *testing.T) {
	cache, mr := testCache(t)
	repo := &fakeRepo{products: sampleProducts()}
	svc := NewService(repo, cache)

	_, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.True(t, mr.Exists("catalog:products:list"))

	_, err = svc.CreateProduct(context.Background(), ProductInput{Name: "NexGrow Shield"})
	require.NoError(t, err)
	require.False(t, mr.Exists("catalog:products:list"))
}

func TestCreateRejectsMissingName(t *testing.T) {
	cache, _ := testCache(t)
	svc := NewService(&fakeRepo{}, cache)

	_, err := svc.CreateProduct(context.Background(), ProductInput{})
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestPackingHandler(t *testing.T) {
	cache, _ := testCache(t)
	svc := NewService(&fakeRepo{products: sampleProducts()}, cache)
	h := &Handler{Service: svc}

	r := chi.NewRouter()
	r.Get("/orders/products/{name}/packing", h.Packing)

	req := httptest.NewRequest(http.MethodGet, "/orders/products/NexGrow%20Boost/packing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "250ml x 24")
	require.Contains(t, rec.Body.String(), "1L x 12")
}

func TestPackingHandlerUnknownName(t *testing.T) {
	cache, _ := testCache(t)
	svc := NewService(&fakeRepo{}, cache)
	h := &Handler{Service: svc}

	r := chi.NewRouter()
	r.Get("/orders/products/{name}/packing", h.Packing)

	req := httptest.NewRequest(http.MethodGet, "/orders/products/Unknown/packing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
