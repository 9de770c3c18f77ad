package forecast

import (
	"context"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/obs"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/sales"
)

type repository interface {
	Upsert(ctx context.Context, salesmanID string, in SaveInput) (Forecast, error)
	List(ctx context.Context, salesmanID string, year int) ([]Forecast, error)
}

type salesmanFinder interface {
	SalesmanByIdentity(ctx context.Context, uid, email string) (sales.Salesman, error)
}

// Service implements the monthly forecast workflow.
type Service struct {
	repo  repository
	sales salesmanFinder
}

// NewService constructs a Service.
func NewService(repo repository, sales salesmanFinder) *Service {
	return &Service{repo: repo, sales: sales}
}

// Save upserts the caller's forecast for one month.
func (s *Service) Save(ctx context.Context, uid, email string, in SaveInput) (Forecast, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Forecast{}, err
	}
	salesman, err := s.sales.SalesmanByIdentity(ctx, uid, email)
	if err != nil {
		return Forecast{}, common.ErrForbidden("caller is not a registered salesman")
	}
	f, err := s.repo.Upsert(ctx, salesman.ID, in)
	if err != nil {
		return Forecast{}, err
	}
	if obs.ForecastsSavedTotal != nil {
		obs.ForecastsSavedTotal.Inc()
	}
	return f, nil
}

// Mine lists the caller's forecasts, optionally filtered by year.
func (s *Service) Mine(ctx context.Context, uid, email string, year int) ([]Forecast, error) {
	salesman, err := s.sales.SalesmanByIdentity(ctx, uid, email)
	if err != nil {
		return nil, common.ErrForbidden("caller is not a registered salesman")
	}
	forecasts, err := s.repo.List(ctx, salesman.ID, year)
	if err != nil {
		return nil, err
	}
	if forecasts == nil {
		forecasts = []Forecast{}
	}
	return forecasts, nil
}

// All lists forecasts across salesmen for the admin console.
func (s *Service) All(ctx context.Context, salesmanID string, year int) ([]Forecast, error) {
	forecasts, err := s.repo.List(ctx, salesmanID, year)
	if err != nil {
		return nil, err
	}
	if forecasts == nil {
		forecasts = []Forecast{}
	}
	return forecasts, nil
}
