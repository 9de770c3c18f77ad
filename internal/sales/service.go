package sales

import (
	"context"
	"strings"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

type directory interface {
	ListSalesmen(ctx context.Context) ([]Salesman, error)
	ListSalesmenByState(ctx context.Context, state string) ([]Salesman, error)
	ListSalesmenByManager(ctx context.Context, managerID string) ([]Salesman, error)
	GetSalesman(ctx context.Context, id string) (Salesman, error)
	FindSalesman(ctx context.Context, uid, email string) (Salesman, error)
	CreateSalesman(ctx context.Context, in SalesmanInput) (Salesman, error)
	UpdateSalesman(ctx context.Context, id string, in SalesmanInput) (Salesman, error)
	DeleteSalesman(ctx context.Context, id string) error

	ListManagers(ctx context.Context) ([]SalesManager, error)
	FindManager(ctx context.Context, uid, email string) (SalesManager, error)
	CreateManager(ctx context.Context, in ManagerInput) (SalesManager, error)
	UpdateManager(ctx context.Context, id string, in ManagerInput) (SalesManager, error)
	DeleteManager(ctx context.Context, id string) error

	ListDirectors(ctx context.Context) ([]Director, error)
	FindDirector(ctx context.Context, uid, email string) (Director, error)
	CreateDirector(ctx context.Context, in DirectorInput) (Director, error)
	UpdateDirector(ctx context.Context, id string, in DirectorInput) (Director, error)
	DeleteDirector(ctx context.Context, id string) error

	ListDealers(ctx context.Context) ([]Dealer, error)
	ListDealersBySalesman(ctx context.Context, salesmanID string) ([]Dealer, error)
	GetDealer(ctx context.Context, id string) (Dealer, error)
	CreateDealer(ctx context.Context, in DealerInput) (Dealer, error)
	UpdateDealer(ctx context.Context, id string, in DealerInput) (Dealer, error)
	DeleteDealer(ctx context.Context, id string) error
}

// Service answers directory lookups for the order form and resolves
// caller identities against all three role tables.
type Service struct {
	repo directory
}

// NewService constructs a Service.
func NewService(repo directory) *Service {
	return &Service{repo: repo}
}

// SalesmenByState lists the salesmen assigned to a state.
func (s *Service) SalesmenByState(ctx context.Context, state string) ([]Salesman, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return s.repo.ListSalesmen(ctx)
	}
	return s.repo.ListSalesmenByState(ctx, state)
}

// SalesmenByManager lists the salesmen reporting to a manager.
func (s *Service) SalesmenByManager(ctx context.Context, managerID string) ([]Salesman, error) {
	return s.repo.ListSalesmenByManager(ctx, managerID)
}

// ManagerByIdentity resolves a sales manager record from auth claims.
func (s *Service) ManagerByIdentity(ctx context.Context, uid, email string) (SalesManager, error) {
	return s.repo.FindManager(ctx, uid, email)
}

// SalesmanByIdentity resolves a salesman record from auth claims.
func (s *Service) SalesmanByIdentity(ctx context.Context, uid, email string) (Salesman, error) {
	return s.repo.FindSalesman(ctx, uid, email)
}

// DealersBySalesman lists the dealers assigned to a salesman.
func (s *Service) DealersBySalesman(ctx context.Context, salesmanID string) ([]Dealer, error) {
	salesmanID = strings.TrimSpace(salesmanID)
	if salesmanID == "" {
		return nil, common.ErrBadRequest("salesman id is required")
	}
	return s.repo.ListDealersBySalesman(ctx, salesmanID)
}

// Me resolves a caller profile from uid/email, checking directors first,
// then managers, then salesmen, so a person listed in two tables gets the
// widest role.
func (s *Service) Me(ctx context.Context, uid, email string) (Profile, error) {
	uid = strings.TrimSpace(uid)
	email = strings.TrimSpace(email)
	if uid == "" && email == "" {
		return Profile{}, common.ErrBadRequest("uid or email is required")
	}

	if d, err := s.repo.FindDirector(ctx, uid, email); err == nil {
		return Profile{ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone, Role: RoleDirector, IsAdmin: true}, nil
	}
	if m, err := s.repo.FindManager(ctx, uid, email); err == nil {
		return Profile{ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone, State: m.State, Role: RoleSalesManager}, nil
	}
	if sm, err := s.repo.FindSalesman(ctx, uid, email); err == nil {
		return Profile{ID: sm.ID, Name: sm.Name, Email: sm.Email, Phone: sm.Phone, State: sm.State, Role: RoleSalesman, IsAdmin: sm.IsAdmin}, nil
	}
	return Profile{}, common.ErrNotFound("no matching user")
}

// ResolveIdentity implements auth.IdentityResolver on top of Me.
func (s *Service) ResolveIdentity(ctx context.Context, uid, email string) (common.Identity, error) {
	profile, err := s.Me(ctx, uid, email)
	if err != nil {
		return common.Identity{}, err
	}
	return common.Identity{UID: uid, Email: profile.Email, Role: profile.Role, Admin: profile.IsAdmin || profile.Role == RoleDirector}, nil
}

// ListSalesmen exposes the full roster for admin screens.
func (s *Service) ListSalesmen(ctx context.Context) ([]Salesman, error) {
	return s.repo.ListSalesmen(ctx)
}

// GetSalesman fetches one salesman.
func (s *Service) GetSalesman(ctx context.Context, id string) (Salesman, error) {
	return s.repo.GetSalesman(ctx, id)
}

// CreateSalesman validates and stores a salesman.
func (s *Service) CreateSalesman(ctx context.Context, in SalesmanInput) (Salesman, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Salesman{}, err
	}
	return s.repo.CreateSalesman(ctx, in)
}

// UpdateSalesman validates and overwrites a salesman.
func (s *Service) UpdateSalesman(ctx context.Context, id string, in SalesmanInput) (Salesman, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Salesman{}, err
	}
	return s.repo.UpdateSalesman(ctx, id, in)
}

// DeleteSalesman removes a salesman.
func (s *Service) DeleteSalesman(ctx context.Context, id string) error {
	return s.repo.DeleteSalesman(ctx, id)
}

// ListManagers exposes the manager roster.
func (s *Service) ListManagers(ctx context.Context) ([]SalesManager, error) {
	return s.repo.ListManagers(ctx)
}

// CreateManager validates and stores a sales manager.
func (s *Service) CreateManager(ctx context.Context, in ManagerInput) (SalesManager, error) {
	if err := common.ValidateStruct(in); err != nil {
		return SalesManager{}, err
	}
	return s.repo.CreateManager(ctx, in)
}

// UpdateManager validates and overwrites a sales manager.
func (s *Service) UpdateManager(ctx context.Context, id string, in ManagerInput) (SalesManager, error) {
	if err := common.ValidateStruct(in); err != nil {
		return SalesManager{}, err
	}
	return s.repo.UpdateManager(ctx, id, in)
}

// DeleteManager removes a sales manager.
func (s *Service) DeleteManager(ctx context.Context, id string) error {
	return s.repo.DeleteManager(ctx, id)
}

// ListDirectors exposes the director roster.
func (s *Service) ListDirectors(ctx context.Context) ([]Director, error) {
	return s.repo.ListDirectors(ctx)
}

// CreateDirector validates and stores a director.
func (s *Service) CreateDirector(ctx context.Context, in DirectorInput) (Director, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Director{}, err
	}
	return s.repo.CreateDirector(ctx, in)
}

// UpdateDirector validates and overwrites a director.
func (s *Service) UpdateDirector(ctx context.Context, id string, in DirectorInput) (Director, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Director{}, err
	}
	return s.repo.UpdateDirector(ctx, id, in)
}

// DeleteDirector removes a director.
func (s *Service) DeleteDirector(ctx context.Context, id string) error {
	return s.repo.DeleteDirector(ctx, id)
}

// ListDealers exposes the dealer roster.
func (s *Service) ListDealers(ctx context.Context) ([]Dealer, error) {
	return s.repo.ListDealers(ctx)
}

// GetDealer fetches one dealer.
func (s *Service) GetDealer(ctx context.Context, id string) (Dealer, error) {
	return s.repo.GetDealer(ctx, id)
}

// CreateDealer validates and stores a dealer.
func (s *Service) CreateDealer(ctx context.Context, in DealerInput) (Dealer, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Dealer{}, err
	}
	return s.repo.CreateDealer(ctx, in)
}

// UpdateDealer validates and overwrites a dealer.
func (s *Service) UpdateDealer(ctx context.Context, id string, in DealerInput) (Dealer, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Dealer{}, err
	}
	return s.repo.UpdateDealer(ctx, id, in)
}

// DeleteDealer removes a dealer.
func (s *Service) DeleteDealer(ctx context.Context, id string) error {
	return s.repo.DeleteDealer(ctx, id)
}
