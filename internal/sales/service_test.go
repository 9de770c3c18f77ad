package sales

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

type fakeDirectory struct {
	salesmen  []Salesman
	managers  []SalesManager
	directors []Director
	dealers   []Dealer
}

func (f *fakeDirectory) ListSalesmen(ctx context.Context) ([]Salesman, error) {
	return f.salesmen, nil
}

func (f *fakeDirectory) ListSalesmenByState(ctx context.Context, state string) ([]Salesman, error) {
	var out []Salesman
	for _, s := range f.salesmen {
		if s.State == state {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDirectory) ListSalesmenByManager(ctx context.Context, managerID string) ([]Salesman, error) {
	var out []Salesman
	for _, s := range f.salesmen {
		if s.ManagerID != nil && *s.ManagerID == managerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetSalesman(ctx context.Context, id string) (Salesman, error) {
	for _, s := range f.salesmen {
		if s.ID == id {
			return s, nil
		}
	}
	return Salesman{}, common.ErrNotFound("salesman not found")
}

func (f *fakeDirectory) FindSalesman(ctx context.Context, uid, email string) (Salesman, error) {
	for _, s := range f.salesmen {
		if (uid != "" && s.UID == uid) || (email != "" && s.Email == email) {
			return s, nil
		}
	}
	return Salesman{}, common.ErrNotFound("salesman not found")
}

func (f *fakeDirectory) CreateSalesman(ctx context.Context, in SalesmanInput) (Salesman, error) {
	s := Salesman{ID: "new", Name: in.Name, Email: in.Email, State: in.State, IsAdmin: in.IsAdmin}
	f.salesmen = append(f.salesmen, s)
	return s, nil
}

func (f *fakeDirectory) UpdateSalesman(ctx context.Context, id string, in SalesmanInput) (Salesman, error) {
	return Salesman{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeDirectory) DeleteSalesman(ctx context.Context, id string) error { return nil }

func (f *fakeDirectory) ListManagers(ctx context.Context) ([]SalesManager, error) {
	return f.managers, nil
}

func (f *fakeDirectory) FindManager(ctx context.Context, uid, email string) (SalesManager, error) {
	for _, m := range f.managers {
		if (uid != "" && m.UID == uid) || (email != "" && m.Email == email) {
			return m, nil
		}
	}
	return SalesManager{}, common.ErrNotFound("sales manager not found")
}

func (f *fakeDirectory) CreateManager(ctx context.Context, in ManagerInput) (SalesManager, error) {
	return SalesManager{ID: "new", Name: in.Name, Email: in.Email}, nil
}

func (f *fakeDirectory) UpdateManager(ctx context.Context, id string, in ManagerInput) (SalesManager, error) {
	return SalesManager{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeDirectory) DeleteManager(ctx context.Context, id string) error { return nil }

func (f *fakeDirectory) ListDirectors(ctx context.Context) ([]Director, error) {
	return f.directors, nil
}

func (f *fakeDirectory) FindDirector(ctx context.Context, uid, email string) (Director, error) {
	for _, d := range f.directors {
		if (uid != "" && d.UID == uid) || (email != "" && d.Email == email) {
			return d, nil
		}
	}
	return Director{}, common.ErrNotFound("director not found")
}

func (f *fakeDirectory) CreateDirector(ctx context.Context, in DirectorInput) (Director, error) {
	return Director{ID: "new", Name: in.Name, Email: in.Email}, nil
}

func (f *fakeDirectory) UpdateDirector(ctx context.Context, id string, in DirectorInput) (Director, error) {
	return Director{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeDirectory) DeleteDirector(ctx context.Context, id string) error { return nil }

func (f *fakeDirectory) ListDealers(ctx context.Context) ([]Dealer, error) {
	return f.dealers, nil
}

func (f *fakeDirectory) ListDealersBySalesman(ctx context.Context, salesmanID string) ([]Dealer, error) {
	var out []Dealer
	for _, d := range f.dealers {
		if d.SalesmanID != nil && *d.SalesmanID == salesmanID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetDealer(ctx context.Context, id string) (Dealer, error) {
	for _, d := range f.dealers {
		if d.ID == id {
			return d, nil
		}
	}
	return Dealer{}, common.ErrNotFound("dealer not found")
}

func (f *fakeDirectory) CreateDealer(ctx context.Context, in DealerInput) (Dealer, error) {
	return Dealer{ID: "new", Name: in.Name}, nil
}

func (f *fakeDirectory) UpdateDealer(ctx context.Context, id string, in DealerInput) (Dealer, error) {
	return Dealer{ID: id, Name: in.Name}, nil
}

func (f *fakeDirectory) DeleteDealer(ctx context.Context, id string) error { return nil }

func testDirectory() *fakeDirectory {
	sid := "s1"
	return &fakeDirectory{
		salesmen: []Salesman{
			{ID: "s1", UID: "uid-1", Name: "Ravi", Email: "ravi@nexgrow.in", State: "Andhra Pradesh"},
			{ID: "s2", Name: "Kiran", Email: "kiran@nexgrow.in", State: "Telangana", IsAdmin: true},
		},
		managers: []SalesManager{
			{ID: "m1", UID: "uid-m1", Name: "Meena", Email: "meena@nexgrow.in", State: "Telangana"},
		},
		directors: []Director{
			{ID: "d1", Name: "Anand", Email: "anand@nexgrow.in"},
		},
		dealers: []Dealer{
			{ID: "dl1", Name: "Sri Agro", SalesmanID: &sid},
			{ID: "dl2", Name: "Green Fields"},
		},
	}
}

func TestMeResolvesWidestRoleFirst(t *testing.T) {
	svc := NewService(testDirectory())

	profile, err := svc.Me(context.Background(), "", "anand@nexgrow.in")
	require.NoError(t, err)
	require.Equal(t, RoleDirector, profile.Role)
	require.True(t, profile.IsAdmin)

	profile, err = svc.Me(context.Background(), "uid-m1", "")
	require.NoError(t, err)
	require.Equal(t, RoleSalesManager, profile.Role)
	require.False(t, profile.IsAdmin)

	profile, err = svc.Me(context.Background(), "uid-1", "")
	require.NoError(t, err)
	require.Equal(t, RoleSalesman, profile.Role)
	require.Equal(t, "Andhra Pradesh", profile.State)
}

func TestMeAdminFlagOnSalesman(t *testing.T) {
	svc := NewService(testDirectory())

	profile, err := svc.Me(context.Background(), "", "kiran@nexgrow.in")
	require.NoError(t, err)
	require.Equal(t, RoleSalesman, profile.Role)
	require.True(t, profile.IsAdmin)
}

func TestMeUnknownUser(t *testing.T) {
	svc := NewService(testDirectory())

	_, err := svc.Me(context.Background(), "nobody", "")
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestResolveIdentity(t *testing.T) {
	svc := NewService(testDirectory())

	id, err := svc.ResolveIdentity(context.Background(), "", "anand@nexgrow.in")
	require.NoError(t, err)
	require.True(t, id.Admin)
	require.Equal(t, RoleDirector, id.Role)
}

func TestSalesmenByStateFilters(t *testing.T) {
	svc := NewService(testDirectory())

	rows, err := svc.SalesmenByState(context.Background(), "Telangana")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Kiran", rows[0].Name)

	all, err := svc.SalesmenByState(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestCreateSalesmanValidation(t *testing.T) {
	svc := NewService(testDirectory())

	_, err := svc.CreateSalesman(context.Background(), SalesmanInput{Name: "X", Email: "not-an-email"})
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestMeHandlerLegacyParams(t *testing.T) {
	svc := NewService(testDirectory())
	h := &Handler{Service: svc}

	req := httptest.NewRequest(http.MethodGet, "/orders/me?uid=uid-1", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"role":"salesman"`)
	require.Contains(t, rec.Body.String(), `"Ravi"`)
}

func TestDealersHandlerRequiresSalesman(t *testing.T) {
	svc := NewService(testDirectory())

	dealers, err := svc.DealersBySalesman(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, dealers, 1)
	require.Equal(t, "Sri Agro", dealers[0].Name)

	_, err = svc.DealersBySalesman(context.Background(), " ")
	require.Error(t, err)
}
