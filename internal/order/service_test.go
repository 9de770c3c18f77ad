package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/sales"
)

type fakeOrderRepo struct {
	orders map[string]Order
	seq    []string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]Order{}}
}

func (f *fakeOrderRepo) List(ctx context.Context, filter Filter) ([]Order, error) {
	var out []Order
	for _, id := range f.seq {
		o := f.orders[id]
		if filter.Status != "" && o.DiscountStatus != filter.Status {
			continue
		}
		if len(filter.SalesmanIDs) > 0 {
			if o.SalesmanID == nil {
				continue
			}
			found := false
			for _, sid := range filter.SalesmanIDs {
				if *o.SalesmanID == sid {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) Get(ctx context.Context, id string) (Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return Order{}, common.ErrNotFound("order not found")
	}
	return o, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, o Order) error {
	f.orders[o.ID] = o
	f.seq = append(f.seq, o.ID)
	return nil
}

func (f *fakeOrderRepo) ReplaceLines(ctx context.Context, o Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return common.ErrNotFound("order not found")
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) SetStatus(ctx context.Context, id, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return common.ErrNotFound("order not found")
	}
	o.DiscountStatus = status
	f.orders[id] = o
	return nil
}

type fakeSales struct {
	manager sales.SalesManager
	team    []sales.Salesman
}

func (f *fakeSales) ManagerByIdentity(ctx context.Context, uid, email string) (sales.SalesManager, error) {
	if uid == f.manager.UID && uid != "" {
		return f.manager, nil
	}
	return sales.SalesManager{}, common.ErrNotFound("sales manager not found")
}

func (f *fakeSales) SalesmenByManager(ctx context.Context, managerID string) ([]sales.Salesman, error) {
	return f.team, nil
}

type fakeNotifier struct {
	pending []string
	decided []string
}

func (f *fakeNotifier) DiscountPending(ctx context.Context, v View) error {
	f.pending = append(f.pending, v.ID)
	return nil
}

func (f *fakeNotifier) DiscountDecided(ctx context.Context, v View, decision string) error {
	f.decided = append(f.decided, v.ID+":"+decision)
	return nil
}

var testNow = time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo *fakeOrderRepo, notifier *fakeNotifier) *Service {
	return NewService(ServiceConfig{
		Repo: repo,
		Sales: &fakeSales{
			manager: sales.SalesManager{ID: "m1", UID: "uid-m1"},
			team:    []sales.Salesman{{ID: "s1"}},
		},
		Notifier: notifier,
		Now:      func() time.Time { return testNow },
	})
}

func createInput(discount float64) CreateInput {
	return CreateInput{
		State:      "Andhra Pradesh",
		SalesmanID: "s1",
		DealerID:   "d1",
		Discount:   pricing.FromFloat(discount),
		Lines: []LineInput{
			{ProductID: "p1", ProductName: "NexGrow Boost", Quantity: pricing.FromFloat(5), Price: pricing.FromFloat(1000)},
			{ProductID: "p2", ProductName: "NexGrow Shield", Quantity: pricing.FromFloat(2), Price: pricing.FromFloat(500)},
		},
	}
}

func TestCreateRecomputesTotalsAndQueuesPending(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	view, err := svc.Create(context.Background(), createInput(10))
	require.NoError(t, err)

	require.Equal(t, StatusPending, view.DiscountStatus)
	require.True(t, view.TotalPrice.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, view.DiscountedTotal)
	require.True(t, view.DiscountedTotal.Equal(decimal.NewFromInt(1350)))
	require.True(t, view.Breakdown.TotalDiscount.Equal(decimal.NewFromInt(150)))
	require.True(t, view.Breakdown.FallbackApplied)
	require.Contains(t, view.DisplayID, "nxg-fy2024-25-andhrapradesh-")
	require.Equal(t, []string{view.ID}, notifier.pending)
}

func TestCreateZeroDiscountIsApproved(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	view, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)
	require.Equal(t, StatusApproved, view.DiscountStatus)
	require.Nil(t, view.DiscountedTotal)
	require.Empty(t, notifier.pending)
}

func TestCreateRejectsExcessiveDiscount(t *testing.T) {
	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	_, err := svc.Create(context.Background(), createInput(35))
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateRequiresLines(t *testing.T) {
	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	in := createInput(0)
	in.Lines = nil
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
}

func TestManagerOrdersScopedToTeam(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)

	other := createInput(0)
	other.SalesmanID = "s9"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	views, err := svc.ManagerOrders(context.Background(), "uid-m1", "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "s1", *views[0].SalesmanID)
}

func TestManagerOrdersForbiddenForOutsiders(t *testing.T) {
	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	_, err := svc.ManagerOrders(context.Background(), "uid-x", "")
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestManagerUpdateAppliesLineDiscounts(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)

	pct := pricing.FromFloat(20)
	updated, err := svc.ManagerUpdate(context.Background(), created.ID, UpdateInput{
		Lines: []UpdateLineInput{
			{ProductID: "p1", Quantity: pricing.FromFloat(5), Price: pricing.FromFloat(1000), DiscountPct: &pct},
			{ProductID: "p2", Quantity: pricing.FromFloat(2), Price: pricing.FromFloat(500)},
		},
	})
	require.NoError(t, err)

	// Only the first line is discounted: 1000 * 20% = 200 off.
	require.True(t, updated.TotalPrice.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, updated.DiscountedTotal)
	require.True(t, updated.DiscountedTotal.Equal(decimal.NewFromInt(1300)))
	require.False(t, updated.Breakdown.FallbackApplied)
	require.True(t, updated.Breakdown.Lines[0].Discounted.Equal(decimal.NewFromInt(800)))
	require.True(t, updated.Breakdown.Lines[1].Discounted.Equal(decimal.NewFromInt(500)))
}

func TestManagerUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)

	_, err = svc.ManagerUpdate(context.Background(), created.ID, UpdateInput{DiscountStatus: "maybe"})
	require.Error(t, err)
}

func TestDecideApprovesPendingOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	created, err := svc.Create(context.Background(), createInput(15))
	require.NoError(t, err)

	view, err := svc.Decide(context.Background(), created.ID, StatusApproved)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, view.DiscountStatus)
	require.Equal(t, []string{created.ID + ":approved"}, notifier.decided)

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, stored.DiscountStatus)
}

func TestDecideRejectsNonPendingOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), created.ID, StatusApproved)
	require.Error(t, err)
}

func TestPendingApprovalsFilter(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)
	pending, err := svc.Create(context.Background(), createInput(12))
	require.NoError(t, err)

	views, err := svc.PendingApprovals(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, pending.ID, views[0].ID)
}
