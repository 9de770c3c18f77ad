package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminOrdersPaginates(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), createInput(0))
		require.NoError(t, err)
	}

	handler := &AdminHandler{Service: svc}
	rr := httptest.NewRecorder()
	handler.Orders(rr, httptest.NewRequest(http.MethodGet, "/orders/admin/orders?page=2&limit=2", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data       []View `json:"data"`
		Pagination struct {
			Page       int `json:"page"`
			PerPage    int `json:"per_page"`
			TotalItems int `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, 2, body.Pagination.Page)
	require.Equal(t, 5, body.Pagination.TotalItems)
}

func TestAdminOrdersPageBeyondEndIsEmpty(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Create(context.Background(), createInput(0))
	require.NoError(t, err)

	handler := &AdminHandler{Service: svc}
	rr := httptest.NewRecorder()
	handler.Orders(rr, httptest.NewRequest(http.MethodGet, "/orders/admin/orders?page=9&limit=10", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Empty(t, body.Data)
}
