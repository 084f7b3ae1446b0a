package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/izposoja/internal/api"
	"github.com/erazemk/izposoja/internal/client"
	"github.com/erazemk/izposoja/internal/model"
	"github.com/erazemk/izposoja/internal/store"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	s, err := store.NewMemoryStore(store.SeedItems()...)
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewRouter(s, api.Options{}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestListAndGet(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	items, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 8)

	item, err := c.Get(ctx, "itm002")
	require.NoError(t, err)
	assert.Equal(t, "Camping Tent", item.Name)
	require.NotNil(t, item.Location)
	assert.Equal(t, "Block B, Sector 50", item.Location.Address)
}

func TestCreateAndBorrow(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	item, err := c.Create(ctx, model.NewItem{
		Name:        "Garden Hose",
		Description: "50ft hose",
		Category:    "Outdoors",
		Condition:   "Good",
	})
	require.NoError(t, err)
	assert.Equal(t, "itm009", item.ID)
	assert.True(t, item.Available)
	assert.Nil(t, item.BorrowedBy)

	res, err := c.RequestBorrow(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovedBorrow(), res)

	item, err = c.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, item.Available)
}

func TestServerErrorsSurface(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		status  int
		message string
	}{
		{"unknown item", func() error { _, err := c.Get(ctx, "itm404"); return err }, 404, "Item not found"},
		{"borrowed item", func() error { _, err := c.RequestBorrow(ctx, "itm008"); return err }, 400, "Item is not available"},
		{"missing fields", func() error { _, err := c.Create(ctx, model.NewItem{Name: "Hose"}); return err }, 400, "Missing required fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *client.APIError
			require.True(t, errors.As(tt.call(), &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestNonJSONErrorUsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.List(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := client.New("localhost:5000")
	assert.Error(t, err)
}
