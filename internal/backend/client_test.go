package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersSendsFilters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pedidos", r.URL.Path)
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]Order{{ID: 1, Customer: "Ana", Status: StatusNew}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	orders, err := client.ListOrders(context.Background(), OrderFilter{
		StartDate: "2026-08-29",
		EndDate:   "2026-08-29",
		Status:    StatusNew,
		Customer:  "Ana",
	})

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].Customer)
	assert.Equal(t, []string{"2026-08-29"}, gotQuery["data_inicio"])
	assert.Equal(t, []string{"2026-08-29"}, gotQuery["data_fim"])
	assert.Equal(t, []string{"novo"}, gotQuery["status"])
	assert.Equal(t, []string{"Ana"}, gotQuery["cliente"])
}

func TestListOrdersOmitsEmptyFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode([]Order{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListOrders(context.Background(), OrderFilter{})
	require.NoError(t, err)
}

func TestGetRecipeDecodesIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/receitas/7", r.URL.Path)
		json.NewEncoder(w).Encode(Recipe{
			ID:   7,
			Name: "Bolo de cenoura",
			Ingredients: []RecipeIngredient{
				{IngredientID: 1, IngredientName: "cenoura", Quantity: 300, Unit: "g"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	recipe, err := client.GetRecipe(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Bolo de cenoura", recipe.Name)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, 300.0, recipe.Ingredients[0].Quantity)
}

func TestUpdateOrderStatusPatchesStatusEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/pedidos/3/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pronto", body["status"])

		json.NewEncoder(w).Encode(Order{ID: 3, Status: StatusReady})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	order, err := client.UpdateOrderStatus(context.Background(), 3, StatusReady)

	require.NoError(t, err)
	assert.Equal(t, StatusReady, order.Status)
}

func TestListStockLowStockFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("baixo_estoque"))
		json.NewEncoder(w).Encode([]StockEntry{
			{IngredientID: 1, IngredientName: "chocolate", Quantity: 100, ReorderPoint: 500},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.ListStock(context.Background(), StockFilter{LowStock: true})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Less(t, entries[0].Quantity, entries[0].ReorderPoint)
}

func TestRegisterMovementPostsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/estoque/movimentacao", r.URL.Path)

		var movement StockMovement
		require.NoError(t, json.NewDecoder(r.Body).Decode(&movement))
		assert.Equal(t, MovementOut, movement.Kind)
		assert.Equal(t, 50.0, movement.Quantity)

		movement.ID = 99
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(movement)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	created, err := client.RegisterMovement(context.Background(), StockMovement{
		IngredientID: 1,
		Kind:         MovementOut,
		Quantity:     50,
		Reason:       "produção",
	})

	require.NoError(t, err)
	assert.Equal(t, 99, created.ID)
}

func TestListScheduleSendsRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/agenda", r.URL.Path)
		assert.Equal(t, "2026-09-04", r.URL.Query().Get("data_inicio"))
		assert.Equal(t, "2026-09-04", r.URL.Query().Get("data_fim"))
		json.NewEncoder(w).Encode([]DeliverySlot{{ID: 1, OrderID: 3, DateTime: "2026-09-04T14:00:00"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	slots, err := client.ListSchedule(context.Background(), "2026-09-04", "2026-09-04")

	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestErrorsSurfaceStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Estoque não encontrado"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetStock(context.Background(), 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao obter estoque")
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "Estoque não encontrado")
}

func TestConnectionFailureSurfacesError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.ListRecipes(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao listar receitas")
}
