package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a typed HTTP client for the Docildos API, which owns all
// persistent state (orders, recipes, stock, delivery schedule).
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new data service client
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		baseURL: baseURL,
	}
}

// OrderFilter holds the optional filters for listing orders
type OrderFilter struct {
	StartDate string
	EndDate   string
	Status    OrderStatus
	Customer  string
}

// StockFilter holds the optional filters for listing stock entries
type StockFilter struct {
	IngredientID int
	LowStock     bool
}

// MovementFilter holds the optional filters for the movement history
type MovementFilter struct {
	IngredientID int
	StartDate    string
	EndDate      string
}

// ListOrders lists orders matching the filter
func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error) {
	params := url.Values{}
	if filter.StartDate != "" {
		params.Set("data_inicio", filter.StartDate)
	}
	if filter.EndDate != "" {
		params.Set("data_fim", filter.EndDate)
	}
	if filter.Status != "" {
		params.Set("status", string(filter.Status))
	}
	if filter.Customer != "" {
		params.Set("cliente", filter.Customer)
	}

	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/pedidos", params, nil, &orders); err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	return orders, nil
}

// GetOrder fetches one order by id
func (c *Client) GetOrder(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/api/pedidos/"+strconv.Itoa(id), nil, nil, &order); err != nil {
		return nil, fmt.Errorf("erro ao obter pedido: %w", err)
	}
	return &order, nil
}

// CreateOrder creates a new order
func (c *Client) CreateOrder(ctx context.Context, order Order) (*Order, error) {
	var created Order
	if err := c.do(ctx, http.MethodPost, "/api/pedidos", nil, order, &created); err != nil {
		return nil, fmt.Errorf("erro ao criar pedido: %w", err)
	}
	return &created, nil
}

// UpdateOrderStatus updates the status of an order
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*Order, error) {
	body := map[string]OrderStatus{"status": status}
	var updated Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/pedidos/%d/status", id), nil, body, &updated); err != nil {
		return nil, fmt.Errorf("erro ao atualizar status: %w", err)
	}
	return &updated, nil
}

// ListRecipes lists recipes, optionally filtered by name substring
func (c *Client) ListRecipes(ctx context.Context, name string) ([]Recipe, error) {
	params := url.Values{}
	if name != "" {
		params.Set("nome", name)
	}

	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/api/receitas", params, nil, &recipes); err != nil {
		return nil, fmt.Errorf("erro ao listar receitas: %w", err)
	}
	return recipes, nil
}

// GetRecipe fetches one recipe by id, including its ingredient list
func (c *Client) GetRecipe(ctx context.Context, id int) (*Recipe, error) {
	var recipe Recipe
	if err := c.do(ctx, http.MethodGet, "/api/receitas/"+strconv.Itoa(id), nil, nil, &recipe); err != nil {
		return nil, fmt.Errorf("erro ao obter receita: %w", err)
	}
	return &recipe, nil
}

// ListStock lists stock entries matching the filter
func (c *Client) ListStock(ctx context.Context, filter StockFilter) ([]StockEntry, error) {
	params := url.Values{}
	if filter.IngredientID != 0 {
		params.Set("ingrediente_id", strconv.Itoa(filter.IngredientID))
	}
	if filter.LowStock {
		params.Set("baixo_estoque", "true")
	}

	var entries []StockEntry
	if err := c.do(ctx, http.MethodGet, "/api/estoque", params, nil, &entries); err != nil {
		return nil, fmt.Errorf("erro ao listar estoque: %w", err)
	}
	return entries, nil
}

// GetStock fetches the stock entry of one ingredient
func (c *Client) GetStock(ctx context.Context, ingredientID int) (*StockEntry, error) {
	var entry StockEntry
	if err := c.do(ctx, http.MethodGet, "/api/estoque/"+strconv.Itoa(ingredientID), nil, nil, &entry); err != nil {
		return nil, fmt.Errorf("erro ao obter estoque: %w", err)
	}
	return &entry, nil
}

// RegisterMovement appends a stock movement; the data service applies its
// effect to the current quantity
func (c *Client) RegisterMovement(ctx context.Context, movement StockMovement) (*StockMovement, error) {
	var created StockMovement
	if err := c.do(ctx, http.MethodPost, "/api/estoque/movimentacao", nil, movement, &created); err != nil {
		return nil, fmt.Errorf("erro ao registrar movimentação: %w", err)
	}
	return &created, nil
}

// ListMovements lists the stock movement history
func (c *Client) ListMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, error) {
	params := url.Values{}
	if filter.IngredientID != 0 {
		params.Set("ingrediente_id", strconv.Itoa(filter.IngredientID))
	}
	if filter.StartDate != "" {
		params.Set("data_inicio", filter.StartDate)
	}
	if filter.EndDate != "" {
		params.Set("data_fim", filter.EndDate)
	}

	var movements []StockMovement
	if err := c.do(ctx, http.MethodGet, "/api/estoque/movimentacoes/historico", params, nil, &movements); err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações: %w", err)
	}
	return movements, nil
}

// ListSchedule lists delivery slots in a date range
func (c *Client) ListSchedule(ctx context.Context, startDate, endDate string) ([]DeliverySlot, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("data_inicio", startDate)
	}
	if endDate != "" {
		params.Set("data_fim", endDate)
	}

	var slots []DeliverySlot
	if err := c.do(ctx, http.MethodGet, "/api/agenda", params, nil, &slots); err != nil {
		return nil, fmt.Errorf("erro ao listar agenda: %w", err)
	}
	return slots, nil
}

// CreateSchedule creates a delivery slot for an order
func (c *Client) CreateSchedule(ctx context.Context, slot DeliverySlot) (*DeliverySlot, error) {
	var created DeliverySlot
	if err := c.do(ctx, http.MethodPost, "/api/agenda", nil, slot, &created); err != nil {
		return nil, fmt.Errorf("erro ao agendar entrega: %w", err)
	}
	return &created, nil
}

// UpdateSchedule updates an existing delivery slot
func (c *Client) UpdateSchedule(ctx context.Context, id int, slot DeliverySlot) (*DeliverySlot, error) {
	var updated DeliverySlot
	if err := c.do(ctx, http.MethodPut, "/api/agenda/"+strconv.Itoa(id), nil, slot, &updated); err != nil {
		return nil, fmt.Errorf("erro ao atualizar agenda: %w", err)
	}
	return &updated, nil
}

// do performs one HTTP round trip against the data service. Any failure
// (transport error, timeout, non-2xx status, bad body) is surfaced as a
// single error carrying a human-readable message.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("resposta inválida: %w", err)
		}
	}
	return nil
}
