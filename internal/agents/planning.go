package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"docildos/internal/backend"
)

const planningFallback = "Não entendi o que você quer fazer com planejamento. Pode reformular?"

// Period is the resolved date range of a shopping list
type Period struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// ShoppingItem is one consolidated line of the shopping list
type ShoppingItem struct {
	Ingredient string  `json:"ingrediente"`
	Required   float64 `json:"quantidade_necessaria"`
	Current    float64 `json:"quantidade_atual"`
	ToBuy      float64 `json:"quantidade_comprar"`
	Unit       string  `json:"unidade"`
}

// ShoppingList is the consolidated purchasing plan for a period
type ShoppingList struct {
	Period Period         `json:"periodo"`
	Items  []ShoppingItem `json:"lista_compras"`
}

// PlanningHandler generates consolidated shopping lists by exploding the
// ingredient needs of every order in a period and netting them against
// current stock.
type PlanningHandler struct {
	backend Backend
	now     func() time.Time
}

// NewPlanningHandler creates a new planning handler
func NewPlanningHandler(be Backend) *PlanningHandler {
	return &PlanningHandler{backend: be, now: time.Now}
}

// Handle detects the intent of the message and executes it
func (h *PlanningHandler) Handle(ctx context.Context, message string) Result {
	lower := strings.ToLower(message)
	today := h.now()

	switch {
	case strings.Contains(lower, "lista") && strings.Contains(lower, "compra"):
		var start, end string
		if strings.Contains(lower, "amanhã") || strings.Contains(lower, "amanha") {
			start = today.AddDate(0, 0, 1).Format(dateFormat)
			end = start
		} else if strings.Contains(lower, "semana") {
			start = today.Format(dateFormat)
			end = today.AddDate(0, 0, 7).Format(dateFormat)
		} else if strings.Contains(lower, "hoje") {
			start = today.Format(dateFormat)
			end = start
		}

		list, err := h.GenerateShoppingList(ctx, start, end)
		if err != nil {
			return Result{Action: "gerar_lista", Err: fmt.Sprintf("Erro ao gerar lista de compras: %v", err)}
		}
		return Result{Action: "gerar_lista", Data: list}

	case strings.Contains(lower, "ingrediente") &&
		(strings.Contains(lower, "pedido") || strings.Contains(lower, "necessário") || strings.Contains(lower, "preciso")):
		list, err := h.GenerateShoppingList(ctx, today.Format(dateFormat), today.AddDate(0, 0, 1).Format(dateFormat))
		if err != nil {
			return Result{Action: "ingredientes_pedidos", Err: fmt.Sprintf("Erro ao gerar lista de compras: %v", err)}
		}
		return Result{Action: "ingredientes_pedidos", Data: list}

	default:
		return Result{Action: "consulta", Message: planningFallback}
	}
}

// requirementKey keys accumulated requirements; quantities of the same
// ingredient under different units stay separate, no unit conversion is
// performed.
type requirementKey struct {
	ingredientID int
	unit         string
}

type requirement struct {
	name     string
	quantity float64
}

// GenerateShoppingList builds the consolidated shopping list for the
// period. Any fetch failure aborts the whole computation; a partial list is
// never returned. An empty start or end defaults to today and today+7.
func (h *PlanningHandler) GenerateShoppingList(ctx context.Context, startDate, endDate string) (*ShoppingList, error) {
	today := h.now()
	if startDate == "" {
		startDate = today.Format(dateFormat)
	}
	if endDate == "" {
		endDate = today.AddDate(0, 0, 7).Format(dateFormat)
	}

	orders, err := h.backend.ListOrders(ctx, backend.OrderFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, err
	}

	// Recipes repeat across order lines; cache lookups within the run.
	recipeCache := make(map[int]*backend.Recipe)
	required := make(map[requirementKey]*requirement)

	for _, order := range orders {
		for _, item := range order.Items {
			recipe, ok := recipeCache[item.RecipeID]
			if !ok {
				recipe, err = h.backend.GetRecipe(ctx, item.RecipeID)
				if err != nil {
					return nil, err
				}
				recipeCache[item.RecipeID] = recipe
			}

			for _, ing := range recipe.Ingredients {
				key := requirementKey{ingredientID: ing.IngredientID, unit: ing.Unit}
				req, ok := required[key]
				if !ok {
					req = &requirement{name: ing.IngredientName}
					required[key] = req
				}
				req.quantity += ing.Quantity * item.Quantity
			}
		}
	}

	stock, err := h.backend.ListStock(ctx, backend.StockFilter{})
	if err != nil {
		return nil, err
	}
	current := make(map[int]float64, len(stock))
	for _, entry := range stock {
		current[entry.IngredientID] = entry.Quantity
	}

	items := make([]ShoppingItem, 0, len(required))
	for key, req := range required {
		have := current[key.ingredientID]
		toBuy := req.quantity - have
		if toBuy > 0 {
			items = append(items, ShoppingItem{
				Ingredient: req.name,
				Required:   req.quantity,
				Current:    have,
				ToBuy:      toBuy,
				Unit:       key.unit,
			})
		}
	}

	// Map iteration order is random; sort for stable output.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Ingredient != items[j].Ingredient {
			return items[i].Ingredient < items[j].Ingredient
		}
		return items[i].Unit < items[j].Unit
	})

	return &ShoppingList{
		Period: Period{Start: startDate, End: endDate},
		Items:  items,
	}, nil
}
